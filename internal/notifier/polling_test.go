package notifier

import (
	"errors"
	"strings"
	"testing"
)

type fakeCommands struct {
	chartErr     error
	chartTicker  string
	refreshCalls int
}

func (f *fakeCommands) ReportText() string { return "duel report body" }

func (f *fakeCommands) RefreshText() string {
	f.refreshCalls++
	return "refreshed report body"
}

func (f *fakeCommands) ChartFor(ticker string) ([]byte, error) {
	f.chartTicker = ticker
	if f.chartErr != nil {
		return nil, f.chartErr
	}
	return []byte{0x89, 0x50, 0x4e, 0x47}, nil
}

func TestDispatchCommand_Report(t *testing.T) {
	reply, photo, _ := dispatchCommand(&fakeCommands{}, "/report")
	if reply != "duel report body" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if photo != nil {
		t.Error("text command should not produce a photo")
	}
}

func TestDispatchCommand_Refresh(t *testing.T) {
	f := &fakeCommands{}
	reply, _, _ := dispatchCommand(f, "/refresh")
	if reply != "refreshed report body" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if f.refreshCalls != 1 {
		t.Errorf("expected 1 refresh, got %d", f.refreshCalls)
	}
}

func TestDispatchCommand_Chart(t *testing.T) {
	f := &fakeCommands{}
	reply, photo, caption := dispatchCommand(f, "/chart vtsax")
	if reply != "" {
		t.Errorf("chart command should reply with a photo only, got %q", reply)
	}
	if photo == nil {
		t.Fatal("expected a photo")
	}
	if caption != "VTSAX" || f.chartTicker != "VTSAX" {
		t.Errorf("ticker argument should be uppercased: caption=%q requested=%q", caption, f.chartTicker)
	}
}

func TestDispatchCommand_ChartMissingArgument(t *testing.T) {
	reply, photo, _ := dispatchCommand(&fakeCommands{}, "/chart")
	if !strings.Contains(reply, "usage:") {
		t.Errorf("expected usage hint, got %q", reply)
	}
	if photo != nil {
		t.Error("no photo without a ticker")
	}
}

func TestDispatchCommand_ChartUnavailable(t *testing.T) {
	f := &fakeCommands{chartErr: errors.New("no comparison available for AVGO")}
	reply, photo, _ := dispatchCommand(f, "/chart AVGO")
	if !strings.Contains(reply, "chart unavailable") {
		t.Errorf("expected failure reply, got %q", reply)
	}
	if photo != nil {
		t.Error("no photo on failure")
	}
}

func TestDispatchCommand_UnknownShowsHelp(t *testing.T) {
	reply, _, _ := dispatchCommand(&fakeCommands{}, "/standings")
	for _, want := range []string{"/report", "/refresh", "/chart TICKER"} {
		if !strings.Contains(reply, want) {
			t.Errorf("help should list %q, got:\n%s", want, reply)
		}
	}
}
