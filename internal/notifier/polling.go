package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// DuelCommands is the set of dashboard operations reachable over Telegram.
type DuelCommands interface {
	// ReportText returns the latest duel report, computing one if needed.
	ReportText() string
	// RefreshText clears the provider cache, recomputes, and reports.
	RefreshText() string
	// ChartFor renders the price chart PNG for one tracked ticker.
	ChartFor(ticker string) ([]byte, error)
}

const helpText = "Commands:\n" +
	"• /report — latest duel report\n" +
	"• /refresh — clear cache and recompute\n" +
	"• /chart TICKER — price chart with trend line"

// update is one Telegram long-polling update.
type update struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
	} `json:"message"`
}

// StartPolling long-polls Telegram for duel commands and dispatches them.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, cmds DuelCommands) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		updates, err := t.pollUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
				continue
			}
			text := strings.TrimSpace(u.Message.Text)
			log.Printf("[INFO] received command: %s", text)

			reply, photo, caption := dispatchCommand(cmds, text)
			if photo != nil {
				if err := t.SendPhoto(caption, photo); err != nil {
					log.Printf("[ERROR] send chart: %v", err)
					reply = fmt.Sprintf("chart upload failed: %v", err)
				}
			}
			if reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send reply: %v", err)
				}
			}
		}
	}
}

// dispatchCommand maps one command line to a text reply and/or a chart photo.
func dispatchCommand(cmds DuelCommands, text string) (reply string, photo []byte, caption string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return helpText, nil, ""
	}

	switch fields[0] {
	case "/report":
		return cmds.ReportText(), nil, ""
	case "/refresh":
		return cmds.RefreshText(), nil, ""
	case "/chart":
		if len(fields) < 2 {
			return "usage: /chart TICKER", nil, ""
		}
		ticker := strings.ToUpper(fields[1])
		png, err := cmds.ChartFor(ticker)
		if err != nil {
			return fmt.Sprintf("chart unavailable: %v", err), nil, ""
		}
		return "", png, ticker
	default:
		return helpText, nil, ""
	}
}

func (t *TelegramNotifier) pollUpdates(ctx context.Context, client *http.Client, offset int) ([]update, error) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30", t.BotToken, offset)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK     bool     `json:"ok"`
		Result []update `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	return result.Result, nil
}
