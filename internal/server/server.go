package server

import (
	"fmt"
	"log"
	"net/http"

	"StockDuel/internal/model"
	"StockDuel/internal/report"
)

// DuelSource is the slice of the scheduler the dashboard needs.
type DuelSource interface {
	Latest() *model.CycleResult
	Refresh() *model.CycleResult
	ChartFor(ticker string) ([]byte, error)
}

// NewMux builds the dashboard routes.
func NewMux(src DuelSource) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		res := src.Latest()
		if res == nil {
			res = src.Refresh()
		}
		writePage(w, res)
	})

	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		src.Refresh()
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	mux.HandleFunc("/chart", func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")
		if symbol == "" {
			http.Error(w, "symbol query parameter required", http.StatusBadRequest)
			return
		}
		png, err := src.ChartFor(symbol)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(png); err != nil {
			log.Printf("[WARN] write chart response: %v", err)
		}
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })

	return mux
}

func writePage(w http.ResponseWriter, res *model.CycleResult) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprint(w, "<!DOCTYPE html><html><head><title>StockDuel</title></head><body>")
	fmt.Fprintf(w, "<pre style=\"font-size:14px\">%s</pre>", report.FormatDuelReport(res))
	if !res.Degraded() {
		for _, rep := range res.Comparison.Reports() {
			fmt.Fprintf(w, "<p><img src=\"/chart?symbol=%s\" alt=\"%s chart\"></p>", rep.Ticker, rep.Ticker)
		}
	}
	fmt.Fprint(w, `<form method="POST" action="/refresh"><button type="submit">Force Refresh Data</button></form>`)
	fmt.Fprint(w, "</body></html>")
}

// ListenAndServe starts the dashboard HTTP server.
func ListenAndServe(addr string, mux *http.ServeMux) error {
	log.Printf("[INFO] dashboard listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
