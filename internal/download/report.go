package download

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type failedEntry struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Reason    string `json:"reason"`
}

type successEntry struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
	Path      string `json:"path"`
	Bars      int    `json:"bars"`
	Strategy  string `json:"strategy"`
}

type runReport[T any] struct {
	RunID   string `json:"run_id"`
	Entries []T    `json:"entries"`
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// writeRunReport replaces both report files so a stale failure list never survives a clean run.
func writeRunReport(dataDir, runID string, results []JobResult, failedList []failedEntry) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	var ok []successEntry
	for _, r := range results {
		if r.Ok {
			ok = append(ok, successEntry{Symbol: r.Symbol, Timeframe: r.Timeframe, Path: r.Path, Bars: r.Bars, Strategy: string(r.Strategy)})
		}
	}

	p := filepath.Join(dataDir, ".lastrun.success.json")
	if err := writeJSON(p, runReport[successEntry]{RunID: runID, Entries: ok}); err != nil {
		return err
	}
	slog.Info("report wrote success", "path", p, "pairs", len(ok))

	p = filepath.Join(dataDir, ".lastrun.failed.json")
	if err := writeJSON(p, runReport[failedEntry]{RunID: runID, Entries: failedList}); err != nil {
		return err
	}
	slog.Info("report wrote failed", "path", p, "count", len(failedList))
	return nil
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Symbol)
		b.WriteString("/")
		b.WriteString(f.Timeframe)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
