package saver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mt5-data/internal/model"
)

// FileName builds {symbol}_{timeframe}_{YYYYMMDD}.{ext}.
func FileName(symbol, timeframe string, date time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", symbol, timeframe, date.Format("20060102"), ext)
}

// Export writes records under dir and returns the file path.
// It returns "" without touching the filesystem when records is empty.
// A file from an earlier run on the same date is replaced.
func Export(s RecordSaver, dir, symbol, timeframe string, date time.Time, records []model.Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(symbol, timeframe, date, s.Extension()))
	if err := s.Save(records, path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
