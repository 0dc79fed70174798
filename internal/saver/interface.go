package saver

import (
	"strings"

	"mt5-data/internal/model"
)

// RecordSaver writes one export artifact of enriched records.
// The download driver depends only on this interface; main picks the implementation.
type RecordSaver interface {
	Save(records []model.Record, path string) error
	Extension() string
}

// NewRecordSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewRecordSaver(format string) RecordSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
