package saver

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"mt5-data/internal/model"
)

// JSONSaver writes records as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(records []model.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return encodeJSON(f, records)
}

// encodeJSON writes records to wc and closes it. A close error fails the save.
func encodeJSON(wc io.WriteCloser, records []model.Record) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(wc)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}
	return bw.Flush()
}
