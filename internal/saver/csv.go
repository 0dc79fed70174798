package saver

import (
	"bufio"
	"encoding/csv"
	"os"

	"mt5-data/internal/model"
)

// bom marks the file as UTF-8 for spreadsheet tools.
const bom = "\ufeff"

// CSVSaver writes records as UTF-8 CSV with a byte-order mark, header in model.Columns order.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(records []model.Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(bom); err != nil {
		return err
	}
	w := csv.NewWriter(bw)
	if err := w.Write(model.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
