package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mt5-data/internal/terminal"
)

func TestRecordExport(t *testing.T) {
	r := New()
	r.RecordExport("XAUUSD", "M5", 120, nil)
	r.RecordExport("XAUUSD", "M10", 0, errors.New("no data"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues("XAUUSD", "M5", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues("XAUUSD", "M10", "failed")))
	assert.Equal(t, 120.0, testutil.ToFloat64(r.bars.WithLabelValues("XAUUSD", "M5")))
}

func TestObserveFetch(t *testing.T) {
	r := New()
	r.ObserveFetch("M5", terminal.StrategyRange, 0, nil, time.Millisecond)
	r.ObserveFetch("M5", terminal.StrategyCountTo, 10, nil, time.Millisecond)
	r.ObserveFetch("M5", terminal.StrategyCountFrom, 0, errors.New("x"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategies.WithLabelValues("M5", "range", "empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategies.WithLabelValues("M5", "count_to", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategies.WithLabelValues("M5", "count_from", "error")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.RecordExport("EURUSD", "M15", 3, nil)
	r.Finish(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "mt5data.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mt5data_exports_total{status="ok",symbol="EURUSD",timeframe="M15"} 1`)
	assert.Contains(t, string(data), "mt5data_last_run_timestamp_seconds ")
}
