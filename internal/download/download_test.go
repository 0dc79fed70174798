package download

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mt5-data/internal/credentials"
	"mt5-data/internal/model"
	"mt5-data/internal/provider"
	"mt5-data/internal/saver"
	"mt5-data/internal/session"
	"mt5-data/internal/terminal"
	"mt5-data/internal/terminal/terminaltest"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fullFake() *terminaltest.Fake {
	f := &terminaltest.Fake{
		Symbols: map[string]*terminal.SymbolInfo{
			"XAUUSD": {Name: "XAUUSD", Visible: true, Spread: 25, Point: 0.01, Digits: 2},
			"EURUSD": {Name: "EURUSD", Visible: false, Spread: 12, Point: 0.00001, Digits: 5},
		},
		Range: map[string][]model.Bar{},
		From:  map[string][]model.Bar{},
	}
	start := now.AddDate(0, 0, -1)
	for _, s := range []string{"XAUUSD", "EURUSD"} {
		for _, tf := range terminal.Timeframes {
			f.Range[terminaltest.Key(s, tf.Label)] = terminaltest.Bars(start, time.Duration(tf.Code)*time.Minute, 20)
		}
	}
	return f
}

func newProvider(t *testing.T, fake *terminaltest.Fake) *provider.MT5Provider {
	t.Helper()
	creds := &credentials.Credentials{Login: "1", Password: "pw", Server: "Demo"}
	sess, err := session.Open(context.Background(), fake, creds)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close(context.Background()) })
	return provider.NewMT5Provider(sess)
}

func csvFiles(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	return files
}

func opts(dir string) Options {
	return Options{DataDir: dir, DaysBack: 365, Now: func() time.Time { return now }}
}

func TestBuildJobsOrder(t *testing.T) {
	jobs := BuildJobs([]string{"XAUUSD", "EURUSD"}, terminal.Timeframes)
	require.Len(t, jobs, 6)
	assert.Equal(t, "XAUUSD", jobs[0].Symbol)
	assert.Equal(t, "M5", jobs[0].Timeframe.Label)
	assert.Equal(t, "M15", jobs[2].Timeframe.Label)
	assert.Equal(t, "EURUSD", jobs[3].Symbol)
}

func TestRunAllPairsSucceed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	dp := newProvider(t, fullFake())
	jobs := BuildJobs([]string{"XAUUSD", "EURUSD"}, terminal.Timeframes)

	res := Run(context.Background(), dp, saver.CSVSaver{}, jobs, opts(dir))
	assert.Len(t, res.Files, 6)
	assert.Empty(t, res.Failed)
	assert.False(t, res.Interrupted)
	assert.Len(t, csvFiles(t, dir), 6)
	assert.Contains(t, res.Files, filepath.Join(dir, "EURUSD_M10_20250314.csv"))
}

func TestRunOneFetchFails(t *testing.T) {
	dir := t.TempDir()
	fake := fullFake()
	delete(fake.Range, terminaltest.Key("EURUSD", "M10"))
	dp := newProvider(t, fake)
	jobs := BuildJobs([]string{"XAUUSD", "EURUSD"}, terminal.Timeframes)

	res := Run(context.Background(), dp, saver.CSVSaver{}, jobs, opts(dir))
	assert.Len(t, res.Files, 5)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "EURUSD", res.Failed[0].Symbol)
	assert.Equal(t, "M10", res.Failed[0].Timeframe)
	assert.Len(t, csvFiles(t, dir), 5)
}

func TestRunUnresolvableSymbolSkipsOnlyItsPairs(t *testing.T) {
	dir := t.TempDir()
	dp := newProvider(t, fullFake())
	jobs := BuildJobs([]string{"BTCUSD", "XAUUSD"}, terminal.Timeframes)

	res := Run(context.Background(), dp, saver.CSVSaver{}, jobs, opts(dir))
	assert.Len(t, res.Files, 3)
	assert.Len(t, res.Failed, 3)
	for _, f := range res.Failed {
		assert.Equal(t, "BTCUSD", f.Symbol)
	}
}

type panicProvider struct{ provider.DataProvider }

func (panicProvider) GetName() string { return "panic" }
func (panicProvider) ResolveSymbol(context.Context, string) (*terminal.SymbolInfo, error) {
	panic("boom")
}

func TestRunRecoversPanics(t *testing.T) {
	jobs := BuildJobs([]string{"XAUUSD"}, terminal.Timeframes[:2])
	res := Run(context.Background(), panicProvider{}, saver.CSVSaver{}, jobs, opts(t.TempDir()))
	require.Len(t, res.Failed, 2)
	assert.Contains(t, res.Failed[0].Reason, "panic: boom")
}

type cancelRecorder struct {
	cancel context.CancelFunc
	calls  int
}

func (r *cancelRecorder) RecordExport(string, string, int, error) {
	r.calls++
	r.cancel()
}

func TestRunStopsWhenInterrupted(t *testing.T) {
	dir := t.TempDir()
	dp := newProvider(t, fullFake())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &cancelRecorder{cancel: cancel}
	o := opts(dir)
	o.Recorder = rec

	res := Run(ctx, dp, saver.CSVSaver{}, BuildJobs([]string{"XAUUSD", "EURUSD"}, terminal.Timeframes), o)
	assert.True(t, res.Interrupted)
	assert.Len(t, res.Files, 1)
	assert.Equal(t, 1, rec.calls)
}

func TestRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	fake := fullFake()
	delete(fake.Range, terminaltest.Key("XAUUSD", "M15"))
	dp := newProvider(t, fake)
	o := opts(dir)
	o.Report = true

	res := Run(context.Background(), dp, saver.CSVSaver{}, BuildJobs([]string{"XAUUSD"}, terminal.Timeframes), o)

	data, err := os.ReadFile(filepath.Join(dir, ".lastrun.failed.json"))
	require.NoError(t, err)
	var failed runReport[failedEntry]
	require.NoError(t, json.Unmarshal(data, &failed))
	assert.Equal(t, res.RunID, failed.RunID)
	require.Len(t, failed.Entries, 1)
	assert.Equal(t, "M15", failed.Entries[0].Timeframe)

	data, err = os.ReadFile(filepath.Join(dir, ".lastrun.success.json"))
	require.NoError(t, err)
	var ok runReport[successEntry]
	require.NoError(t, json.Unmarshal(data, &ok))
	assert.Len(t, ok.Entries, 2)
	assert.Equal(t, "range", ok.Entries[0].Strategy)
}

func TestJoinFailedReasons(t *testing.T) {
	var list []failedEntry
	for i := 0; i < 8; i++ {
		list = append(list, failedEntry{Symbol: "S", Timeframe: "M5", Reason: errors.New("x").Error()})
	}
	s := joinFailedReasons(list)
	assert.Contains(t, s, "S/M5: x")
	assert.Contains(t, s, "(+3 more)")
	assert.Empty(t, joinFailedReasons(nil))
}
