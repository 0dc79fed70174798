package main

import (
	"mt5-data/internal/app"
	"mt5-data/internal/metrics"
	"mt5-data/internal/provider"
	"mt5-data/internal/saver"
)

// App holds application dependencies built by Wire.
type App struct {
	Config  *app.Config
	DP      provider.DataProvider
	Saver   saver.RecordSaver
	Metrics *metrics.Recorder
}
