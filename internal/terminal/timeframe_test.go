package terminal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("m10")
	require.NoError(t, err)
	assert.Equal(t, "M10", tf.Label)
	assert.Equal(t, 10, tf.Code)

	_, err = ParseTimeframe("H1")
	assert.Error(t, err)
}

func TestParseTimeframesKeepsOrder(t *testing.T) {
	tfs, err := ParseTimeframes([]string{"M15", "M5"})
	require.NoError(t, err)
	require.Len(t, tfs, 2)
	assert.Equal(t, "M15", tfs[0].Label)
	assert.Equal(t, "M5", tfs[1].Label)
}

func TestBarCount(t *testing.T) {
	m5, _ := ParseTimeframe("M5")
	m15, _ := ParseTimeframe("M15")

	assert.Equal(t, 12*24, m5.BarCount(1))
	assert.Equal(t, maxBars, m5.BarCount(365), "365 days of M5 exceeds the cap")
	assert.Equal(t, 4*24*365, m15.BarCount(365))
	assert.Equal(t, 12*24, m5.BarCount(0))
}

func TestFallbackTable(t *testing.T) {
	for _, tf := range Timeframes {
		require.NotEmpty(t, tf.Strategies, tf.Label)
		assert.Equal(t, StrategyRange, tf.Strategies[0], "%s must try the exact range first", tf.Label)
		assert.Contains(t, tf.Strategies, StrategyCountTo, tf.Label)
	}
	m5, _ := ParseTimeframe("M5")
	assert.Equal(t, []Strategy{StrategyRange, StrategyCountTo, StrategyCountFrom}, m5.Strategies)
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("login: %w", &Error{Code: -6, Message: "Authorization failed"})
	assert.Equal(t, -6, Code(err))
	assert.Equal(t, 0, Code(errors.New("plain")))
	assert.Equal(t, "terminal error -6: Authorization failed", (&Error{Code: -6, Message: "Authorization failed"}).Error())
}
