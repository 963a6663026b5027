package bench

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	restore := Clock
	defer func() { Clock = restore }()

	base := time.Unix(1000, 0)
	ticks := []time.Time{base, base.Add(250 * time.Millisecond)}
	Clock = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	ran := false
	rec, err := Measure(func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 0.25, rec.Seconds())
}

func TestMeasurePropagatesError(t *testing.T) {
	boom := fmt.Errorf("boom")
	rec, err := Measure(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, rec.End.Before(rec.Start))
}

func TestSummary(t *testing.T) {
	mean, sigma := Summary([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.Greater(t, sigma, 0.0)

	mean, sigma = Summary([]float64{3.5})
	assert.Equal(t, 3.5, mean)
	assert.Equal(t, 0.0, sigma)

	mean, sigma = Summary(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, sigma)
}
