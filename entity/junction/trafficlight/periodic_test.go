package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

func TestTogglesOncePerPeriod(t *testing.T) {
	for _, period := range []int32{1, 3, 4, 5, 9} {
		l := trafficlight.New(true, period)
		toggles := 0
		last := l.NSOpen()
		for step := int32(1); step <= period; step++ {
			l.Update(step)
			if l.NSOpen() != last {
				toggles++
				last = l.NSOpen()
			}
		}
		assert.Equal(t, 1, toggles, "period %d", period)
		assert.Equal(t, period, l.LastToggledAt())
	}
}

func TestToggleTiming(t *testing.T) {
	l := trafficlight.New(false, 3)
	for step := int32(0); step < 3; step++ {
		l.Update(step)
		assert.False(t, l.NSOpen(), "step %d", step)
	}
	l.Update(3)
	assert.True(t, l.NSOpen())
	l.Update(4)
	l.Update(5)
	assert.True(t, l.NSOpen())
	l.Update(6)
	assert.False(t, l.NSOpen())
	assert.Equal(t, int32(6), l.LastToggledAt())
}

func TestResetKeepsState(t *testing.T) {
	l := trafficlight.New(true, 2)
	l.Update(2)
	assert.False(t, l.NSOpen())
	l.Reset()
	assert.Equal(t, int32(0), l.LastToggledAt())
	assert.False(t, l.NSOpen())
	assert.Equal(t, int32(2), l.Period())
}

func TestNewRandom(t *testing.T) {
	g := randengine.New(1)
	seen := map[int32]bool{}
	for i := 0; i < 200; i++ {
		l := trafficlight.NewRandom(g, nil)
		assert.Contains(t, trafficlight.DefaultPeriods, l.Period())
		seen[l.Period()] = true
	}
	assert.Len(t, seen, len(trafficlight.DefaultPeriods))

	l := trafficlight.NewRandom(g, []int32{7})
	assert.Equal(t, int32(7), l.Period())
}

func TestInvalidPeriod(t *testing.T) {
	assert.Panics(t, func() { trafficlight.New(true, 0) })
}
