package learner_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/learner"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

var s1 = learner.State{Light: entity.LightGreen, Oncoming: entity.ActionNone, Left: entity.ActionNone, Waypoint: entity.ActionForward}
var s2 = learner.State{Light: entity.LightRed, Oncoming: entity.ActionLeft, Left: entity.ActionForward, Waypoint: entity.ActionRight}

func TestBestActionUniformOnUntouchedState(t *testing.T) {
	l := learner.New(0.5, randengine.New(3))
	const n = 4000
	counts := map[entity.Action]int{}
	for i := 0; i < n; i++ {
		counts[l.BestAction(s1)]++
	}
	assert.Len(t, counts, len(entity.Actions))
	for _, a := range entity.Actions {
		assert.InDelta(t, n/4, counts[a], n/4*0.15, "action %v", a)
	}
	assert.Equal(t, 0.0, l.OptimalValue())
	assert.Equal(t, 0, l.Table().Len())
}

func TestLaggedUpdate(t *testing.T) {
	l := learner.New(0.5, randengine.New(0))

	a := l.BestAction(s1)
	l.Learn(s1, a, 2.0)
	// alpha = 1，optimalValue = 0
	assert.Equal(t, 2.0, l.Table().Get(s1, a))
	assert.Equal(t, int64(1), l.Time())

	// 唯一的最大值，必然被选中
	assert.Equal(t, a, l.BestAction(s1))
	assert.Equal(t, 2.0, l.OptimalValue())
	l.Learn(s1, a, -1.0)
	// alpha = 1/2：0.5*2 + 0.5*(-1 + 0.5*2)
	assert.Equal(t, 1.0, l.Table().Get(s1, a))
	assert.Equal(t, -1.0, l.Errors())

	// 全局学习率：新状态的首次更新alpha = 1/3
	l.BestAction(s2)
	l.Learn(s2, entity.ActionRight, 3.0)
	assert.InDelta(t, 1.0, l.Table().Get(s2, entity.ActionRight), 1e-12)
	assert.Equal(t, 2, l.Table().Len())
	assert.Equal(t, -1.0, l.Errors())
}

func TestTieBreakAmongMaxima(t *testing.T) {
	l := learner.New(0.5, randengine.New(9))
	l.BestAction(s1)
	l.Learn(s1, entity.ActionLeft, 1.0)
	l.BestAction(s1)
	l.Learn(s1, entity.ActionRight, 2.0)
	// left = 1, right = 0.5*0 + 0.5*(2 + 0.5*1) = 1.25
	for i := 0; i < 50; i++ {
		assert.Equal(t, entity.ActionRight, l.BestAction(s1))
	}
	assert.Equal(t, 1.25, l.OptimalValue())
}

func TestSnapshot(t *testing.T) {
	l := learner.New(0.35, randengine.New(0))
	l.BestAction(s1)
	l.Learn(s1, entity.ActionForward, 2.0)
	l.BestAction(s2)
	l.Learn(s2, entity.ActionNone, -1.0)

	path := filepath.Join(t.TempDir(), "q.pb")
	require.NoError(t, l.Save(path))

	restored := learner.New(0.35, randengine.New(0))
	require.NoError(t, restored.Load(path))
	assert.Equal(t, l.Table().Entries(), restored.Table().Entries())
	assert.Equal(t, l.Time(), restored.Time())

	assert.Error(t, restored.Load(filepath.Join(t.TempDir(), "missing.pb")))
}
