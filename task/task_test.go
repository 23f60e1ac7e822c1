package task_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/clock"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/environment"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/output"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/task"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func testConfig(trials int32) config.Config {
	c := config.Default()
	c.Control.Trials = trials
	c.Control.Seed = 7
	return c
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(10)
	c.Output.Excel = filepath.Join(dir, "trials.xlsx")
	c.Output.Chart = filepath.Join(dir, "curve.html")
	c.Agent.Snapshot = filepath.Join(dir, "q.pb")

	ctx := task.NewContext("job0", c)
	defer ctx.Close()
	assert.Len(t, ctx.Environment().Actors(), 4)
	assert.Same(t, ctx.Environment().Primary(), ctx.Agent())

	require.NoError(t, ctx.Run(context.Background()))

	records := ctx.Recorder().Records()
	require.Len(t, records, 10)
	var steps int64
	for i, r := range records {
		assert.Equal(t, int32(i+1), r.Trial)
		assert.GreaterOrEqual(t, r.Start.Distance(r.Destination), int32(4))
		assert.Equal(t, 5*r.Start.Distance(r.Destination), r.InitialDeadline)
		// 强制截止时间且不限步数时每轮都会结束
		assert.Contains(t, []environment.Outcome{environment.OutcomeReached, environment.OutcomeOutOfTime}, r.Outcome)
		assert.LessOrEqual(t, r.Steps, r.InitialDeadline+1)
		steps += int64(r.Steps)
	}
	assert.Equal(t, steps, ctx.Agent().Learner().Time())
	_, _, total := ctx.Clock().Snapshot()
	assert.Equal(t, steps, total)

	assert.FileExists(t, c.Output.Excel)
	assert.FileExists(t, c.Output.Chart)
	assert.FileExists(t, c.Agent.Snapshot)

	// 新任务从快照继续学习
	c2 := testConfig(0)
	c2.Agent.Load = c.Agent.Snapshot
	ctx2 := task.NewContext("job1", c2)
	defer ctx2.Close()
	assert.Equal(t, ctx.Agent().Learner().Table().Entries(), ctx2.Agent().Learner().Table().Entries())
	assert.Equal(t, steps, ctx2.Agent().Learner().Time())
}

func TestRunDeterministic(t *testing.T) {
	run := func() []output.TrialRecord {
		ctx := task.NewContext("job0", testConfig(5))
		defer ctx.Close()
		require.NoError(t, ctx.Run(context.Background()))
		return ctx.Recorder().Records()
	}
	assert.Equal(t, run(), run())
}

func TestRunMaxSteps(t *testing.T) {
	c := testConfig(3)
	c.Control.MaxSteps = 2
	ctx := task.NewContext("job0", c)
	defer ctx.Close()
	require.NoError(t, ctx.Run(context.Background()))
	for _, r := range ctx.Recorder().Records() {
		assert.Equal(t, int32(2), r.Steps)
		assert.Equal(t, environment.OutcomeNone, r.Outcome)
	}
	assert.Equal(t, 3, ctx.Recorder().Summary().Unfinished)
}

func TestRunCancelled(t *testing.T) {
	runCtx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx := task.NewContext("job0", testConfig(5))
	defer ctx.Close()
	require.NoError(t, ctx.Run(runCtx))
	assert.Equal(t, 0, ctx.Recorder().Len())
}

func TestServe(t *testing.T) {
	ctx := task.NewContext("job0", testConfig(3))
	require.NoError(t, ctx.Serve("127.0.0.1:0"))
	defer ctx.Close()
	require.NoError(t, ctx.Run(context.Background()))

	base := "http://" + ctx.Addr()
	now := connect.NewClient[emptypb.Empty, structpb.Struct](http.DefaultClient, base+clock.NowProcedure)
	res, err := now.CallUnary(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Msg.GetFields()["trial"].GetNumberValue())

	summary := connect.NewClient[emptypb.Empty, structpb.Struct](http.DefaultClient, base+output.SummaryProcedure)
	res, err = summary.CallUnary(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Msg.GetFields()["trials"].GetNumberValue())

	light := connect.NewClient[structpb.Struct, structpb.Struct](http.DefaultClient, base+junction.GetTrafficLightProcedure)
	req, err := structpb.NewStruct(map[string]any{"x": 1, "y": 1})
	require.NoError(t, err)
	res, err = light.CallUnary(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	assert.Contains(t, []float64{3, 4, 5}, res.Msg.GetFields()["period"].GetNumberValue())
}
