package task

import (
	"context"
	"errors"
	"flag"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/output"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// step 推进一个时间步，返回本轮试验是否结束
func (ctx *Context) step() bool {
	ctx.mtx.Lock()
	ctx.env.Step()
	done := ctx.env.Done()
	ctx.mtx.Unlock()

	if interval := int64(*heartBeatInterval); interval > 0 {
		if _, _, total := ctx.env.Clock().Snapshot(); total%interval == 0 {
			log.Infof("STEP: %v", ctx.env.Clock())
		}
	}
	log.Debugf("%v: %s", ctx.env.Clock(), ctx.env.StatusText())
	return done
}

// runTrial 运行一轮试验并记录结果
// 算法说明：
// 1. 重置环境，记录主车辆的起终点与截止时间
// 2. 逐步推进直到试验结束、达到每轮步数上限或收到停止信号
// 3. 汇总学习车辆本轮的奖励与步数
func (ctx *Context) runTrial(runCtx context.Context) output.TrialRecord {
	ctx.mtx.Lock()
	ctx.env.Reset()
	initial := ctx.env.State(ctx.agent)
	ctx.mtx.Unlock()

	maxSteps := ctx.runtimeConfig.C.MaxSteps
	for n := int32(0); maxSteps == 0 || n < maxSteps; n++ {
		if runCtx.Err() != nil {
			log.Warnf("trial %d interrupted", ctx.env.Clock().Trial)
			break
		}
		if ctx.step() {
			break
		}
	}

	ctx.mtx.RLock()
	defer ctx.mtx.RUnlock()
	remaining, _ := ctx.env.Deadline(ctx.agent)
	return output.TrialRecord{
		Trial:             ctx.env.Clock().Trial,
		Start:             initial.Location,
		Destination:       *initial.Destination,
		InitialDeadline:   *initial.Deadline,
		RemainingDeadline: remaining,
		Steps:             ctx.agent.Steps(),
		Reward:            ctx.agent.TrialReward(),
		Errors:            ctx.agent.TrialErrors(),
		Outcome:           ctx.env.Outcome(),
		QTableSize:        ctx.agent.Learner().Table().Len(),
	}
}

// Run 运行
// 功能：依次运行配置的试验轮数，结束后导出报告并保存Q表
// 参数：runCtx-取消时在当前步结束后停止
// 返回：导出过程中的错误
func (ctx *Context) Run(runCtx context.Context) error {
	trials := ctx.runtimeConfig.C.Trials
	for range trials {
		if runCtx.Err() != nil {
			break
		}
		ctx.recorder.Record(ctx.runTrial(runCtx))
	}
	summary := ctx.recorder.Summary()
	log.Infof("%d/%d trials complete", summary.Trials, trials)
	log.Infof("%v", summary)
	return ctx.export()
}

// export 按配置导出Excel报告、学习曲线与Q表快照
func (ctx *Context) export() error {
	out := ctx.runtimeConfig.All.Output
	records := ctx.recorder.Records()
	var errs []error
	if out.Excel != "" {
		errs = append(errs, output.WriteExcel(out.Excel, records))
	}
	if out.Chart != "" {
		errs = append(errs, output.WriteChart(out.Chart, records))
	}
	if path := ctx.runtimeConfig.All.Agent.Snapshot; path != "" {
		errs = append(errs, ctx.agent.Learner().Save(path))
	}
	return errors.Join(errs...)
}
