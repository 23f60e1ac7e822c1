package learner

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// Learner Q学习器
// 功能：基于Q表的动作选择与价值更新
// 说明：
//   - 学习率alpha = 1/time，time为学习器的全局更新次数，而不是每个(状态, 动作)的访问次数
//   - 更新目标中的“下一状态最优价值”使用的是本步选择动作时记录的当前状态最优价值
type Learner struct {
	table     *QTable
	gamma     float64
	generator *randengine.Engine

	time         int64   // 全局更新次数
	optimalValue float64 // 最近一次BestAction记录的最大价值
	errors       float64 // 所有负奖励之和，仅用于诊断
}

// New 创建Q学习器
// 参数：gamma-折扣因子，generator-随机数引擎（用于打破平局）
// 返回：Q学习器实例
func New(gamma float64, generator *randengine.Engine) *Learner {
	return &Learner{
		table:     NewQTable(),
		gamma:     gamma,
		generator: generator,
	}
}

// BestAction 选择价值最大的动作
// 功能：读取状态下四个动作的价值（未访问为0），在所有取得最大值的动作中等概率随机选择一个
// 参数：s-当前状态
// 返回：选中的动作
// 说明：最大值会被记录为optimalValue，供随后的Learn使用
func (l *Learner) BestAction(s State) entity.Action {
	values := lo.Map(entity.Actions, func(a entity.Action, _ int) float64 {
		return l.table.Get(s, a)
	})
	best := lo.Max(values)
	optimal := lo.Filter(entity.Actions, func(_ entity.Action, i int) bool {
		return values[i] == best
	})
	l.optimalValue = best
	return randengine.Choice(l.generator, optimal)
}

// Learn 更新(状态, 动作)的价值
// 功能：Q[s,a] ← (1-α)·Q[s,a] + α·(r + γ·optimalValue)，α = 1/time
// 参数：s-状态，a-执行的动作，reward-获得的奖励
func (l *Learner) Learn(s State, a entity.Action, reward float64) {
	l.time++
	alpha := 1.0 / float64(l.time)
	if reward < 0 {
		l.errors += reward
	}
	old := l.table.Get(s, a)
	l.table.set(s, a, (1-alpha)*old+alpha*(reward+l.gamma*l.optimalValue))
}

// Table Q表（只读使用）
func (l *Learner) Table() *QTable {
	return l.table
}

func (l *Learner) Gamma() float64 {
	return l.gamma
}

// Time 全局更新次数
func (l *Learner) Time() int64 {
	return l.time
}

// OptimalValue 最近一次BestAction记录的最大价值
func (l *Learner) OptimalValue() float64 {
	return l.optimalValue
}

// Errors 累计负奖励
func (l *Learner) Errors() float64 {
	return l.errors
}
