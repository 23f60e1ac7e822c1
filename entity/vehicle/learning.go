package vehicle

import (
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/vehicle/route"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/learner"
)

// LearningVehicle 学习车辆（主车辆）
// 功能：按路径提示与感知构造状态，用Q学习选择动作并从奖励中学习
type LearningVehicle struct {
	id      int32
	env     entity.IEnvironment
	planner *route.Planner
	learner *learner.Learner

	nextWaypoint entity.Action // 本步开始时的路径提示，供其他车辆感知
	state        learner.State // 最近一次的状态

	// 当前试验的统计
	trialReward float64
	trialErrors float64
	steps       int32
}

var _ entity.IActor = (*LearningVehicle)(nil)

// NewLearningVehicleFactory 返回学习车辆的构造函数，用于Environment.Register
// 参数：gamma-折扣因子
func NewLearningVehicleFactory(gamma float64) func(env entity.IEnvironment, id int32) entity.IActor {
	return func(env entity.IEnvironment, id int32) entity.IActor {
		v := &LearningVehicle{
			id:      id,
			env:     env,
			learner: learner.New(gamma, env.Generator()),
		}
		v.planner = route.New(env, v)
		return v
	}
}

func (v *LearningVehicle) ID() int32 {
	return v.id
}

// Reset 新一轮试验：更新终点并清空本轮统计，Q表保留
func (v *LearningVehicle) Reset(destination *entity.Location) {
	v.planner.RouteTo(destination)
	v.trialReward = 0
	v.trialErrors = 0
	v.steps = 0
}

func (v *LearningVehicle) NextWaypoint() entity.Action {
	return v.nextWaypoint
}

// Update 执行一步
// 算法说明：
// 1. 获取路径提示、感知结果与剩余时间
// 2. 状态 = (信号灯, 对向意图, 左侧意图, 路径提示)
// 3. 选择价值最大的动作并执行，用得到的奖励更新Q表
func (v *LearningVehicle) Update(t int32) {
	v.nextWaypoint = v.planner.NextWaypoint()
	inputs := v.env.Sense(v)
	deadline, _ := v.env.Deadline(v)

	v.state = learner.State{
		Light:    inputs.Light,
		Oncoming: inputs.Oncoming,
		Left:     inputs.Left,
		Waypoint: v.nextWaypoint,
	}
	action := v.learner.BestAction(v.state)
	reward := v.env.Act(v, action)
	v.learner.Learn(v.state, action, reward)

	v.steps++
	v.trialReward += reward
	if reward < 0 {
		v.trialErrors += reward
	}
	log.Debugf("LearningVehicle.Update(): t = %d, deadline = %d, inputs = %v, action = %v, reward = %v", t, deadline, inputs, action, reward)
}

// Learner Q学习器
func (v *LearningVehicle) Learner() *learner.Learner {
	return v.learner
}

func (v *LearningVehicle) State() learner.State {
	return v.state
}

// TrialReward 本轮累计奖励
func (v *LearningVehicle) TrialReward() float64 {
	return v.trialReward
}

// TrialErrors 本轮负奖励之和
func (v *LearningVehicle) TrialErrors() float64 {
	return v.trialErrors
}

// Steps 本轮已执行的步数
func (v *LearningVehicle) Steps() int32 {
	return v.steps
}
