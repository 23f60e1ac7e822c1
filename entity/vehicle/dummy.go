package vehicle

import (
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// FixedPolicyVehicle 背景车辆
// 功能：随机选择下一步意图，在交通规则允许时执行，否则原地等待
// 说明：没有终点与截止时间，不参与学习
type FixedPolicyVehicle struct {
	id           int32
	env          entity.IEnvironment
	nextWaypoint entity.Action
}

var _ entity.IActor = (*FixedPolicyVehicle)(nil)

// NewFixedPolicyVehicle 背景车辆的构造函数，用于Environment.Register
func NewFixedPolicyVehicle(env entity.IEnvironment, id int32) entity.IActor {
	return &FixedPolicyVehicle{
		id:           id,
		env:          env,
		nextWaypoint: randengine.Choice(env.Generator(), entity.Moves),
	}
}

func (v *FixedPolicyVehicle) ID() int32 {
	return v.id
}

// Reset 背景车辆没有需要重置的状态，待执行的意图跨试验保留
func (v *FixedPolicyVehicle) Reset(destination *entity.Location) {}

func (v *FixedPolicyVehicle) NextWaypoint() entity.Action {
	return v.nextWaypoint
}

// Update 执行一步
// 算法说明：
// 1. 感知信号灯与周围车辆
// 2. 按意图判断是否可行：右转在红灯且左侧来车直行时不可行；直行在红灯时不可行；
// 左转在红灯或对向车辆直行、右转时不可行
// 3. 可行则执行该意图并在执行前重新抽取下一个意图，否则执行none
func (v *FixedPolicyVehicle) Update(t int32) {
	inputs := v.env.Sense(v)
	action := entity.ActionNone
	if Permitted(v.nextWaypoint, inputs) {
		action = v.nextWaypoint
		v.nextWaypoint = randengine.Choice(v.env.Generator(), entity.Moves)
	}
	v.env.Act(v, action)
}

// Permitted 背景车辆使用的保守通行判断
func Permitted(intent entity.Action, inputs entity.Perception) bool {
	red := inputs.Light == entity.LightRed
	switch intent {
	case entity.ActionRight:
		return !(red && inputs.Left == entity.ActionForward)
	case entity.ActionForward:
		return !red
	case entity.ActionLeft:
		return !red && inputs.Oncoming != entity.ActionForward && inputs.Oncoming != entity.ActionRight
	}
	return true
}
