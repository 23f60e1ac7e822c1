package entity

import (
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// entity/vehicle的依赖倒置

// IActor 由环境逐步驱动的交通参与者
type IActor interface {
	ID() int32                   // 车辆ID，按注册顺序分配
	Reset(destination *Location) // 新一轮试验开始，非主车辆destination为nil
	Update(t int32)              // 每个时间步调用一次：感知、决策、执行
	NextWaypoint() Action        // 车辆下一步的意图，供其他车辆感知
}

// IEnvironment 车辆对环境的接口需求
type IEnvironment interface {
	// 感知：信号灯与同一路口其他车辆的意图，未注册的车辆会panic
	Sense(a IActor) Perception
	// 执行动作并返回奖励，未注册的车辆或非法动作符号会panic
	Act(a IActor, action Action) float64
	// 主车辆的剩余时间，非主车辆返回false
	Deadline(a IActor) (int32, bool)
	// 车辆当前位置与朝向
	Locate(a IActor) (Location, Heading)
	// 环境共享的随机数引擎
	Generator() *randengine.Engine
}
