package route

import (
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
)

// Planner 面向正交网格的简易路径规划
// 功能：根据车辆当前位置、朝向与终点，给出下一步的方向提示
// 说明：无状态启发式，不考虑信号灯、其他车辆与环绕边界
type Planner struct {
	env         entity.IEnvironment
	actor       entity.IActor
	destination *entity.Location
}

// New 为指定车辆创建路径规划器
func New(env entity.IEnvironment, actor entity.IActor) *Planner {
	return &Planner{env: env, actor: actor}
}

// RouteTo 设置新的终点，nil表示没有终点
func (p *Planner) RouteTo(destination *entity.Location) {
	if destination == nil {
		p.destination = nil
		log.Debugf("actor %d: no destination", p.actor.ID())
		return
	}
	d := *destination
	p.destination = &d
	log.Debugf("actor %d: route to %v", p.actor.ID(), d)
}

// Destination 当前终点
func (p *Planner) Destination() (entity.Location, bool) {
	if p.destination == nil {
		return entity.Location{}, false
	}
	return *p.destination, true
}

// NextWaypoint 计算下一步方向提示
// 返回：ActionNone（已到达或无终点）、ActionForward、ActionLeft或ActionRight
func (p *Planner) NextWaypoint() entity.Action {
	if p.destination == nil {
		return entity.ActionNone
	}
	location, heading := p.env.Locate(p.actor)
	return Hint(location, heading, *p.destination)
}

// Hint 路径提示的核心启发式
// 功能：给定位置、朝向与终点，返回下一步方向
// 算法说明：
// 1. 已在终点：ActionNone
// 2. 东西方向仍有差距时优先处理：同向直行，反向右转（绕行掉头），垂直时按相对方位左转或右转
// 3. 否则处理南北方向，规则相同但垂直时的左右判定相反
func Hint(location entity.Location, heading entity.Heading, destination entity.Location) entity.Action {
	dx := destination.X - location.X
	dy := destination.Y - location.Y
	switch {
	case dx == 0 && dy == 0:
		return entity.ActionNone
	case dx != 0:
		switch {
		case dx*heading.DX > 0:
			return entity.ActionForward
		case dx*heading.DX < 0:
			return entity.ActionRight
		case dx*heading.DY > 0:
			return entity.ActionLeft
		default:
			return entity.ActionRight
		}
	default:
		switch {
		case dy*heading.DY > 0:
			return entity.ActionForward
		case dy*heading.DY < 0:
			return entity.ActionRight
		case dy*heading.DX > 0:
			return entity.ActionRight
		default:
			return entity.ActionLeft
		}
	}
}
