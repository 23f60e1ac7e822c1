package entity

import (
	"fmt"
)

// Location 路口坐标
// 功能：以整数网格坐标(x, y)标识一个路口
type Location struct {
	X int32
	Y int32
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// Add 沿朝向移动一格（不处理越界）
func (l Location) Add(h Heading) Location {
	return Location{X: l.X + h.DX, Y: l.Y + h.DY}
}

// Distance 计算两个路口之间的L1距离
// 功能：返回曼哈顿距离|dx|+|dy|
// 参数：o-另一个路口坐标
// 返回：L1距离
func (l Location) Distance(o Location) int32 {
	return abs(o.X-l.X) + abs(o.Y-l.Y)
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Heading 车辆朝向
// 功能：单位方向向量(dx, dy)，有且仅有一个分量非零且绝对值为1
// 说明：y轴向下，因此北方为(0, -1)
type Heading struct {
	DX int32
	DY int32
}

// 四个合法朝向，顺序为东、北、西、南
var (
	East  = Heading{DX: 1, DY: 0}
	North = Heading{DX: 0, DY: -1}
	West  = Heading{DX: -1, DY: 0}
	South = Heading{DX: 0, DY: 1}

	Headings = []Heading{East, North, West, South}
)

// TurnLeft 左转90度后的朝向
func (h Heading) TurnLeft() Heading {
	return Heading{DX: h.DY, DY: -h.DX}
}

// TurnRight 右转90度后的朝向
func (h Heading) TurnRight() Heading {
	return Heading{DX: -h.DY, DY: h.DX}
}

// Dot 朝向点积，-1表示相向
func (h Heading) Dot(o Heading) int32 {
	return h.DX*o.DX + h.DY*o.DY
}

// Valid 检查是否为四个合法朝向之一
func (h Heading) Valid() bool {
	return abs(h.DX)+abs(h.DY) == 1
}

func (h Heading) String() string {
	switch h {
	case East:
		return "E"
	case North:
		return "N"
	case West:
		return "W"
	case South:
		return "S"
	}
	return fmt.Sprintf("Heading(%d, %d)", h.DX, h.DY)
}

// Action 车辆动作，同时用作路径提示（waypoint）与感知到的其他车辆意图
type Action int32

const (
	ActionNone    Action = iota // 不动（也表示“无车”或“已到达”）
	ActionForward               // 直行
	ActionLeft                  // 左转
	ActionRight                 // 右转
)

// Actions 所有合法动作，顺序与学习器的动作集一致
var Actions = []Action{ActionNone, ActionLeft, ActionForward, ActionRight}

// Moves 除ActionNone以外的移动动作
var Moves = []Action{ActionForward, ActionLeft, ActionRight}

// Valid 检查动作是否属于{none, forward, left, right}
func (a Action) Valid() bool {
	return a >= ActionNone && a <= ActionRight
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionForward:
		return "forward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	}
	return fmt.Sprintf("Action(%d)", int32(a))
}

// ParseAction 将字符串解析为动作
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if a.String() == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Light 相对于车辆朝向的信号灯颜色
type Light int32

const (
	LightRed Light = iota
	LightGreen
)

func (l Light) String() string {
	if l == LightGreen {
		return "green"
	}
	return "red"
}

// ParseLight 将字符串解析为信号灯颜色
func ParseLight(s string) (Light, error) {
	switch s {
	case "green":
		return LightGreen, nil
	case "red":
		return LightRed, nil
	}
	return LightRed, fmt.Errorf("unknown light %q", s)
}

// Perception 车辆在某一时刻的感知结果
// 功能：信号灯颜色以及同一路口对向、左侧、右侧来车的下一步意图
// 说明：没有车辆时对应字段为ActionNone
type Perception struct {
	Light    Light
	Oncoming Action
	Left     Action
	Right    Action
}

func (p Perception) String() string {
	return fmt.Sprintf("{light: %v, oncoming: %v, left: %v, right: %v}", p.Light, p.Oncoming, p.Left, p.Right)
}

// ActorState 环境中每个车辆的状态
// 功能：位置、朝向，以及主车辆特有的终点与截止时间
// 说明：非主车辆的Destination与Deadline为nil
type ActorState struct {
	Location    Location
	Heading     Heading
	Destination *Location
	Deadline    *int32
}

func (s ActorState) String() string {
	dest, deadline := "nil", "nil"
	if s.Destination != nil {
		dest = s.Destination.String()
	}
	if s.Deadline != nil {
		deadline = fmt.Sprint(*s.Deadline)
	}
	return fmt.Sprintf("ActorState{Location=%v, Heading=%v, Destination=%v, Deadline=%v}", s.Location, s.Heading, dest, deadline)
}
