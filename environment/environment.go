package environment

import (
	"fmt"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/clock"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/container"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// 奖励取值
const (
	RewardIllegal      = -1.0 // 违反交通规则的动作，不移动
	RewardIdle         = 0.0  // 合法的原地不动
	RewardOnRoute      = 2.0  // 合法移动且与路径提示一致
	RewardOffRoute     = -0.5 // 合法移动但与路径提示不一致
	RewardArrivalBonus = 10.0 // 主车辆在截止时间内到达终点的额外奖励
)

// Outcome 试验结束原因
type Outcome int32

const (
	OutcomeNone      Outcome = iota // 试验未结束
	OutcomeReached                  // 主车辆到达终点
	OutcomeOutOfTime                // 强制截止时间下剩余时间耗尽
	OutcomeHardLimit                // 剩余时间降到硬性下限
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReached:
		return "reached destination"
	case OutcomeOutOfTime:
		return "ran out of time"
	case OutcomeHardLimit:
		return "hit hard time limit"
	}
	return "none"
}

// actorRecord 环境中登记的车辆及其状态
type actorRecord struct {
	actor entity.IActor
	state entity.ActorState
}

// Environment 网格交通环境
// 功能：持有路网、信号灯、全部车辆状态与全局时间，逐步驱动所有车辆
// 说明：
//   - 单线程顺序推进，车辆按注册顺序更新，先更新的车辆的移动对后更新的车辆立即可见
//   - 车辆状态只能通过Act与Reset修改
type Environment struct {
	world     config.World
	generator *randengine.Engine
	clock     *clock.Clock

	junctionManager *junction.JunctionManager
	actors          *container.OrderedMap[int32, *actorRecord] // 注册顺序即更新顺序
	nextID          int32

	primary         entity.IActor
	enforceDeadline bool

	done       bool
	outcome    Outcome
	statusText string
}

var _ entity.IEnvironment = (*Environment)(nil)

// New 创建环境
// 功能：按配置构建[1..cols]×[1..rows]的网格路网及其信号灯
// 参数：world-路网配置，generator-随机数引擎（环境内所有随机抽样的唯一来源）
// 返回：环境实例
func New(world config.World, generator *randengine.Engine) *Environment {
	bounds := entity.Bounds{MinX: 1, MinY: 1, MaxX: world.Cols, MaxY: world.Rows}
	return &Environment{
		world:           world,
		generator:       generator,
		clock:           clock.New(),
		junctionManager: junction.NewManager(bounds, generator, world.LightPeriods),
		actors:          container.NewOrderedMap[int32, *actorRecord](),
	}
}

// Register 创建并登记一个车辆
// 功能：分配ID并调用factory创建车辆，随机选择起始路口，初始朝向为南
// 参数：factory-车辆构造函数，接收环境与分配的ID
// 返回：创建的车辆，可用于之后的Sense、Act等调用
func (e *Environment) Register(factory func(env entity.IEnvironment, id int32) entity.IActor) entity.IActor {
	id := e.nextID
	e.nextID++
	a := factory(e, id)
	if a == nil || a.ID() != id {
		log.Panicf("actor factory must return an actor with id %d", id)
	}
	e.actors.Set(id, &actorRecord{
		actor: a,
		state: entity.ActorState{
			Location: randengine.Choice(e.generator, e.junctionManager.Locations()),
			Heading:  entity.South,
		},
	})
	return a
}

// SetPrimary 指定主车辆
// 功能：只有主车辆有终点与截止时间，且只有主车辆的到达或超时会结束试验
// 参数：a-已登记的车辆，enforceDeadline-是否在剩余时间耗尽时结束试验
func (e *Environment) SetPrimary(a entity.IActor, enforceDeadline bool) {
	e.mustRecord(a)
	e.primary = a
	e.enforceDeadline = enforceDeadline
}

// Reset 开始新一轮试验
// 功能：时间归零，重置信号灯计时，为主车辆抽取起终点与截止时间，随机放置其他车辆
// 算法说明：
// 1. 等概率抽取起点与终点，L1距离小于MinDistance时重新抽取
// 2. 主车辆随机朝向，截止时间 = DeadlineFactor × L1距离
// 3. 按注册顺序设置每个车辆的状态并调用其Reset（非主车辆终点为nil）
func (e *Environment) Reset() {
	locs := e.junctionManager.Locations()
	start := randengine.Choice(e.generator, locs)
	destination := randengine.Choice(e.generator, locs)
	for start.Distance(destination) < e.world.MinDistance {
		start = randengine.Choice(e.generator, locs)
		destination = randengine.Choice(e.generator, locs)
	}
	heading := randengine.Choice(e.generator, entity.Headings)
	e.setupTrial(start, destination, heading)
}

// setupTrial 以给定的起终点与朝向开始新一轮试验
func (e *Environment) setupTrial(start, destination entity.Location, heading entity.Heading) {
	e.done = false
	e.outcome = OutcomeNone
	e.statusText = ""
	e.clock.Init()
	e.junctionManager.Reset()

	deadline := start.Distance(destination) * e.world.DeadlineFactor
	log.Infof("trial %d set up with start = %v, destination = %v, deadline = %d", e.clock.Trial, start, destination, deadline)

	locs := e.junctionManager.Locations()
	for _, rec := range e.actors.Values() {
		if rec.actor == e.primary {
			dest, dl := destination, deadline
			rec.state = entity.ActorState{
				Location:    start,
				Heading:     heading,
				Destination: &dest,
				Deadline:    &dl,
			}
		} else {
			rec.state = entity.ActorState{
				Location: randengine.Choice(e.generator, locs),
				Heading:  randengine.Choice(e.generator, entity.Headings),
			}
		}
		rec.actor.Reset(rec.state.Destination)
	}
}

// Step 推进一个时间步
// 功能：先以本步开始时的时间更新所有信号灯，再按注册顺序更新所有车辆，然后时间加一并检查主车辆的截止时间
// 说明：截止时间检查使用扣减前的值；已因到达而结束的试验不再判定超时
func (e *Environment) Step() {
	t := e.clock.T
	e.junctionManager.Update(t)
	for _, rec := range e.actors.Values() {
		rec.actor.Update(t)
	}
	e.clock.Tick()

	if e.primary == nil {
		return
	}
	state := &e.mustRecord(e.primary).state
	if state.Deadline == nil {
		log.Panicf("primary actor %d has no deadline, Reset must be called before Step", e.primary.ID())
	}
	deadline := *state.Deadline
	if !e.done {
		if deadline <= e.world.HardTimeLimit {
			e.finish(OutcomeHardLimit)
			log.Infof("primary vehicle hit hard time limit (%d)! trial aborted.", e.world.HardTimeLimit)
		} else if e.enforceDeadline && deadline <= 0 {
			e.finish(OutcomeOutOfTime)
			log.Infof("primary vehicle ran out of time! trial aborted.")
		}
	}
	*state.Deadline = deadline - 1
}

func (e *Environment) finish(outcome Outcome) {
	e.done = true
	e.outcome = outcome
}

// Sense 计算车辆的感知结果
// 功能：信号灯颜色（放行轴与行驶方向一致为绿灯），以及同一路口对向、左侧、右侧车辆的下一步意图
// 参数：a-已登记的车辆，未登记时panic
// 返回：感知结果
// 算法说明：
// 1. 跳过自身、不在同一路口的车辆以及与自身同向的车辆
// 2. 相向车辆写入oncoming，已记录的左转意图不被覆盖
// 3. 朝向为自身左转方向的车辆写入right，已记录的直行或左转意图不被覆盖
// 4. 其余车辆写入left，已记录的直行意图不被覆盖
func (e *Environment) Sense(a entity.IActor) entity.Perception {
	rec := e.mustRecord(a)
	location, heading := rec.state.Location, rec.state.Heading
	p := entity.Perception{
		Light: e.junctionManager.Get(location).LightFor(heading),
	}
	for _, other := range e.actors.Values() {
		if other == rec || other.state.Location != location || other.state.Heading == heading {
			continue
		}
		intent := other.actor.NextWaypoint()
		oh := other.state.Heading
		switch {
		case heading.Dot(oh) == -1:
			if p.Oncoming != entity.ActionLeft {
				p.Oncoming = intent
			}
		case heading.DY == oh.DX && -heading.DX == oh.DY:
			if p.Right != entity.ActionForward && p.Right != entity.ActionLeft {
				p.Right = intent
			}
		default:
			if p.Left != entity.ActionForward {
				p.Left = intent
			}
		}
	}
	return p
}

// Act 执行车辆动作并返回奖励
// 功能：依据调用时的信号灯与感知判断动作是否合法，合法则移动（越界环绕），并计算奖励
// 参数：a-已登记的车辆，action-动作，未登记的车辆或非法动作符号会panic
// 返回：奖励
// 算法说明：
// 1. forward：绿灯合法；left：绿灯且无对向来车或对向车辆也左转；right：绿灯或左侧车辆不直行
// 2. 违规：-1且不移动；合法不动：0；合法移动：与路径提示一致+2，否则-0.5
// 3. 主车辆移动到终点时结束试验，若剩余时间（本步扣减前）不小于0则额外+10
func (e *Environment) Act(a entity.IActor, action entity.Action) float64 {
	rec := e.mustRecord(a)
	if !action.Valid() {
		log.Panicf("invalid action %v from actor %d", action, a.ID())
	}
	state := &rec.state
	sense := e.Sense(a)
	heading := state.Heading

	moveOkay := true
	switch action {
	case entity.ActionForward:
		if sense.Light != entity.LightGreen {
			moveOkay = false
		}
	case entity.ActionLeft:
		if sense.Light == entity.LightGreen && (sense.Oncoming == entity.ActionNone || sense.Oncoming == entity.ActionLeft) {
			heading = heading.TurnLeft()
		} else {
			moveOkay = false
		}
	case entity.ActionRight:
		if sense.Light == entity.LightGreen || sense.Left != entity.ActionForward {
			heading = heading.TurnRight()
		} else {
			moveOkay = false
		}
	}

	var reward float64
	switch {
	case !moveOkay:
		reward = RewardIllegal
	case action == entity.ActionNone:
		reward = RewardIdle
	default:
		state.Location = e.junctionManager.Bounds().Wrap(state.Location.Add(heading))
		state.Heading = heading
		if action == a.NextWaypoint() {
			reward = RewardOnRoute
		} else {
			reward = RewardOffRoute
		}
	}

	if rec.actor == e.primary {
		if state.Destination != nil && state.Location == *state.Destination {
			if *state.Deadline >= 0 {
				reward += RewardArrivalBonus
			}
			e.finish(OutcomeReached)
			log.Infof("primary vehicle has reached destination!")
		}
		e.statusText = fmt.Sprintf("inputs: %v\naction: %v\nreward: %v", sense, action, reward)
	}
	return reward
}

// Deadline 获取主车辆的剩余时间
// 返回：剩余时间，非主车辆返回false
func (e *Environment) Deadline(a entity.IActor) (int32, bool) {
	rec := e.mustRecord(a)
	if rec.actor != e.primary || rec.state.Deadline == nil {
		return 0, false
	}
	return *rec.state.Deadline, true
}

// Locate 获取车辆的位置与朝向
func (e *Environment) Locate(a entity.IActor) (entity.Location, entity.Heading) {
	rec := e.mustRecord(a)
	return rec.state.Location, rec.state.Heading
}

// State 获取车辆状态的副本
func (e *Environment) State(a entity.IActor) entity.ActorState {
	s := e.mustRecord(a).state
	if s.Destination != nil {
		d := *s.Destination
		s.Destination = &d
	}
	if s.Deadline != nil {
		d := *s.Deadline
		s.Deadline = &d
	}
	return s
}

// mustRecord 查找已登记的车辆，不存在则panic
func (e *Environment) mustRecord(a entity.IActor) *actorRecord {
	if a == nil {
		log.Panicf("unknown actor: nil")
	}
	rec, ok := e.actors.Get(a.ID())
	if !ok || rec.actor != a {
		log.Panicf("unknown actor %d", a.ID())
	}
	return rec
}

func (e *Environment) Generator() *randengine.Engine {
	return e.generator
}

func (e *Environment) Clock() *clock.Clock {
	return e.clock
}

func (e *Environment) JunctionManager() *junction.JunctionManager {
	return e.junctionManager
}

// Actors 按注册顺序返回所有车辆
func (e *Environment) Actors() []entity.IActor {
	actors := make([]entity.IActor, 0, e.actors.Len())
	e.actors.Range(func(_ int32, rec *actorRecord) bool {
		actors = append(actors, rec.actor)
		return true
	})
	return actors
}

func (e *Environment) Primary() entity.IActor {
	return e.primary
}

// T 当前试验内的时间步
func (e *Environment) T() int32 {
	return e.clock.T
}

// Done 当前试验是否已结束
func (e *Environment) Done() bool {
	return e.done
}

// Outcome 当前试验的结束原因
func (e *Environment) Outcome() Outcome {
	return e.outcome
}

// StatusText 主车辆最近一次动作的描述
func (e *Environment) StatusText() string {
	return e.statusText
}
