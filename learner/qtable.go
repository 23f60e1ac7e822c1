package learner

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
)

// State 学习车辆的状态
// 功能：(信号灯颜色, 对向来车意图, 左侧来车意图, 路径提示)
type State struct {
	Light    entity.Light
	Oncoming entity.Action
	Left     entity.Action
	Waypoint entity.Action
}

func (s State) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", s.Light, s.Oncoming, s.Left, s.Waypoint)
}

type stateAction struct {
	State  State
	Action entity.Action
}

// Entry Q表中的一项
type Entry struct {
	State  State
	Action entity.Action
	Value  float64
}

// QTable 表格型动作价值函数
// 功能：(状态, 动作) -> 价值估计，未访问过的项视为0
// 说明：只在首次写入时创建条目，从不删除
type QTable struct {
	data map[stateAction]float64
}

// NewQTable 创建空Q表
func NewQTable() *QTable {
	return &QTable{data: make(map[stateAction]float64)}
}

// Get 读取价值估计，未访问过的项返回0
func (q *QTable) Get(s State, a entity.Action) float64 {
	return q.data[stateAction{State: s, Action: a}]
}

// Has 判断条目是否已创建
func (q *QTable) Has(s State, a entity.Action) bool {
	_, ok := q.data[stateAction{State: s, Action: a}]
	return ok
}

func (q *QTable) set(s State, a entity.Action, v float64) {
	q.data[stateAction{State: s, Action: a}] = v
}

// Len 已创建的条目数
func (q *QTable) Len() int {
	return len(q.data)
}

// Entries 按状态与动作排序的全部条目
func (q *QTable) Entries() []Entry {
	entries := make([]Entry, 0, len(q.data))
	for k, v := range q.data {
		entries = append(entries, Entry{State: k.State, Action: k.Action, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.State.Light, b.State.Light),
			cmp.Compare(a.State.Oncoming, b.State.Oncoming),
			cmp.Compare(a.State.Left, b.State.Left),
			cmp.Compare(a.State.Waypoint, b.State.Waypoint),
			cmp.Compare(a.Action, b.Action),
		)
	})
	return entries
}
