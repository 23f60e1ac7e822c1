package trafficlight

import (
	"fmt"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// DefaultPeriods 未指定周期时的候选切换周期
var DefaultPeriods = []int32{3, 4, 5}

// PeriodicTrafficLight 周期性二值信号灯
// 功能：在南北放行与东西放行之间按固定周期切换
// 说明：周期在创建时确定且不再改变；给定周期且无外部修改时状态序列是确定的
type PeriodicTrafficLight struct {
	nsOpen        bool  // true为南北向放行，false为东西向放行
	period        int32 // 切换周期
	lastToggledAt int32 // 上一次切换的时间步
}

// New 创建指定初始状态与周期的信号灯
// 参数：nsOpen-初始是否南北放行，period-切换周期（必须为正）
// 返回：信号灯实例
func New(nsOpen bool, period int32) *PeriodicTrafficLight {
	if period <= 0 {
		panic(fmt.Sprintf("trafficlight: period must be positive, got %d", period))
	}
	return &PeriodicTrafficLight{nsOpen: nsOpen, period: period}
}

// NewRandom 随机创建信号灯
// 功能：初始放行方向等概率选取，周期从periods中等概率选取
// 参数：generator-随机数引擎，periods-候选周期，为空时使用DefaultPeriods
// 返回：信号灯实例
func NewRandom(generator *randengine.Engine, periods []int32) *PeriodicTrafficLight {
	if len(periods) == 0 {
		periods = DefaultPeriods
	}
	nsOpen := generator.PTrue(0.5)
	period := randengine.Choice(generator, periods)
	return New(nsOpen, period)
}

// Update 更新阶段
// 功能：若距离上次切换已满一个周期，则切换放行方向并记录切换时间
// 参数：t-当前时间步
func (l *PeriodicTrafficLight) Update(t int32) {
	if t-l.lastToggledAt >= l.period {
		l.nsOpen = !l.nsOpen
		l.lastToggledAt = t
	}
}

// Reset 重置切换计时，放行方向保持不变
func (l *PeriodicTrafficLight) Reset() {
	l.lastToggledAt = 0
}

func (l *PeriodicTrafficLight) NSOpen() bool {
	return l.nsOpen
}

func (l *PeriodicTrafficLight) Period() int32 {
	return l.period
}

func (l *PeriodicTrafficLight) LastToggledAt() int32 {
	return l.lastToggledAt
}

func (l *PeriodicTrafficLight) String() string {
	axis := "EW"
	if l.nsOpen {
		axis = "NS"
	}
	return fmt.Sprintf("TrafficLight{open=%s, period=%d, last=%d}", axis, l.period, l.lastToggledAt)
}
