package clock

import (
	"fmt"
	"sync"
)

// Clock 仿真时钟
// 功能：记录当前试验编号、试验内时间步与累计时间步
// 说明：只由仿真主循环写入；写入时加锁，以便RPC协程读取一致的快照
type Clock struct {
	Trial     int32 // 当前试验编号，从1开始，0表示尚未开始
	T         int32 // 当前试验内的时间步
	TotalStep int64 // 所有试验累计的时间步

	mtx sync.RWMutex
}

// New 创建新的时钟实例
func New() *Clock {
	return &Clock{}
}

// Init 开始新一轮试验
// 功能：试验编号加一，试验内时间步归零，累计时间步保持不变
func (c *Clock) Init() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.Trial++
	c.T = 0
}

// Tick 推进一个时间步
func (c *Clock) Tick() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.T++
	c.TotalStep++
}

// Snapshot 获取一致的时钟快照（线程安全）
// 返回：试验编号、试验内时间步、累计时间步
func (c *Clock) Snapshot() (trial, t int32, total int64) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return c.Trial, c.T, c.TotalStep
}

// String 获取时钟的字符串表示
func (c *Clock) String() string {
	trial, t, total := c.Snapshot()
	return fmt.Sprintf("trial %d step %d (total %d)", trial, t, total)
}
