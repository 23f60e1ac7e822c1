package entity

// Manager依赖倒置

// Bounds 路网边界，闭区间[MinX..MaxX]×[MinY..MaxY]
type Bounds struct {
	MinX, MinY int32
	MaxX, MaxY int32
}

// Contains 判断坐标是否在边界内
func (b Bounds) Contains(l Location) bool {
	return l.X >= b.MinX && l.X <= b.MaxX && l.Y >= b.MinY && l.Y <= b.MaxY
}

// Wrap 将越界坐标环绕回边界内（环面拓扑）
func (b Bounds) Wrap(l Location) Location {
	return Location{
		X: wrap(l.X, b.MinX, b.MaxX),
		Y: wrap(l.Y, b.MinY, b.MaxY),
	}
}

func wrap(v, lo, hi int32) int32 {
	n := hi - lo + 1
	return ((v-lo)%n+n)%n + lo
}

// Road 相邻路口之间的有向道路
type Road struct {
	From Location
	To   Location
}

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	Location() Location             // 路口坐标
	LightFor(heading Heading) Light // 以给定朝向看到的信号灯颜色
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	// 输入坐标，查找路口，如果不存在则panic
	Get(loc Location) IJunction
	// 输入坐标，查找路口，如果不存在则返回error
	GetOrError(loc Location) (IJunction, error)

	Bounds() Bounds        // 路网边界
	Locations() []Location // 所有路口坐标（固定顺序）
	Roads() []Road         // 所有道路
	Reset()                // 新一轮试验：重置所有信号灯计时
	Update(t int32)        // 更新阶段：更新所有信号灯
}
