package junction

// 依赖倒置，表达junction对信号灯实现的接口需求

// 给交通参与者提供的信控读取接口
type ITrafficLightGetter interface {
	NSOpen() bool         // true为南北向放行，false为东西向放行
	Period() int32        // 切换周期（时间步）
	LastToggledAt() int32 // 上一次切换的时间步
}

// 信号灯接口
type ITrafficLight interface {
	ITrafficLightGetter
	Update(t int32) // 更新阶段，按周期切换
	Reset()         // 新一轮试验，只重置计时，不重置放行方向
}
