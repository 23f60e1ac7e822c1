package junction

import (
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
)

// Junction 网格路口
// 功能：路网中的一个交叉口，持有一个信号灯
type Junction struct {
	location     entity.Location
	trafficLight ITrafficLight // 信号灯模块
	neighbors    []entity.Location
}

// newJunction 创建并初始化一个新的Junction实例
// 参数：location-路口坐标，tl-信号灯
// 返回：Junction实例
func newJunction(location entity.Location, tl ITrafficLight) *Junction {
	return &Junction{
		location:     location,
		trafficLight: tl,
		neighbors:    make([]entity.Location, 0, 4),
	}
}

// Location 获取路口坐标
func (j *Junction) Location() entity.Location {
	return j.location
}

// LightFor 计算以给定朝向通过该路口时看到的信号灯颜色
// 功能：信号灯放行的轴线与行驶方向一致时为绿灯，否则为红灯
// 参数：heading-车辆朝向
// 返回：相对于该朝向的信号灯颜色
func (j *Junction) LightFor(heading entity.Heading) entity.Light {
	nsOpen := j.trafficLight.NSOpen()
	if (nsOpen && heading.DY != 0) || (!nsOpen && heading.DX != 0) {
		return entity.LightGreen
	}
	return entity.LightRed
}

// TrafficLight 获取信号灯只读接口
func (j *Junction) TrafficLight() ITrafficLightGetter {
	return j.trafficLight
}

// SetTrafficLight 替换信号灯
// 功能：为路口指定新的信号灯实例，例如固定放行方向的脚本化信号灯
// 参数：tl-信号灯
func (j *Junction) SetTrafficLight(tl ITrafficLight) {
	if tl == nil {
		log.Panicf("junction %v: nil traffic light", j.location)
	}
	j.trafficLight = tl
}

// Neighbors 获取L1距离为1的相邻路口
func (j *Junction) Neighbors() []entity.Location {
	return j.neighbors
}

func (j *Junction) reset() {
	j.trafficLight.Reset()
}

func (j *Junction) update(t int32) {
	j.trafficLight.Update(t)
}
