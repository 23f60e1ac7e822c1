package junction

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

var (
	ErrUnknownJunction = errors.New("no junction at location")
)

var _ entity.IJunctionManager = (*JunctionManager)(nil)

// JunctionManager 路网（Junction管理器）
// 功能：构建并持有网格路网的全部路口、信号灯与道路
// 说明：拓扑在创建后不再变化
type JunctionManager struct {
	bounds entity.Bounds

	data      map[entity.Location]*Junction
	junctions []*Junction // 按x优先、y其次的固定顺序
	roads     []entity.Road
}

// NewManager 创建路网
// 功能：为边界内的每个整数坐标创建一个路口及随机信号灯，并连接L1距离为1的路口
// 参数：bounds-路网边界，generator-随机数引擎，periods-信号灯候选周期
// 返回：路网实例
// 算法说明：
// 1. 按x优先遍历所有坐标，依次创建路口和信号灯（保证相同种子下信号灯一致）
// 2. 对任意两个L1距离为1的路口建立有向道路，并记录相邻关系
func NewManager(bounds entity.Bounds, generator *randengine.Engine, periods []int32) *JunctionManager {
	if bounds.MaxX < bounds.MinX || bounds.MaxY < bounds.MinY {
		log.Panicf("invalid bounds %+v", bounds)
	}
	m := &JunctionManager{
		bounds:    bounds,
		data:      make(map[entity.Location]*Junction),
		junctions: make([]*Junction, 0),
		roads:     make([]entity.Road, 0),
	}
	for x := bounds.MinX; x <= bounds.MaxX; x++ {
		for y := bounds.MinY; y <= bounds.MaxY; y++ {
			loc := entity.Location{X: x, Y: y}
			j := newJunction(loc, trafficlight.NewRandom(generator, periods))
			m.junctions = append(m.junctions, j)
			m.data[loc] = j
		}
	}
	for _, a := range m.junctions {
		for _, b := range m.junctions {
			if a == b {
				continue
			}
			if a.location.Distance(b.location) == 1 {
				m.roads = append(m.roads, entity.Road{From: a.location, To: b.location})
				a.neighbors = append(a.neighbors, b.location)
			}
		}
	}
	log.Debugf("road network: %d junctions, %d roads", len(m.junctions), len(m.roads))
	return m
}

// Get 根据坐标获取路口，如果不存在则panic
func (m *JunctionManager) Get(loc entity.Location) entity.IJunction {
	return m.mustGet(loc)
}

// GetOrError 根据坐标获取路口，如果不存在则返回错误
func (m *JunctionManager) GetOrError(loc entity.Location) (entity.IJunction, error) {
	if j, ok := m.data[loc]; !ok {
		return nil, fmt.Errorf("%w %v", ErrUnknownJunction, loc)
	} else {
		return j, nil
	}
}

// Junction 根据坐标获取具体的路口对象，如果不存在则panic
func (m *JunctionManager) Junction(loc entity.Location) *Junction {
	return m.mustGet(loc)
}

func (m *JunctionManager) mustGet(loc entity.Location) *Junction {
	if j, ok := m.data[loc]; !ok {
		log.Panicf("no junction at %v", loc)
		return nil
	} else {
		return j
	}
}

func (m *JunctionManager) Bounds() entity.Bounds {
	return m.bounds
}

// Locations 所有路口坐标，顺序固定
func (m *JunctionManager) Locations() []entity.Location {
	return lo.Map(m.junctions, func(j *Junction, _ int) entity.Location {
		return j.location
	})
}

func (m *JunctionManager) Roads() []entity.Road {
	return m.roads
}

// Reset 重置所有信号灯计时
func (m *JunctionManager) Reset() {
	for _, j := range m.junctions {
		j.reset()
	}
}

// Update 更新阶段，按固定顺序更新所有信号灯
// 参数：t-当前时间步
func (m *JunctionManager) Update(t int32) {
	for _, j := range m.junctions {
		j.update(t)
	}
}
