package junction

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"connectrpc.com/connect"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// GetTrafficLightProcedure 查询信号灯状态的RPC路径
	GetTrafficLightProcedure = "/smartcab.junction.v1.TrafficLightService/GetTrafficLight"
)

// Register 将信号灯查询服务注册到mux
// 功能：提供按坐标查询信号灯状态的RPC接口
// 参数：mux-HTTP路由，lock-与仿真主循环共享的锁，保证读取时路网不在更新
func (m *JunctionManager) Register(mux *http.ServeMux, lock sync.Locker) {
	mux.Handle(GetTrafficLightProcedure, connect.NewUnaryHandler(
		GetTrafficLightProcedure,
		func(ctx context.Context, in *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
			lock.Lock()
			defer lock.Unlock()
			return m.GetTrafficLight(ctx, in)
		},
	))
}

// GetTrafficLight RPC接口：获取指定路口的信号灯状态
// 功能：请求中携带x、y坐标，返回放行方向、周期与上次切换时间
// 说明：坐标缺失或路口不存在时返回InvalidArgument
func (m *JunctionManager) GetTrafficLight(
	ctx context.Context, in *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	fields := in.Msg.GetFields()
	x, okX := fields["x"]
	y, okY := fields["y"]
	if !okX || !okY {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("x and y are required"))
	}
	loc := entity.Location{X: int32(x.GetNumberValue()), Y: int32(y.GetNumberValue())}
	j, ok := m.data[loc]
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("junction does not exist"))
	}
	tl := j.trafficLight
	res, err := structpb.NewStruct(map[string]any{
		"x":               loc.X,
		"y":               loc.Y,
		"ns_open":         tl.NSOpen(),
		"period":          tl.Period(),
		"last_toggled_at": tl.LastToggledAt(),
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}
