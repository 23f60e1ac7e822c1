package clock

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// NowProcedure 查询当前仿真时间的RPC路径
	NowProcedure = "/smartcab.clock.v1.ClockService/Now"
)

// Register 将时钟服务注册到mux
// 功能：注册时钟服务的RPC处理器，使外部可以查询仿真进度
// 参数：mux-HTTP路由
func (c *Clock) Register(mux *http.ServeMux) {
	mux.Handle(NowProcedure, connect.NewUnaryHandler(NowProcedure, c.Now))
}

// Now 获取当前仿真时间
// 功能：RPC接口，返回当前试验编号、试验内时间步与累计时间步
func (c *Clock) Now(ctx context.Context, in *connect.Request[emptypb.Empty]) (*connect.Response[structpb.Struct], error) {
	trial, t, total := c.Snapshot()
	res, err := structpb.NewStruct(map[string]any{
		"trial":      trial,
		"t":          t,
		"total_step": total,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}
