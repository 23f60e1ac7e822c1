package output

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// SummaryProcedure 查询试验汇总的RPC路径
	SummaryProcedure = "/smartcab.output.v1.OutputService/Summary"
)

// Register 将汇总查询服务注册到mux
func (r *Recorder) Register(mux *http.ServeMux) {
	mux.Handle(SummaryProcedure, connect.NewUnaryHandler(SummaryProcedure, r.SummaryRPC))
}

// SummaryRPC RPC接口：获取已完成试验的汇总
func (r *Recorder) SummaryRPC(
	ctx context.Context, in *connect.Request[emptypb.Empty],
) (*connect.Response[structpb.Struct], error) {
	s := r.Summary()
	res, err := structpb.NewStruct(map[string]any{
		"trials":       s.Trials,
		"reached":      s.Reached,
		"late":         s.Late,
		"aborted":      s.Aborted,
		"unfinished":   s.Unfinished,
		"success_rate": s.SuccessRate,
		"total_reward": s.TotalReward,
		"total_errors": s.TotalErrors,
		"mean_reward":  s.MeanReward,
		"std_reward":   s.StdReward,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(res), nil
}
