package task

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/clock"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/environment"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/output"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态
// 说明：管理环境、学习车辆、试验记录与RPC服务
type Context struct {
	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 仿真状态锁：主循环在Reset与Step期间持有写锁，RPC读取时持有读锁
	mtx sync.RWMutex

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
	// 环境
	env *environment.Environment
	// 主车辆
	agent *vehicle.LearningVehicle

	// 试验记录
	recorder *output.Recorder
	// MongoDB写入目标，未配置时为nil
	sink *output.MongoSink

	// RPC服务
	server        *http.Server
	listener      net.Listener
	serverCloseCh chan struct{}
}

// NewContext 创建新的仿真任务上下文
// 功能：按配置构建环境与全部车辆
// 参数：
//   - job: 任务名称，写入MongoDB记录
//   - c: 校验后的配置
//
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 以配置的随机种子创建随机数引擎，构建网格与信号灯
// 2. 先注册num_dummies辆背景车辆，再注册学习车辆并设为主车辆
// 3. 按需加载Q表快照、连接MongoDB
func NewContext(job string, c config.Config) *Context {
	ctx := &Context{
		job:           job,
		runtimeConfig: config.NewRuntimeConfig(c),
	}
	ctx.env = environment.New(c.World, randengine.New(c.Control.Seed))
	for range c.World.NumDummies {
		ctx.env.Register(vehicle.NewFixedPolicyVehicle)
	}
	ctx.agent = ctx.env.Register(vehicle.NewLearningVehicleFactory(c.Agent.Gamma)).(*vehicle.LearningVehicle)
	ctx.env.SetPrimary(ctx.agent, c.Control.EnforceDeadline)
	log.Infof("grid %dx%d with %d dummy vehicles, primary vehicle %d", c.World.Cols, c.World.Rows, c.World.NumDummies, ctx.agent.ID())

	if path := c.Agent.Load; path != "" {
		if err := ctx.agent.Learner().Load(path); err != nil {
			log.Panicf("q-table snapshot load err: %v", err)
		}
		log.Infof("q-table loaded from %s with %d entries", path, ctx.agent.Learner().Table().Len())
	}

	if m := c.Output.Mongo; m != nil && m.URI != "" {
		sink, err := output.NewMongoSink(context.Background(), m, job)
		if err != nil {
			log.Panicf("%v", err)
		}
		ctx.sink = sink
	}
	ctx.recorder = output.NewRecorder(ctx.sink)
	return ctx
}

func (ctx *Context) Job() string {
	return ctx.job
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.env.Clock()
}

func (ctx *Context) Environment() *environment.Environment {
	return ctx.env
}

// Agent 学习车辆（主车辆）
func (ctx *Context) Agent() *vehicle.LearningVehicle {
	return ctx.agent
}

func (ctx *Context) Recorder() *output.Recorder {
	return ctx.recorder
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Serve 启动RPC服务
// 功能：在addr上提供时钟、信号灯与试验汇总的查询接口
// 参数：addr-监听地址，如":51102"，端口为0时自动分配
func (ctx *Context) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	ctx.env.Clock().Register(mux)
	ctx.env.JunctionManager().Register(mux, ctx.mtx.RLocker())
	ctx.recorder.Register(mux)

	ctx.listener = ln
	ctx.server = &http.Server{Handler: mux}
	ctx.serverCloseCh = make(chan struct{})
	go func() {
		defer close(ctx.serverCloseCh)
		if err := ctx.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("failed to serve: %v", err)
		}
	}()
	log.Infof("rpc server listening on %s", ln.Addr())
	return nil
}

// Addr RPC服务的实际监听地址，未启动时为空
func (ctx *Context) Addr() string {
	if ctx.listener == nil {
		return ""
	}
	return ctx.listener.Addr().String()
}

// Close 关闭RPC服务与MongoDB连接，可重复调用
func (ctx *Context) Close() {
	if ctx.closed.Swap(true) {
		return
	}
	if ctx.server != nil {
		if err := ctx.server.Shutdown(context.Background()); err != nil {
			log.Errorf("rpc server shutdown err: %v", err)
		}
		// wait for graceful stop
		<-ctx.serverCloseCh
	}
	if ctx.sink != nil {
		if err := ctx.sink.Close(context.Background()); err != nil {
			log.Errorf("mongo disconnect err: %v", err)
		}
	}
}
