package task

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/busroute-sim/clock"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/bus"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/passenger"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/route"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/input"
)

// ErrAlreadyRun 一个Context只能运行一次
var ErrAlreadyRun = errors.New("task already run")

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有组件，以显式句柄的方式把线路监视器交给车辆控制器与全部乘客
type Context struct {
	// 任务名
	job string
	// 是否已运行
	ran atomic.Bool

	// 时钟
	clock *clock.Clock
	// 线路监视器
	monitor *route.Monitor
	// 车辆控制器
	controller *bus.Controller
	// 乘客管理器
	passengerManager *passenger.Manager
	// 运行统计
	stats *statistics

	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 用于初始化的输入
	initRes *input.Input
}

var _ entity.ITaskContext = (*Context)(nil)

// NewContext 创建新的仿真任务上下文
// 功能：校验配置并初始化仿真系统的所有组件
// 参数：
//   - job: 任务名称
//   - c: 配置对象
//
// 返回：初始化完成的Context实例；配置或乘客起终点非法时返回错误
// 算法说明：
// 1. 校验配置，创建时钟
// 2. 生成乘客起终点
// 3. 创建线路监视器并挂载叙述者与统计观察者
// 4. 创建车辆控制器与全部乘客智能体
func NewContext(job string, c config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		job:           job,
		runtimeConfig: rc,
		stats:         &statistics{},
	}
	ctx.clock = clock.New(c.Control.Step)
	ctx.initRes = input.Init(c)

	ctx.monitor = route.NewMonitor(c.Control.Step.Stops, c.Control.VehicleCapacity)
	ctx.monitor.AddObserver(newNarrator())
	ctx.monitor.AddObserver(ctx.stats)

	ctx.controller = bus.NewController(ctx)
	ctx.passengerManager = passenger.NewManager(ctx)
	if err := ctx.passengerManager.Init(ctx.initRes.Trips); err != nil {
		return nil, fmt.Errorf("job %s: %w", job, err)
	}
	return ctx, nil
}

func (ctx *Context) Job() string {
	return ctx.job
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) Monitor() entity.IRouteMonitor {
	return ctx.monitor
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) GetInput() *input.Input {
	return ctx.initRes
}

func (ctx *Context) Controller() *bus.Controller {
	return ctx.controller
}

func (ctx *Context) PassengerManager() *passenger.Manager {
	return ctx.passengerManager
}

// AddObserver 添加线路事件观察者，需在Run之前调用
func (ctx *Context) AddObserver(o entity.IObserver) {
	ctx.monitor.AddObserver(o)
}
