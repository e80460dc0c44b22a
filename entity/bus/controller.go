package bus

import (
	"sync"

	"github.com/tsinghua-fib-lab/busroute-sim/clock"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
)

// Controller 车辆控制器
// 功能：驱动车辆按轮次依次经过全部站点，完成全部轮次后结束运营
// 说明：所有共享状态的读写都通过监视器完成，控制器自身只保存状态机的当前状态
type Controller struct {
	clock   *clock.Clock
	monitor entity.IDriverMonitor

	runtime    Runtime
	runtimeMtx sync.RWMutex
	// 状态转移回调，用于测试与统计
	onTransition func(from, to Runtime)
}

// NewController 创建车辆控制器
// 功能：从任务上下文获取时钟与线路监视器
// 参数：ctx-任务上下文
// 返回：处于Idle(0)状态的控制器
func NewController(ctx entity.ITaskContext) *Controller {
	return &Controller{
		clock:   ctx.Clock(),
		monitor: ctx.Monitor(),
		runtime: Runtime{Status: StatusIdle},
	}
}

// OnTransition 设置状态转移回调，需在Run之前调用
func (c *Controller) OnTransition(f func(from, to Runtime)) {
	c.onTransition = f
}

// Runtime 获取当前状态
func (c *Controller) Runtime() Runtime {
	c.runtimeMtx.RLock()
	defer c.runtimeMtx.RUnlock()
	return c.runtime
}

func (c *Controller) transit(to Runtime) {
	c.runtimeMtx.Lock()
	from := c.runtime
	if from.Status == StatusEnded {
		c.runtimeMtx.Unlock()
		log.Panicf("bus controller transits from terminal state to %v", to)
	}
	c.runtime = to
	c.runtimeMtx.Unlock()
	log.Debugf("bus %v -> %v", from, to)
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

// Run 运行车辆状态机直至运营结束
// 算法说明：
// 1. 每轮开始时车辆回到0号位置：Idle(round)
// 2. 每次进站：Traveling(round, from) -> 行驶 -> 监视器Advance -> AtStop(round, stop)
//   - Advance内部先等待想在该站下车的乘客全部下车，再等待满员或站台无人
//
// 3. 完成全部轮次后结束运营：Ended，该转移不可逆
func (c *Controller) Run() {
	for !c.clock.Done() {
		round := c.clock.Round()
		if c.clock.AtRoundStart() {
			c.monitor.BeginRound(round)
			if rt := c.Runtime(); rt.Status != StatusIdle || rt.Round != round {
				c.transit(Runtime{Status: StatusIdle, Round: round})
			}
		}
		c.transit(Runtime{Status: StatusTraveling, Round: round, Stop: c.Runtime().Stop})
		c.clock.Travel()
		expected := c.clock.NextStop()
		stop := c.monitor.Advance()
		if stop != expected {
			log.Panicf("bus reached stop %d, expected %d (%v)", stop, expected, c.clock)
		}
		c.clock.Tick()
		c.transit(Runtime{Status: StatusAtStop, Round: round, Stop: stop})
	}
	c.monitor.EndService()
	c.transit(Runtime{Status: StatusEnded, Round: c.clock.Round()})
}
