package passenger

import (
	"sync"

	"github.com/tsinghua-fib-lab/busroute-sim/entity"
)

// Agent 乘客智能体
// 功能：每名乘客一个，独立执行一次候车、上车、乘车、下车的完整过程
// 说明：乘客在一次会话中持有线路监视器的锁，每个阻塞步骤都是单条件等待，等待期间释放锁
type Agent struct {
	p       *Passenger
	monitor entity.IRiderMonitor

	status    Status
	statusMtx sync.RWMutex
	// 状态转移回调，用于测试与统计；在持有监视器锁时调用，不能再访问监视器
	onTransition func(p *Passenger, from, to Status)
}

// NewAgent 创建乘客智能体
func NewAgent(p *Passenger, monitor entity.IRiderMonitor) *Agent {
	return &Agent{
		p:       p,
		monitor: monitor,
		status:  StatusApproaching,
	}
}

// OnTransition 设置状态转移回调，需在Run之前调用
func (a *Agent) OnTransition(f func(p *Passenger, from, to Status)) {
	a.onTransition = f
}

// Passenger 获取乘客
func (a *Agent) Passenger() *Passenger {
	return a.p
}

// Status 获取当前状态
func (a *Agent) Status() Status {
	a.statusMtx.RLock()
	defer a.statusMtx.RUnlock()
	return a.status
}

func (a *Agent) transit(to Status) {
	a.statusMtx.Lock()
	from := a.status
	if !CanTransit(from, to) {
		a.statusMtx.Unlock()
		log.Panicf("%s: illegal transition %v -> %v", a.p.Label(), from, to)
	}
	a.status = to
	a.statusMtx.Unlock()
	if a.onTransition != nil {
		a.onTransition(a.p, from, to)
	}
}

// Run 运行乘客状态机，返回终态
// 算法说明：
// 1. Approaching -> Waiting：等待车辆不在起点站，然后在起点站登记
// 2. Waiting -> Boarding -> Onboard：等待车辆停在起点站且未满员后上车；
// 若运营已结束则 -> TurnedAway
// 3. Onboard -> RequestedExit：等待车辆到达终点站的前一站后示意下车；
// 若运营已结束则 -> Stranded
// 4. RequestedExit -> Alighted：等待车辆到达终点站后下车；
// 若运营已结束则 -> Stranded
func (a *Agent) Run() Status {
	if a.Status() != StatusApproaching {
		log.Panicf("%s: agent already ran (status %v)", a.p.Label(), a.Status())
	}
	log.Debugf("%s heads to stop %d", a.p.Label(), a.p.Origin())
	s := a.monitor.Enter()
	defer s.Exit()
	s.Arrive(a.p)
	a.transit(StatusWaiting)

	if !s.Board(a.p) {
		a.transit(StatusTurnedAway)
		return StatusTurnedAway
	}
	a.transit(StatusBoarding)
	a.transit(StatusOnboard)

	if !s.RequestExit(a.p) {
		a.transit(StatusStranded)
		return StatusStranded
	}
	a.transit(StatusRequestedExit)

	if !s.Alight(a.p) {
		a.transit(StatusStranded)
		return StatusStranded
	}
	a.transit(StatusAlighted)
	return StatusAlighted
}
