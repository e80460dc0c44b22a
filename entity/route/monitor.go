package route

import (
	"sync"

	"github.com/tsinghua-fib-lab/busroute-sim/entity"
)

var (
	_ entity.IRouteMonitor = (*Monitor)(nil)
	_ entity.IRiderSession = (*riderSession)(nil)
)

// Monitor 线路监视器
// 功能：所有共享状态修改的唯一入口，以一把互斥锁与一个条件变量实现等待/通知
// 说明：
//   - 不同参与者同时等待不同条件，因此每次修改后都无条件广播唤醒全部等待者，
//     每个等待者醒来后重新检查自己的条件
//   - 每个操作都是“等待条件→修改→广播”，等待期间释放锁；
//     车辆控制器每个操作各自持锁，乘客则通过会话从到站一直持锁到终态
//   - 观察者在持锁状态下被调用，看到的是修改后的状态
type Monitor struct {
	mtx   sync.Mutex
	cond  *sync.Cond
	state *RouteState

	observers []entity.IObserver
}

// NewMonitor 创建线路监视器
// 参数：stops-站点数量，capacity-车辆容量
func NewMonitor(stops int32, capacity int) *Monitor {
	m := &Monitor{
		state: NewRouteState(stops, capacity),
	}
	m.cond = sync.NewCond(&m.mtx)
	return m
}

// AddObserver 添加观察者，需在任何参与者开始运行之前调用
func (m *Monitor) AddObserver(o entity.IObserver) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.observers = append(m.observers, o)
}

// waitUntil 等待条件成立（调用方需持锁）
func (m *Monitor) waitUntil(pred func() bool) {
	for !pred() {
		m.cond.Wait()
	}
}

// broadcast 提交一次状态变化（调用方需持锁）
// 算法说明：
// 1. 修改代数+1
// 2. 通知所有观察者
// 3. 唤醒全部等待者
func (m *Monitor) broadcast(kind entity.EventKind, p entity.IPassenger) {
	m.state.generation++
	if len(m.observers) > 0 {
		ev := entity.Event{
			Kind:      kind,
			Passenger: p,
			State:     m.state.snapshot(),
		}
		for _, o := range m.observers {
			o.OnEvent(ev)
		}
	}
	m.cond.Broadcast()
}

func (m *Monitor) checkPassenger(p entity.IPassenger) {
	stops := m.state.StopCount()
	if p.Origin() < 1 || p.Origin() > stops || p.Destination() < 1 || p.Destination() > stops || p.Origin() == p.Destination() {
		log.Panicf("%s: invalid trip on a route of %d stops", p.Label(), stops)
	}
}

// Enter 乘客进入监视器
// 功能：获取锁并返回乘客会话；乘客此后一直持锁，只在等待条件时释放，直到Exit
// 说明：上车后立即检查是否需要示意下车而不让出锁，保证乘客不会错过车辆仍在终点站前一站的时机
func (m *Monitor) Enter() entity.IRiderSession {
	m.mtx.Lock()
	return &riderSession{m: m}
}

// riderSession 乘客会话，持有监视器的锁
type riderSession struct {
	m      *Monitor
	exited bool
}

func (s *riderSession) mustOpen() {
	if s.exited {
		log.Panic("rider session used after exit")
	}
}

// Exit 释放锁，结束会话
func (s *riderSession) Exit() {
	s.mustOpen()
	s.exited = true
	s.m.mtx.Unlock()
}

// Arrive 乘客到站登记
// 功能：等待车辆不停在起点站，然后在起点站登记
func (s *riderSession) Arrive(p entity.IPassenger) {
	s.mustOpen()
	m := s.m
	m.checkPassenger(p)
	m.waitUntil(func() bool { return !m.state.StopIsLockedByVehicle(p.Origin()) })
	if err := m.state.passengers.Put(p); err != nil {
		log.Panicf("%s: %v", p.Label(), err)
	}
	m.state.stops.Get(p.Origin()).Add(p.ID())
	m.state.arrivals++
	m.broadcast(entity.EventPassengerArrived, p)
}

// Board 乘客上车
// 功能：等待车辆停在起点站且未满员（或运营结束），然后从站台移到车上
// 返回：true表示已上车，false表示运营已结束，乘客离开站台
func (s *riderSession) Board(p entity.IPassenger) bool {
	s.mustOpen()
	m := s.m
	m.waitUntil(func() bool { return m.state.CanBoard(p.Origin()) })
	m.state.stops.Get(p.Origin()).Remove(p.ID())
	if m.state.serviceEnded {
		m.state.passengers.Delete(p.ID())
		m.broadcast(entity.EventPassengerTurnedAway, p)
		return false
	}
	m.state.bus.Board(p.ID())
	m.broadcast(entity.EventPassengerBoarded, p)
	return true
}

// RequestExit 乘客示意下一站下车
// 功能：等待车辆位于终点站的前一站（或运营结束），然后加入示意下车集合
// 返回：true表示已示意，false表示运营已结束，乘客离开车辆
func (s *riderSession) RequestExit(p entity.IPassenger) bool {
	s.mustOpen()
	m := s.m
	m.waitUntil(func() bool {
		return m.state.DriverShouldBeNotified(p.Destination()) || m.state.serviceEnded
	})
	if m.state.serviceEnded {
		m.leave(p)
		return false
	}
	m.state.bus.RequestExit(p.ID())
	m.broadcast(entity.EventPassengerRequestedExit, p)
	return true
}

// Alight 乘客下车
// 功能：等待车辆到达终点站（或运营结束），然后从车上与示意下车集合中移除
// 返回：true表示在终点站下车，false表示运营已结束，乘客离开车辆
func (s *riderSession) Alight(p entity.IPassenger) bool {
	s.mustOpen()
	m := s.m
	m.waitUntil(func() bool {
		return m.state.CanAlight(p.Destination()) || m.state.serviceEnded
	})
	if m.state.serviceEnded {
		m.leave(p)
		return false
	}
	m.state.bus.Alight(p.ID())
	m.state.passengers.Delete(p.ID())
	m.broadcast(entity.EventPassengerAlighted, p)
	return true
}

// leave 运营结束后滞留车上的乘客离开（调用方需持锁）
func (m *Monitor) leave(p entity.IPassenger) {
	m.state.bus.Alight(p.ID())
	m.state.passengers.Delete(p.ID())
	m.broadcast(entity.EventPassengerStranded, p)
}

// BeginRound 开始新一轮，车辆回到0号位置
func (m *Monitor) BeginRound(round int32) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.state.serviceEnded {
		log.Panicf("round %d begins after service ended", round)
	}
	m.state.round = round
	m.state.bus.CurrentStop = 0
	m.broadcast(entity.EventRoundStarted, nil)
}

// Advance 车辆行驶到下一站
// 功能：车辆到站并广播，等待想在该站下车的乘客全部下车，
// 再等待满员或站台无人后广播离站
// 返回：到达的站点序号
// 说明：两次等待分别对应乘客安全与离站时机，不能合并
func (m *Monitor) Advance() int32 {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.state.serviceEnded {
		log.Panic("bus advances after service ended")
	}
	if m.state.bus.CurrentStop >= m.state.StopCount() {
		log.Panicf("bus advances past the last stop %d in round %d", m.state.bus.CurrentStop, m.state.round)
	}
	m.state.bus.CurrentStop++
	m.broadcast(entity.EventVehicleArrived, nil)
	m.waitUntil(m.state.IsEverybodyOutWhoWant)
	m.waitUntil(m.state.VehicleReadyToDepart)
	m.broadcast(entity.EventVehicleDeparted, nil)
	return m.state.bus.CurrentStop
}

// EndService 结束运营
// 功能：设置运营结束标志并让车辆回到0号位置，唤醒所有等待者使其进入终态
// 说明：该转移不可逆，重复调用无效果
func (m *Monitor) EndService() {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.state.serviceEnded {
		return
	}
	m.state.serviceEnded = true
	m.state.bus.CurrentStop = 0
	m.broadcast(entity.EventServiceEnded, nil)
}

// WaitArrivals 等待至少n名乘客完成到站登记
func (m *Monitor) WaitArrivals(n int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.waitUntil(func() bool { return m.state.arrivals >= n })
}

// Snapshot 获取共享状态快照
func (m *Monitor) Snapshot() entity.Snapshot {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.state.snapshot()
}

// Generation 获取共享状态的修改代数
func (m *Monitor) Generation() uint64 {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.state.generation
}
