package route

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/bus"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/stop"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/container"
)

// RouteState 线路共享状态
// 功能：站点、车辆、乘客记录与运营结束标志的聚合
// 说明：只能在监视器持锁时读写；下面的条件函数都是当前状态的纯函数
type RouteState struct {
	stops      *stop.Manager
	bus        *bus.Bus
	passengers *container.Arena[entity.IPassenger] // 已登记且尚未结束的乘客

	round        int32  // 当前轮次
	serviceEnded bool   // 运营结束，只会从false变为true
	arrivals     int    // 累计到站登记的乘客数量
	generation   uint64 // 修改代数，每次广播+1
}

// NewRouteState 创建线路共享状态
// 参数：stops-站点数量，capacity-车辆容量
func NewRouteState(stops int32, capacity int) *RouteState {
	return &RouteState{
		stops:      stop.NewManager(stops),
		bus:        bus.New(capacity),
		passengers: container.NewArena[entity.IPassenger](0),
	}
}

// StopCount 站点数量
func (s *RouteState) StopCount() int32 {
	return s.stops.Len()
}

// CurrentStop 车辆当前位置
func (s *RouteState) CurrentStop() int32 {
	return s.bus.CurrentStop
}

// ServiceEnded 运营是否已结束
func (s *RouteState) ServiceEnded() bool {
	return s.serviceEnded
}

// VehicleReadyToDepart 车辆是否可以离站：满员或当前站无人候车
func (s *RouteState) VehicleReadyToDepart() bool {
	if s.bus.CurrentStop == 0 {
		return true
	}
	return s.bus.IsFull() || s.stops.Get(s.bus.CurrentStop).IsEmpty()
}

// StopIsLockedByVehicle 车辆是否正停在该站
// 说明：车辆停靠期间新到的乘客需等待车辆离开后再登记，避免“刚好错过”的歧义
func (s *RouteState) StopIsLockedByVehicle(stopIdx int32) bool {
	return s.bus.CurrentStop == stopIdx
}

// CanBoard 是否可以在该站上车：车辆停在该站且未满员，或运营已结束
func (s *RouteState) CanBoard(stopIdx int32) bool {
	return (s.bus.CurrentStop == stopIdx && !s.bus.IsFull()) || s.serviceEnded
}

// CanAlight 是否可以在该站下车
func (s *RouteState) CanAlight(stopIdx int32) bool {
	return s.bus.CurrentStop == stopIdx
}

// DriverShouldBeNotified 车辆是否位于该站的前一站
// 说明：1号站的前一站是最后一站（跨轮次）
func (s *RouteState) DriverShouldBeNotified(stopIdx int32) bool {
	if stopIdx == 1 {
		return s.bus.CurrentStop == s.stops.Len()
	}
	return s.bus.CurrentStop+1 == stopIdx
}

// IsEverybodyOutWhoWant 示意下车且终点为当前站的乘客是否都已下车
func (s *RouteState) IsEverybodyOutWhoWant() bool {
	return s.bus.IsEverybodyOutWhoWant(s.destinationOf)
}

func (s *RouteState) destinationOf(passengerID int32) int32 {
	p, ok := s.passengers.Get(passengerID)
	if !ok {
		log.Panicf("passenger %d onboard but not registered", passengerID)
	}
	return p.Destination()
}

// snapshot 生成只读快照
func (s *RouteState) snapshot() entity.Snapshot {
	return entity.Snapshot{
		Round:        s.round,
		CurrentStop:  s.bus.CurrentStop,
		Capacity:     s.bus.Capacity,
		Onboard:      s.bus.Onboard(),
		WantsOff:     s.bus.WantsOff(),
		Waiting:      lo.PickBy(s.stops.WaitingByStop(), func(_ int32, ids []int32) bool { return len(ids) > 0 }),
		ServiceEnded: s.serviceEnded,
		Arrivals:     s.arrivals,
		Generation:   s.generation,
	}
}
