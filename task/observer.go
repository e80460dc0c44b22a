package task

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
)

// narrator 线路事件叙述者
// 功能：把线路事件写入日志；生命周期事件使用Info级别，逐步细节使用Debug级别
// 说明：只读取事件，不影响仿真控制流
type narrator struct {
	log *logrus.Entry
}

func newNarrator() *narrator {
	return &narrator{log: logrus.WithField("module", "narrator")}
}

func (n *narrator) OnEvent(ev entity.Event) {
	s := ev.State
	switch ev.Kind {
	case entity.EventRoundStarted:
		n.log.Infof("bus starts round %d", s.Round)
	case entity.EventVehicleArrived:
		n.log.Infof("bus arrives at stop %d (onboard %d/%d)", s.CurrentStop, len(s.Onboard), s.Capacity)
	case entity.EventVehicleDeparted:
		n.log.Debugf("bus leaves stop %d (onboard %d/%d, waiting %d)", s.CurrentStop, len(s.Onboard), s.Capacity, len(s.Waiting[s.CurrentStop]))
	case entity.EventServiceEnded:
		n.log.Infof("bus ends service after round %d", s.Round)
	case entity.EventPassengerArrived:
		n.log.Debugf("%s is waiting at stop %d", ev.Passenger.Label(), ev.Passenger.Origin())
	case entity.EventPassengerBoarded:
		n.log.Infof("%s boards", ev.Passenger.Label())
	case entity.EventPassengerRequestedExit:
		n.log.Debugf("%s signals exit at the next stop", ev.Passenger.Label())
	case entity.EventPassengerAlighted:
		n.log.Infof("%s alights", ev.Passenger.Label())
	case entity.EventPassengerTurnedAway:
		n.log.Infof("%s will not ride today", ev.Passenger.Label())
	case entity.EventPassengerStranded:
		n.log.Infof("%s will not reach the destination, service ended", ev.Passenger.Label())
	}
}

// statistics 线路运行统计
// 功能：在事件流上累计到站次数、上下车人数与最大载客量
type statistics struct {
	mtx sync.Mutex

	rounds          int32 // 开始的轮数
	vehicleArrivals int   // 车辆到站次数
	boarded         int   // 上车人次
	alighted        int   // 下车人次
	maxOnboard      int   // 最大载客量
}

func (s *statistics) OnEvent(ev entity.Event) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	switch ev.Kind {
	case entity.EventRoundStarted:
		s.rounds++
	case entity.EventVehicleArrived:
		s.vehicleArrivals++
	case entity.EventPassengerBoarded:
		s.boarded++
	case entity.EventPassengerAlighted:
		s.alighted++
	}
	s.maxOnboard = max(s.maxOnboard, len(ev.State.Onboard))
}
