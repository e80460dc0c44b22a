package entity

import "fmt"

// entity/passenger/passenger.go的依赖倒置
type IPassenger interface {
	ID() int32          // 获取乘客ID
	Origin() int32      // 获取起点站序号
	Destination() int32 // 获取终点站序号
	Label() string      // 获取用于日志的乘客描述
}

// EventKind 线路事件类型
type EventKind int

const (
	EventRoundStarted           EventKind = iota // 新一轮开始，车辆回到0号位置
	EventVehicleArrived                          // 车辆到站
	EventVehicleDeparted                         // 车辆可以离站
	EventServiceEnded                            // 运营结束
	EventPassengerArrived                        // 乘客在站台登记
	EventPassengerBoarded                        // 乘客上车
	EventPassengerRequestedExit                  // 乘客示意下一站下车
	EventPassengerAlighted                       // 乘客下车
	EventPassengerTurnedAway                     // 运营结束时乘客仍未上车
	EventPassengerStranded                       // 运营结束时乘客仍在车上
)

var eventKindNames = map[EventKind]string{
	EventRoundStarted:           "round_started",
	EventVehicleArrived:         "vehicle_arrived",
	EventVehicleDeparted:        "vehicle_departed",
	EventServiceEnded:           "service_ended",
	EventPassengerArrived:       "passenger_arrived",
	EventPassengerBoarded:       "passenger_boarded",
	EventPassengerRequestedExit: "passenger_requested_exit",
	EventPassengerAlighted:      "passenger_alighted",
	EventPassengerTurnedAway:    "passenger_turned_away",
	EventPassengerStranded:      "passenger_stranded",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Snapshot 线路共享状态的只读快照
// 说明：所有切片与map均为副本，可在锁外安全读取
type Snapshot struct {
	Round        int32             // 当前轮次
	CurrentStop  int32             // 车辆当前位置，0表示两轮之间尚未出发
	Capacity     int               // 车辆容量
	Onboard      []int32           // 车上乘客ID
	WantsOff     []int32           // 已示意下一站下车的乘客ID
	Waiting      map[int32][]int32 // 各站候车乘客ID
	ServiceEnded bool              // 运营是否已结束
	Arrivals     int               // 已到站登记的乘客数量
	Generation   uint64            // 共享状态的修改代数
}

// Event 线路事件
// 功能：每次共享状态修改后由监视器在持锁状态下发出
type Event struct {
	Kind      EventKind
	Passenger IPassenger // 车辆相关事件为nil
	State     Snapshot   // 修改后的状态
}

// 线路事件的观察者，OnEvent在监视器持锁时被调用，不得回调监视器
type IObserver interface {
	OnEvent(ev Event)
}
