package bus

import "fmt"

// Status 车辆控制器状态
type Status int

const (
	StatusIdle      Status = iota // 一轮开始前停在0号位置
	StatusTraveling               // 站间行驶
	StatusAtStop                  // 停靠站点
	StatusEnded                   // 运营结束（终态）
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusTraveling:
		return "traveling"
	case StatusAtStop:
		return "at_stop"
	case StatusEnded:
		return "ended"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Runtime 车辆控制器运行时数据
// 说明：Idle时Stop为0；Traveling时Stop为出发站；AtStop时Stop为所在站
type Runtime struct {
	Status Status
	Round  int32
	Stop   int32
}

func (r Runtime) String() string {
	return fmt.Sprintf("%v(round=%d, stop=%d)", r.Status, r.Round, r.Stop)
}
