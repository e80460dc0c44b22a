package passenger

import "fmt"

// Status 乘客状态
type Status int

const (
	StatusApproaching   Status = iota // 正在前往起点站
	StatusWaiting                     // 在起点站候车
	StatusBoarding                    // 正在上车
	StatusOnboard                     // 在车上
	StatusRequestedExit               // 已示意下一站下车
	StatusAlighted                    // 到达终点下车（终态）
	StatusStranded                    // 上车后运营结束，未到达终点（终态）
	StatusTurnedAway                  // 运营结束前未能上车（终态）
)

var statusNames = [...]string{
	StatusApproaching:   "approaching",
	StatusWaiting:       "waiting",
	StatusBoarding:      "boarding",
	StatusOnboard:       "onboard",
	StatusRequestedExit: "requested_exit",
	StatusAlighted:      "alighted",
	StatusStranded:      "stranded",
	StatusTurnedAway:    "turned_away",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return s == StatusAlighted || s == StatusStranded || s == StatusTurnedAway
}

// 合法的状态转移
var transitions = map[Status][]Status{
	StatusApproaching:   {StatusWaiting},
	StatusWaiting:       {StatusBoarding, StatusTurnedAway},
	StatusBoarding:      {StatusOnboard, StatusTurnedAway},
	StatusOnboard:       {StatusRequestedExit, StatusStranded},
	StatusRequestedExit: {StatusAlighted, StatusStranded},
}

// CanTransit 检查状态转移是否合法
func CanTransit(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
