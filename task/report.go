package task

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/passenger"
)

// Report 一次运行的结果
type Report struct {
	Rounds          int32                      // 完成的轮数
	Stops           int32                      // 站点数量
	Capacity        int                        // 车辆容量
	Passengers      int                        // 乘客数量
	Outcomes        map[int32]passenger.Status // 每名乘客的终态
	Alighted        int                        // 到达终点的乘客数
	Stranded        int                        // 上车后未到达终点的乘客数
	TurnedAway      int                        // 未能上车的乘客数
	Boarded         int                        // 上车人次
	VehicleArrivals int                        // 车辆到站次数
	MaxOnboard      int                        // 最大载客量
	Generation      uint64                     // 共享状态修改代数
}

// Resolved 已进入终态的乘客数量
func (r *Report) Resolved() int {
	return r.Alighted + r.Stranded + r.TurnedAway
}

func (r *Report) String() string {
	return fmt.Sprintf(
		"rounds=%d stops=%d capacity=%d passengers=%d alighted=%d stranded=%d turned_away=%d boarded=%d arrivals=%d max_onboard=%d",
		r.Rounds, r.Stops, r.Capacity, r.Passengers,
		r.Alighted, r.Stranded, r.TurnedAway,
		r.Boarded, r.VehicleArrivals, r.MaxOnboard,
	)
}

func newReport(ctx *Context) *Report {
	c := ctx.runtimeConfig.C
	outcomes := ctx.passengerManager.Outcomes()
	counts := lo.CountValues(lo.Values(outcomes))
	ctx.stats.mtx.Lock()
	defer ctx.stats.mtx.Unlock()
	return &Report{
		Rounds:          ctx.stats.rounds,
		Stops:           c.Step.Stops,
		Capacity:        c.VehicleCapacity,
		Passengers:      ctx.passengerManager.Len(),
		Outcomes:        outcomes,
		Alighted:        counts[passenger.StatusAlighted],
		Stranded:        counts[passenger.StatusStranded],
		TurnedAway:      counts[passenger.StatusTurnedAway],
		Boarded:         ctx.stats.boarded,
		VehicleArrivals: ctx.stats.vehicleArrivals,
		MaxOnboard:      ctx.stats.maxOnboard,
		Generation:      ctx.monitor.Generation(),
	}
}
