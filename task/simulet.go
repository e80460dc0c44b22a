package task

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/busroute-sim/entity/passenger"
	"golang.org/x/sync/errgroup"
)

// Run 运行
// 功能：并发运行车辆控制器与全部乘客智能体，等待全部结束后生成报告
// 算法说明：
// 1. 为每名乘客启动一个协程
// 2. 启动车辆控制器协程；若配置了hold_at_depot，先等待全部乘客到站登记
// 3. 等待所有协程结束：车辆完成全部轮次，且每名乘客都进入终态
// 4. 汇总报告并检查每名乘客恰好有一个终态
func (ctx *Context) Run() (*Report, error) {
	if !ctx.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}
	c := ctx.runtimeConfig.C
	log.Infof("job %s: %d rounds, %d stops, capacity %d, %d passengers",
		ctx.job, c.Step.Rounds, c.Step.Stops, c.VehicleCapacity, ctx.passengerManager.Len())

	var g errgroup.Group
	ctx.passengerManager.Spawn(&g)
	g.Go(func() error {
		if c.HoldAtDepot {
			ctx.monitor.WaitArrivals(ctx.passengerManager.Len())
			log.Debugf("job %s: all passengers at their stops, bus departs", ctx.job)
		}
		ctx.controller.Run()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("job %s: %w", ctx.job, err)
	}

	report := newReport(ctx)
	if report.Resolved() != report.Passengers {
		return report, fmt.Errorf("job %s: %d of %d passengers resolved", ctx.job, report.Resolved(), report.Passengers)
	}
	log.Infof("job %s complete: %v", ctx.job, report)
	ctx.logUnserved(report)
	return report, nil
}

// logUnserved 列出未到达终点的乘客
func (ctx *Context) logUnserved(report *Report) {
	ids := lo.Keys(lo.PickBy(report.Outcomes, func(_ int32, s passenger.Status) bool {
		return s != passenger.StatusAlighted
	}))
	if len(ids) == 0 {
		return
	}
	slices.Sort(ids)
	agents, _ := ctx.passengerManager.Find(ids)
	for _, a := range agents {
		log.Debugf("job %s: %s ended %v", ctx.job, a.Passenger().Label(), a.Status())
	}
}
