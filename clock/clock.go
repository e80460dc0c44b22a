package clock

import (
	"fmt"
	"time"

	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
)

// Clock 线路时钟
// 功能：记录车辆已完成的站间行驶次数，并提供站间行驶的节奏控制
// 说明：一次内部步即一次站间行驶；步数换算为轮次与站点，
// DT只影响运行节奏，不参与任何同步判断
type Clock struct {
	DT        time.Duration // 站间行驶时间
	STOPS     int32         // 每轮站点数
	END_STEP  int32         // 结束步，模拟区间[0, END)
	sleepFunc func(time.Duration)

	InternalStep int32 // 已完成的站间行驶次数
}

// New 根据配置创建新的时钟实例
// 功能：根据线路配置初始化时钟
// 参数：stepConfig-控制步配置，包含轮数、站点数与站间行驶时间
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:        time.Duration(stepConfig.Interval * float64(time.Second)),
		STOPS:     stepConfig.Stops,
		END_STEP:  stepConfig.Rounds * stepConfig.Stops,
		sleepFunc: time.Sleep,
	}
	c.Init()
	return c
}

// Init 重置时钟状态
func (c *Clock) Init() {
	c.InternalStep = 0
}

// Travel 模拟一次站间行驶
// 功能：按DT暂停当前协程，DT为0时立即返回
func (c *Clock) Travel() {
	if c.DT > 0 {
		c.sleepFunc(c.DT)
	}
}

// Tick 完成一次站间行驶，步数+1
func (c *Clock) Tick() {
	c.InternalStep++
}

// Done 是否已完成全部轮次
func (c *Clock) Done() bool {
	return c.InternalStep >= c.END_STEP
}

// Round 当前所在轮次（从0开始）
func (c *Clock) Round() int32 {
	return c.InternalStep / c.STOPS
}

// Rounds 配置的总轮数
func (c *Clock) Rounds() int32 {
	return c.END_STEP / c.STOPS
}

// AtRoundStart 是否处于一轮的起点（车辆尚未从0号位置出发）
func (c *Clock) AtRoundStart() bool {
	return c.InternalStep%c.STOPS == 0
}

// NextStop 下一次行驶到达的站点序号，取值[1, STOPS]
func (c *Clock) NextStop() int32 {
	return c.InternalStep%c.STOPS + 1
}

// String 获取时钟的字符串表示
// 返回：格式化的时间字符串（round X stop Y/Z）
func (c *Clock) String() string {
	return fmt.Sprintf("round %d stop %d/%d", c.Round(), c.InternalStep%c.STOPS, c.STOPS)
}
