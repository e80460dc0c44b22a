package input

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/randengine"
)

// Input 输入数据
// 功能：存储仿真所需的全部乘客起终点
type Input struct {
	Trips []config.Trip
}

// Init 生成乘客起终点
// 功能：根据配置生成全部乘客的起终点
// 参数：c-配置对象
// 返回：生成的输入数据指针
// 算法说明：
// 1. 若配置显式给出trips，直接使用（复制一份，避免修改配置）
// 2. 否则使用以seed为种子的随机数引擎生成passengers组起终点，
// 起终点相同时终点顺延到下一站
func Init(c config.Config) *Input {
	if len(c.Input.Trips) > 0 {
		log.Infof("use %d configured trips", len(c.Input.Trips))
		return &Input{Trips: append([]config.Trip(nil), c.Input.Trips...)}
	}
	engine := randengine.New(c.Input.Seed)
	stops := c.Control.Step.Stops
	trips := lo.Times(int(c.Input.Passengers), func(int) config.Trip {
		origin, destination := engine.StopPair(stops)
		return config.Trip{Origin: origin, Destination: destination}
	})
	log.Infof("generate %d random trips with seed %d", len(trips), c.Input.Seed)
	return &Input{Trips: trips}
}
