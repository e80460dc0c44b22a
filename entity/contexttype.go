package entity

import (
	"github.com/tsinghua-fib-lab/busroute-sim/clock"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	Monitor() IRouteMonitor
	RuntimeConfig() *config.RuntimeConfig
}
