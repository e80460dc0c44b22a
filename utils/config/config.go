package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// RuntimeConfig 运行时配置
// 功能：存储经过校验的仿真运行时配置，运行期间保持不变
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：校验配置并创建运行时配置对象
// 参数：config-原始配置对象
// 返回：运行时配置指针，配置非法时返回包装了ErrInvalidConfig的错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}
	return &RuntimeConfig{
		All: config,
		C:   config.Control,
	}, nil
}

// Validate 校验配置
// 算法说明：
// 1. 检查线路规模：站点数>=2，轮数>=0，容量>=1
// 2. 检查节奏与日志级别
// 3. 检查乘客来源：数量非负，显式起终点合法
func Validate(c Config) error {
	step := c.Control.Step
	if step.Stops < 2 {
		return fmt.Errorf("%w: stops must be >= 2, got %d", ErrInvalidConfig, step.Stops)
	}
	if step.Rounds < 0 {
		return fmt.Errorf("%w: rounds must be >= 0, got %d", ErrInvalidConfig, step.Rounds)
	}
	if step.Interval < 0 {
		return fmt.Errorf("%w: interval must be >= 0, got %v", ErrInvalidConfig, step.Interval)
	}
	if c.Control.VehicleCapacity < 1 {
		return fmt.Errorf("%w: vehicle_capacity must be >= 1, got %d", ErrInvalidConfig, c.Control.VehicleCapacity)
	}
	if c.Control.LogLevel < 0 || c.Control.LogLevel > 2 {
		return fmt.Errorf("%w: log_level must be in [0, 2], got %d", ErrInvalidConfig, c.Control.LogLevel)
	}
	if c.Input.Passengers < 0 {
		return fmt.Errorf("%w: passengers must be >= 0, got %d", ErrInvalidConfig, c.Input.Passengers)
	}
	for i, trip := range c.Input.Trips {
		if trip.Origin < 1 || trip.Origin > step.Stops || trip.Destination < 1 || trip.Destination > step.Stops {
			return fmt.Errorf("%w: trip %d (%d->%d) out of stop range [1, %d]", ErrInvalidConfig, i, trip.Origin, trip.Destination, step.Stops)
		}
		if trip.Origin == trip.Destination {
			return fmt.Errorf("%w: trip %d origin equals destination %d", ErrInvalidConfig, i, trip.Origin)
		}
	}
	return nil
}

// PassengerCount 本次运行的乘客数量
func (c Config) PassengerCount() int32 {
	if len(c.Input.Trips) > 0 {
		return int32(len(c.Input.Trips))
	}
	return c.Input.Passengers
}

// Parse 解析YAML配置
// 功能：严格模式解析YAML，出现未知字段时报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config file load err: %w", err)
	}
	return c, nil
}
