package config

import (
	"fmt"
	"os"
	"strconv"
)

// 环境变量覆盖项，在YAML加载之后生效
const (
	EnvRounds     = "BUSROUTE_ROUNDS"
	EnvStops      = "BUSROUTE_STOPS"
	EnvCapacity   = "BUSROUTE_VEHICLE_CAPACITY"
	EnvPassengers = "BUSROUTE_PASSENGERS"
	EnvSeed       = "BUSROUTE_SEED"
	EnvLogLevel   = "BUSROUTE_LOG_LEVEL"
	EnvInterval   = "BUSROUTE_INTERVAL"
)

// ApplyEnv 使用环境变量覆盖配置
// 功能：读取BUSROUTE_*环境变量并覆盖对应配置项，未设置的变量不影响配置
// 参数：c-待覆盖的配置
// 返回：环境变量无法解析时返回错误
func ApplyEnv(c *Config) error {
	if err := envInt32(EnvRounds, &c.Control.Step.Rounds); err != nil {
		return err
	}
	if err := envInt32(EnvStops, &c.Control.Step.Stops); err != nil {
		return err
	}
	if err := envInt32(EnvPassengers, &c.Input.Passengers); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCapacity, err)
		}
		c.Control.VehicleCapacity = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.Control.LogLevel = n
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Input.Seed = n
	}
	if v, ok := os.LookupEnv(EnvInterval); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInterval, err)
		}
		c.Control.Step.Interval = f
	}
	return nil
}

func envInt32(key string, out *int32) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*out = int32(n)
	return nil
}
