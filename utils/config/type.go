package config

// Trip 指定单个乘客起终点的配置项
// 功能：显式给出乘客的起点站与终点站，用于可复现的场景
type Trip struct {
	Origin      int32 `yaml:"origin"`      // 起点站序号，取值[1, stops]
	Destination int32 `yaml:"destination"` // 终点站序号，取值[1, stops]，不能与起点相同
}

// Input 指定乘客来源的配置项
// 功能：定义乘客生成方式
// 说明：若trips非空则按trips生成乘客并忽略passengers，否则按passengers数量随机生成
type Input struct {
	Passengers int32  `yaml:"passengers"`      // 随机生成的乘客数量
	Seed       uint64 `yaml:"seed,omitempty"`  // 随机数种子
	Trips      []Trip `yaml:"trips,omitempty"` // 显式指定的乘客起终点
}

// ControlStep 指定线路运行规模与节奏的配置项
// 功能：定义车辆运行的轮数、站点数与站间行驶时间
type ControlStep struct {
	Rounds   int32   `yaml:"rounds"`   // 车辆完成的完整循环数
	Stops    int32   `yaml:"stops"`    // 线路站点数量（>=2）
	Interval float64 `yaml:"interval"` // 站间行驶时间（秒），仅用于节奏控制
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step            ControlStep `yaml:"step"`
	VehicleCapacity int         `yaml:"vehicle_capacity"`        // 车辆容量
	LogLevel        int         `yaml:"log_level"`               // 日志详细程度：0静默，1生命周期事件，2逐步叙述
	HoldAtDepot     bool        `yaml:"hold_at_depot,omitempty"` // 所有乘客到站后车辆才发车
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Input   Input   `yaml:"input"`   // 输入
	Control Control `yaml:"control"` // 模拟过程控制
}
