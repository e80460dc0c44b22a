package bus

import "github.com/sirupsen/logrus"

// log 车辆模块的日志记录器
// 功能：为bus模块提供统一的日志记录功能
var log = logrus.WithField("module", "bus")
