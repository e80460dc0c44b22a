package route

import "github.com/sirupsen/logrus"

// log 线路监视器模块的日志记录器
var log = logrus.WithField("module", "route")
