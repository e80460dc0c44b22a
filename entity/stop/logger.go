package stop

import "github.com/sirupsen/logrus"

// log 站点模块的日志记录器
var log = logrus.WithField("module", "stop")
