package environment

import "github.com/sirupsen/logrus"

// log 环境模块的日志记录器
var log = logrus.WithField("module", "environment")
