package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/busroute-sim/task"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
)

var (
	// 模拟任务名，用于日志与报告
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 环境变量文件路径，文件不存在时直接使用进程环境变量
	envPath = flag.String("env", ".env", "env file path, BUSROUTE_* variables override the config")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	// 配置文件中log_level对应的日志级别
	configLogLevels = []logrus.Level{
		logrus.PanicLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
	}
	logLevel = flag.String("log.level", "", "日志级别，为空时使用配置文件中的log_level（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "busroute")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if *logLevel != "" {
		if _, ok := logLevels[*logLevel]; !ok {
			log.Panicf("log.level must be one of %v", logLevels)
		}
	}
	if err := godotenv.Load(*envPath); err != nil {
		log.Debugf("no env file %s, using process environment", *envPath)
	}
	// 获取配置
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	c, err := config.Parse(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	if err := config.ApplyEnv(&c); err != nil {
		log.Panicf("config env override err: %v", err)
	}
	// log: 命令行优先于配置文件
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else if c.Control.LogLevel >= 0 && c.Control.LogLevel < len(configLogLevels) {
		logrus.SetLevel(configLogLevels[c.Control.LogLevel])
	}
	log.Debugf("%+v", c)

	t, err := task.NewContext(*job, c)
	if err != nil {
		log.Panicf("init err: %v", err)
	}
	if _, err := t.Run(); err != nil {
		log.Panicf("run err: %v", err)
	}
}
