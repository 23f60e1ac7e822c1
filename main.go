package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/task"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
)

var (
	// 模拟任务名，用于输出的数据库记录
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 本程序监听的RPC地址，设置为空则不提供RPC服务
	listenAddr = flag.String("listen", "", "rpc listening address (empty means disabled), e.g. :51102")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path (empty means default config)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")

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
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "smartcab")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置，都未指定时使用默认配置
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
	}
	c, err := config.Parse(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	t := task.NewContext(*job, c)
	defer t.Close()
	if *listenAddr != "" {
		if err := t.Serve(*listenAddr); err != nil {
			log.Panicf("failed to serve: %v", err)
		}
	}

	// Ctrl+C或SIGTERM时在当前步结束后停止，仍然导出已完成试验的结果
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := t.Run(ctx); err != nil {
		log.Errorf("export err: %v", err)
	}
	log.Infof("engine complete")
}
