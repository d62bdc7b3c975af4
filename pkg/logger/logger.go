// Package logger 提供全局结构化日志实例
//
// Log 在包初始化时即可使用（info 级别、文本格式、输出到 stderr），
// main() 中调用 Init() 按运行配置重新设置级别、格式和输出位置。
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 是全局日志实例
var Log = newDefault()

// Config 日志配置
type Config struct {
	Level  string    // debug / info / warn / error，非法值回退为 info
	Format string    // json / text
	Output io.Writer // 为 nil 时输出到 stderr
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init 按配置重新设置全局日志
func Init(cfg Config) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Output != nil {
		Log.SetOutput(cfg.Output)
	} else {
		Log.SetOutput(os.Stderr)
	}
}

// For 返回带组件字段的日志入口
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
