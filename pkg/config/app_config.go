package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig 进程级配置，全部来自环境变量
type AppConfig struct {
	LogLevel  string `env:"PQ_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PQ_LOG_FORMAT" envDefault:"text"`
	// Seed 为 0 时使用当前时间作为随机种子
	Seed     uint64 `env:"PQ_SEED" envDefault:"0"`
	HTTPAddr string `env:"PQ_HTTP_ADDR" envDefault:":8080"`
	AppName  string `env:"PQ_APP_NAME" envDefault:"patternquest"`
	Profile  string `env:"PQ_PROFILE" envDefault:"player"`
	// DataDir 为空时使用嵌入的数据
	DataDir string `env:"PQ_DATA_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadAppConfig 从环境变量读取进程配置
func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := ParseEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// LoadContent 按 DataDir 选择磁盘目录或嵌入数据
func (c AppConfig) LoadContent() (*Content, error) {
	if c.DataDir != "" {
		return LoadContentDir(c.DataDir)
	}
	return LoadEmbeddedContent()
}
