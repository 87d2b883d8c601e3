// Package config 加载核心配置。
//
// 加载顺序（与环境变量覆盖规则）：
//  1. godotenv 读取 .env（存在则注入进程环境）
//  2. 解析 yaml 配置文件
//  3. 环境变量覆盖个别字段（LOG_LEVEL / LOG_FILE / SIM_INSTRUMENT）
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/betbot/tradecore/pkg/types"
)

// LogConfig 日志配置段
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// SimConfig 模拟器配置段
type SimConfig struct {
	Instrument   string `yaml:"instrument"`     // "SYMBOL.VENUE"
	BookLevel    uint8  `yaml:"book_level"`     // 1=L1_TBBO 2=L2_MBP 3=L3_MBO
	PricePrec    uint8  `yaml:"price_prec"`     // 价格精度
	SizePrec     uint8  `yaml:"size_prec"`      // 数量精度
	LogQueueSize int    `yaml:"log_queue_size"` // 异步日志队列容量
}

// CurrencyConfig 启动时追加注册的货币
type CurrencyConfig struct {
	Code      string `yaml:"code"`
	Precision uint8  `yaml:"precision"`
	ISO4217   uint16 `yaml:"iso4217"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"` // "crypto" 或 "fiat"
}

// Config 应用配置
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Sim        SimConfig        `yaml:"sim"`
	Currencies []CurrencyConfig `yaml:"currencies"`
}

// Default 返回缺省配置
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Sim: SimConfig{
			Instrument:   "BTCUSDT.BINANCE",
			BookLevel:    2,
			PricePrec:    2,
			SizePrec:     0,
			LogQueueSize: 1024,
		},
	}
}

// Load 读取配置文件；path 为空时返回缺省配置（仍应用环境覆盖）
func Load(path string) (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides 环境变量优先于文件
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("SIM_INSTRUMENT"); v != "" {
		cfg.Sim.Instrument = v
	}
}

// RegisterCurrencies 把配置中的货币注册进进程级注册表（幂等）
func (c *Config) RegisterCurrencies() error {
	for _, cc := range c.Currencies {
		typ := types.CurrencyTypeCrypto
		if cc.Type == "fiat" {
			typ = types.CurrencyTypeFiat
		}
		if _, err := types.RegisterCurrency(cc.Code, cc.Precision, cc.ISO4217, cc.Name, typ); err != nil {
			return errors.Wrapf(err, "register currency %s", cc.Code)
		}
	}
	return nil
}
