package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 凭证对应的环境变量
var envBindings = map[string]string{
	"telegram.token":              "TELEGRAM_TOKEN",
	"telegram.chat_id":            "CHAT_ID",
	"exchange.binance.api_key":    "BINANCE_API_KEY",
	"exchange.binance.api_secret": "BINANCE_API_SECRET",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("telegram.timeout", "10s")
	v.SetDefault("exchange.binance.testnet", false)
	v.SetDefault("monitor.interval", "1m")
	v.SetDefault("monitor.workers", 4)
	v.SetDefault("monitor.window", "24h")
	v.SetDefault("monitor.scan_on_start", false)
	v.SetDefault("market.provider", "coingecko")
	v.SetDefault("market.coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("market.coingecko.vs_currency", "usd")
	v.SetDefault("market.binance.interval", "15m")
	v.SetDefault("trade.notional", "100")
	v.SetDefault("trade.auto_buy", true)
	v.SetDefault("trade.auto_sell", false)
	v.SetDefault("trade.default_precision", 6)
	v.SetDefault("strategy.rsi_period", 14)
	v.SetDefault("strategy.oversold", 30)
	v.SetDefault("strategy.overbought", 70)
	v.SetDefault("strategy.volume_floor", "1000000")
	v.SetDefault("instruments.source", "file")
	v.SetDefault("instruments.file", "pairs.json")
	v.SetDefault("db.dsn", "pairwatch.db")
	v.SetDefault("db.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load 读取配置文件 (path 为空时只用默认值和环境变量), .env 存在时先加载
func Load(v *viper.Viper, path string) (Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	SetDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
