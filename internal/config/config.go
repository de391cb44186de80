package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingCredential 缺少 telegram 或 binance 凭证, 启动失败
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidConfig     = errors.New("invalid config")
)

type Config struct {
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Exchange    ExchangeConfig    `mapstructure:"exchange"`
	Monitor     MonitorConfig     `mapstructure:"monitor"`
	Market      MarketConfig      `mapstructure:"market"`
	Trade       TradeConfig       `mapstructure:"trade"`
	Strategy    StrategyConfig    `mapstructure:"strategy"`
	Instruments InstrumentsConfig `mapstructure:"instruments"`
	DB          DBConfig          `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
}

type TelegramConfig struct {
	Token   string        `mapstructure:"token"`
	ChatId  string        `mapstructure:"chat_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ExchangeConfig struct {
	Binance BinanceConfig `mapstructure:"binance"`
}

type BinanceConfig struct {
	ApiKey    string `mapstructure:"api_key"`
	ApiSecret string `mapstructure:"api_secret"`
	Testnet   bool   `mapstructure:"testnet"`
}

type MonitorConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	Workers     int           `mapstructure:"workers"`
	Window      time.Duration `mapstructure:"window"`
	ScanOnStart bool          `mapstructure:"scan_on_start"`
}

type MarketConfig struct {
	Provider  string          `mapstructure:"provider"` // coingecko / binance
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Binance   KlineConfig     `mapstructure:"binance"`
}

type CoinGeckoConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	VsCurrency string `mapstructure:"vs_currency"`
}

type KlineConfig struct {
	Interval string `mapstructure:"interval"`
}

type TradeConfig struct {
	Notional         string `mapstructure:"notional"`
	AutoBuy          bool   `mapstructure:"auto_buy"`
	AutoSell         bool   `mapstructure:"auto_sell"`
	DefaultPrecision int32  `mapstructure:"default_precision"`
}

// NotionalAmount 每次下单的计价币金额, 已在 Validate 中校验
func (c TradeConfig) NotionalAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Notional)
	return d
}

type StrategyConfig struct {
	RSIPeriod   int     `mapstructure:"rsi_period"`
	Oversold    float64 `mapstructure:"oversold"`
	Overbought  float64 `mapstructure:"overbought"`
	VolumeFloor string  `mapstructure:"volume_floor"`
}

func (c StrategyConfig) VolumeFloorAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(c.VolumeFloor)
	return d
}

type InstrumentsConfig struct {
	Source  string   `mapstructure:"source"` // file / static / db
	File    string   `mapstructure:"file"`
	Symbols []string `mapstructure:"symbols"`
}

type DBConfig struct {
	DSN     string `mapstructure:"dsn"`
	Enabled bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text / json
}

// Validate 启动前校验, 凭证缺失时返回 ErrMissingCredential
func (c Config) Validate() error {
	var errs []error
	missing := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, name))
		}
	}
	missing("telegram.token", c.Telegram.Token)
	missing("telegram.chat_id", c.Telegram.ChatId)
	missing("exchange.binance.api_key", c.Exchange.Binance.ApiKey)
	missing("exchange.binance.api_secret", c.Exchange.Binance.ApiSecret)

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	if c.Monitor.Interval <= 0 {
		invalid("monitor.interval must be positive, got %s", c.Monitor.Interval)
	}
	if c.Monitor.Workers <= 0 {
		invalid("monitor.workers must be positive, got %d", c.Monitor.Workers)
	}
	if c.Monitor.Window <= 0 {
		invalid("monitor.window must be positive, got %s", c.Monitor.Window)
	}
	if d, err := decimal.NewFromString(c.Trade.Notional); err != nil || !d.IsPositive() {
		invalid("trade.notional must be a positive decimal, got %q", c.Trade.Notional)
	}
	if c.Trade.DefaultPrecision < 0 {
		invalid("trade.default_precision must not be negative, got %d", c.Trade.DefaultPrecision)
	}
	if _, err := decimal.NewFromString(c.Strategy.VolumeFloor); err != nil {
		invalid("strategy.volume_floor must be a decimal, got %q", c.Strategy.VolumeFloor)
	}
	if c.Strategy.RSIPeriod <= 0 {
		invalid("strategy.rsi_period must be positive, got %d", c.Strategy.RSIPeriod)
	}
	if c.Strategy.Oversold >= c.Strategy.Overbought {
		invalid("strategy.oversold must be below strategy.overbought")
	}
	switch c.Market.Provider {
	case "coingecko", "binance":
	default:
		invalid("unknown market.provider %q", c.Market.Provider)
	}
	switch c.Instruments.Source {
	case "file", "static":
	case "db":
		if !c.DB.Enabled {
			invalid("instruments.source db requires db.enabled")
		}
	default:
		invalid("unknown instruments.source %q", c.Instruments.Source)
	}
	return errors.Join(errs...)
}

// Redacted 用于打印配置, 隐藏凭证
func (c Config) Redacted() Config {
	out := c
	redact(&out.Telegram.Token)
	redact(&out.Exchange.Binance.ApiKey)
	redact(&out.Exchange.Binance.ApiSecret)
	out.Instruments.Symbols = append([]string(nil), c.Instruments.Symbols...)
	return out
}

func redact(s *string) {
	if *s != "" {
		*s = "***"
	}
}
