package ioc

import (
	"log/slog"
	"os"

	"github.com/KNICEX/pairwatch/internal/config"
	"github.com/KNICEX/pairwatch/internal/repo"
	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	binancemarket "github.com/KNICEX/pairwatch/internal/service/market/binance"
	"github.com/KNICEX/pairwatch/internal/service/market/coingecko"
	"github.com/KNICEX/pairwatch/internal/service/notification"
	"github.com/KNICEX/pairwatch/internal/service/strategy"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func InitNotifier(cfg config.Config, logger *slog.Logger) *notification.BestEffort {
	tg := notification.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatId, cfg.Telegram.Timeout)
	// 同时输出到控制台, 方便本地查看
	return notification.NewBestEffort(
		notification.Multi(tg, notification.Console(os.Stdout)),
		notification.WithTimeout(cfg.Telegram.Timeout),
		notification.WithLogger(logger),
	)
}

func InitMarketClient(cfg config.Config, cli *binance.Client) market.Client {
	switch cfg.Market.Provider {
	case "binance":
		return binancemarket.NewClient(cli, cfg.Market.Binance.Interval)
	default:
		return coingecko.NewClient(
			coingecko.WithBaseURL(cfg.Market.CoinGecko.BaseURL),
			coingecko.WithVsCurrency(cfg.Market.CoinGecko.VsCurrency),
		)
	}
}

func InitEvaluator(cfg config.Config) strategy.Evaluator {
	return strategy.NewRSIVolumeEvaluator(strategy.RSIConfig{
		Period:      cfg.Strategy.RSIPeriod,
		Oversold:    decimal.NewFromFloat(cfg.Strategy.Oversold),
		Overbought:  decimal.NewFromFloat(cfg.Strategy.Overbought),
		VolumeFloor: cfg.Strategy.VolumeFloorAmount(),
	})
}

// InitInstrumentSource symbolRepo 只在 source 为 db 时使用
func InitInstrumentSource(cfg config.Config, symbolRepo repo.SymbolRepo) instrument.Source {
	switch cfg.Instruments.Source {
	case "db":
		return instrument.NewRepoSource(symbolRepo)
	case "static":
		list := lo.FilterMap(cfg.Instruments.Symbols, func(item string, index int) (instrument.Instrument, bool) {
			ins, err := instrument.Parse(item)
			if err != nil {
				slog.Warn("skip invalid instrument", "value", item, "error", err)
				return instrument.Instrument{}, false
			}
			if cfg.Market.Provider == "coingecko" && !ins.HasExplicitId() {
				slog.Warn("instrument has no coingecko id, using lowercase symbol", "symbol", ins.Symbol, "id", ins.MarketId())
			}
			return ins, true
		})
		return instrument.NewStaticSource(list...)
	default:
		return instrument.NewFileSource(cfg.Instruments.File)
	}
}
