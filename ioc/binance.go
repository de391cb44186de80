package ioc

import (
	"github.com/KNICEX/pairwatch/internal/config"
	"github.com/adshao/go-binance/v2"
)

func InitBinanceCli(cfg config.Config) *binance.Client {
	// 必须在创建 client 之前设置
	binance.UseTestnet = cfg.Exchange.Binance.Testnet
	return binance.NewClient(cfg.Exchange.Binance.ApiKey, cfg.Exchange.Binance.ApiSecret)
}
