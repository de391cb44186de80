package binance

import (
	"sync"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var (
	_ exchange.Client               = (*Service)(nil)
	_ exchange.QuantityStepProvider = (*Service)(nil)
)

// Service 币安现货
type Service struct {
	cli *binance.Client

	mu    sync.RWMutex
	steps map[string]decimal.Decimal
}

func NewService(cli *binance.Client) *Service {
	return &Service{
		cli:   cli,
		steps: make(map[string]decimal.Decimal),
	}
}
