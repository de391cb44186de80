package monitor

import (
	"context"
	"time"

	"github.com/KNICEX/pairwatch/internal/entity"
	"github.com/KNICEX/pairwatch/internal/repo"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/KNICEX/pairwatch/internal/service/strategy"
	"github.com/KNICEX/pairwatch/internal/service/trade"
)

var _ Journal = (*RepoJournal)(nil)

// RepoJournal 把信号和交易结果写入数据库
type RepoJournal struct {
	signalRepo repo.SignalRepo
	tradeRepo  repo.TradeRepo
}

func NewRepoJournal(signalRepo repo.SignalRepo, tradeRepo repo.TradeRepo) *RepoJournal {
	return &RepoJournal{
		signalRepo: signalRepo,
		tradeRepo:  tradeRepo,
	}
}

func (j *RepoJournal) RecordSignal(ctx context.Context, pass string, snapshot market.Snapshot, signal strategy.Signal) error {
	lastPrice := ""
	if last, ok := snapshot.Last(); ok {
		lastPrice = last.Price.String()
	}
	_, err := j.signalRepo.Create(ctx, entity.Signal{
		Pass:      pass,
		Symbol:    snapshot.Instrument.Symbol,
		Action:    signal.ToString(),
		LastPrice: lastPrice,
		Samples:   len(snapshot.Samples),
		CreatedAt: time.Now(),
	})
	return err
}

func (j *RepoJournal) RecordTrade(ctx context.Context, pass string, res trade.Result) error {
	record := entity.Trade{
		Pass:           pass,
		Symbol:         res.Instrument.Symbol,
		Side:           res.Side.ToString(),
		Notional:       res.Notional.String(),
		Price:          res.Price.String(),
		Quantity:       res.Quantity.String(),
		FilledQuantity: res.FilledQuantity.String(),
		OrderId:        res.OrderId.ToString(),
		Status:         entity.TradeStatusSuccess,
		CreatedAt:      time.Now(),
	}
	if !res.Succeeded() {
		record.Status = entity.TradeStatusFailed
		record.Error = res.Err.Error()
	}
	_, err := j.tradeRepo.Create(ctx, record)
	return err
}
