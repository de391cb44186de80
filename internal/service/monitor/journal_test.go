package monitor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KNICEX/pairwatch/internal/entity"
	"github.com/KNICEX/pairwatch/internal/repo"
	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/KNICEX/pairwatch/internal/service/strategy"
	"github.com/KNICEX/pairwatch/internal/service/trade"
	"github.com/KNICEX/pairwatch/pkg/decimalx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestJournal(t *testing.T) (*RepoJournal, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, repo.InitTables(db))
	return NewRepoJournal(repo.NewSignalRepo(db), repo.NewTradeRepo(db)), db
}

func TestRepoJournal_RecordSignal(t *testing.T) {
	ctx := context.Background()
	journal, db := newTestJournal(t)

	snapshot := market.Snapshot{
		Instrument: ins("BTCUSDT"),
		Samples: []market.Sample{
			{Time: time.Now().Add(-time.Minute), Price: decimalx.MustFromString("99")},
			{Time: time.Now(), Price: decimalx.MustFromString("101.5")},
		},
	}
	require.NoError(t, journal.RecordSignal(ctx, "p1", snapshot, strategy.Sell))

	var signals []entity.Signal
	require.NoError(t, db.Where("pass = ?", "p1").Find(&signals).Error)
	require.Len(t, signals, 1)
	assert.Equal(t, "BTCUSDT", signals[0].Symbol)
	assert.Equal(t, "sell", signals[0].Action)
	assert.Equal(t, "101.5", signals[0].LastPrice)
	assert.Equal(t, 2, signals[0].Samples)
}

func TestRepoJournal_RecordTrade(t *testing.T) {
	ctx := context.Background()
	journal, db := newTestJournal(t)

	require.NoError(t, journal.RecordTrade(ctx, "p1", trade.Result{
		Instrument:     ins("BTCUSDT"),
		Side:           exchange.Buy,
		Notional:       decimalx.MustFromString("100"),
		Price:          decimalx.MustFromString("50"),
		Quantity:       decimalx.MustFromString("2"),
		FilledQuantity: decimalx.MustFromString("2"),
		OrderId:        "28",
	}))
	require.NoError(t, journal.RecordTrade(ctx, "p1", trade.Result{
		Instrument: ins("ETHUSDT"),
		Side:       exchange.Sell,
		Err:        exchange.Rejected("insufficient balance"),
	}))

	var ok []entity.Trade
	require.NoError(t, db.Where("status = ?", entity.TradeStatusSuccess).Find(&ok).Error)
	require.Len(t, ok, 1)
	assert.Equal(t, "28", ok[0].OrderId)
	assert.Equal(t, "2", ok[0].Quantity)

	var failed []entity.Trade
	require.NoError(t, db.Where("status = ?", entity.TradeStatusFailed).Find(&failed).Error)
	require.Len(t, failed, 1)
	assert.Equal(t, "ETHUSDT", failed[0].Symbol)
	assert.Contains(t, failed[0].Error, "insufficient balance")
}
