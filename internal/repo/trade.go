package repo

import (
	"context"

	"github.com/KNICEX/pairwatch/internal/entity"
	"gorm.io/gorm"
)

type TradeRepo interface {
	Create(ctx context.Context, trade entity.Trade) (int64, error)
}

type tradeRepo struct {
	db *gorm.DB
}

func NewTradeRepo(db *gorm.DB) TradeRepo {
	return &tradeRepo{
		db: db,
	}
}

func (r *tradeRepo) Create(ctx context.Context, trade entity.Trade) (int64, error) {
	err := r.db.WithContext(ctx).Create(&trade).Error
	if err != nil {
		return 0, err
	}
	return trade.Id, nil
}
