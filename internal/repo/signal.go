package repo

import (
	"context"

	"github.com/KNICEX/pairwatch/internal/entity"
	"gorm.io/gorm"
)

type SignalRepo interface {
	Create(ctx context.Context, signal entity.Signal) (int64, error)
}

type signalRepo struct {
	db *gorm.DB
}

func NewSignalRepo(db *gorm.DB) SignalRepo {
	return &signalRepo{
		db: db,
	}
}

func (r *signalRepo) Create(ctx context.Context, signal entity.Signal) (int64, error) {
	err := r.db.WithContext(ctx).Create(&signal).Error
	if err != nil {
		return 0, err
	}
	return signal.Id, nil
}
