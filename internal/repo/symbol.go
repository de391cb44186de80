package repo

import (
	"context"

	"github.com/KNICEX/pairwatch/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SymbolRepo interface {
	// Upsert 按 symbol 创建或更新 data id / mark
	Upsert(ctx context.Context, symbol entity.Symbol) error
	FindByMark(ctx context.Context, mark string) ([]entity.Symbol, error)
	FindBySymbol(ctx context.Context, symbol string) (entity.Symbol, error)
}

type symbolRepo struct {
	db *gorm.DB
}

func NewSymbolRepo(db *gorm.DB) SymbolRepo {
	return &symbolRepo{
		db: db,
	}
}

func (repo *symbolRepo) Upsert(ctx context.Context, symbol entity.Symbol) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_id", "mark", "updated_at"}),
	}).Create(&symbol).Error
}

func (repo *symbolRepo) FindByMark(ctx context.Context, mark string) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	err := repo.db.WithContext(ctx).Where("mark = ?", mark).Order("id").Find(&symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

func (repo *symbolRepo) FindBySymbol(ctx context.Context, symbol string) (entity.Symbol, error) {
	var res entity.Symbol
	err := repo.db.WithContext(ctx).Where("symbol = ?", symbol).First(&res).Error
	if err != nil {
		return entity.Symbol{}, err
	}
	return res, nil
}
