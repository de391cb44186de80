package instrument

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KNICEX/pairwatch/internal/entity"
	"github.com/KNICEX/pairwatch/internal/repo"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var _ Source = (*RepoSource)(nil)

// RepoSource 从数据库读取标记为 favorite 的交易对
type RepoSource struct {
	repo repo.SymbolRepo
}

func NewRepoSource(symbolRepo repo.SymbolRepo) *RepoSource {
	return &RepoSource{repo: symbolRepo}
}

func (s *RepoSource) List(ctx context.Context) ([]Instrument, error) {
	symbols, err := s.repo.FindByMark(ctx, entity.MarkFavorite)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return lo.Map(symbols, func(item entity.Symbol, index int) Instrument {
		return Instrument{Symbol: strings.ToUpper(strings.TrimSpace(item.Symbol)), DataId: item.DataId}
	}), nil
}

// Ignored 返回被标记为 ignore 的交易对集合, key 为大写 symbol
func Ignored(ctx context.Context, symbolRepo repo.SymbolRepo) (map[string]struct{}, error) {
	symbols, err := symbolRepo.FindByMark(ctx, entity.MarkIgnore)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(symbols, func(item entity.Symbol) (string, struct{}) {
		return strings.ToUpper(strings.TrimSpace(item.Symbol)), struct{}{}
	}), nil
}

// Mark 把交易对写入观察列表并打上 favorite / ignore 标记
// 没有重新指定数据源 id 时保留已有记录中的 id
func Mark(ctx context.Context, symbolRepo repo.SymbolRepo, raw string, mark string) (Instrument, error) {
	ins, err := Parse(raw)
	if err != nil {
		return Instrument{}, err
	}
	existing, err := symbolRepo.FindBySymbol(ctx, ins.Symbol)
	switch {
	case err == nil:
		if !ins.HasExplicitId() && existing.DataId != "" {
			ins.DataId = existing.DataId
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return Instrument{}, fmt.Errorf("find symbol %s: %w", ins.Symbol, err)
	}

	now := time.Now()
	err = symbolRepo.Upsert(ctx, entity.Symbol{
		Symbol:    ins.Symbol,
		DataId:    ins.DataId,
		Mark:      mark,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Instrument{}, fmt.Errorf("mark symbol %s as %s: %w", ins.Symbol, mark, err)
	}
	return ins, nil
}
