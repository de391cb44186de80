package instrument

import (
	"context"
	"slices"
	"sync"
)

var _ Source = (*StaticSource)(nil)

// StaticSource 内存中的观察列表, 可通过 Replace 热更新
type StaticSource struct {
	mu          sync.RWMutex
	instruments []Instrument
}

func NewStaticSource(instruments ...Instrument) *StaticSource {
	return &StaticSource{instruments: slices.Clone(instruments)}
}

func (s *StaticSource) List(ctx context.Context) ([]Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.instruments), nil
}

func (s *StaticSource) Replace(instruments []Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruments = slices.Clone(instruments)
}
