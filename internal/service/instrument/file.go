package instrument

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var _ Source = (*FileSource)(nil)

// FileSource 每次 List 都重新读取文件, 修改文件即可在下一轮生效
// 文件格式: {"pairs": ["BTCUSDT", "ETHUSDT:ethereum"]}, 也支持 yaml/toml
type FileSource struct {
	path string
	key  string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, key: "pairs"}
}

func (s *FileSource) List(ctx context.Context) ([]Instrument, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrSourceUnavailable, s.path, err)
	}
	if !v.IsSet(s.key) {
		return nil, fmt.Errorf("%w: %s has no %q key", ErrSourceUnavailable, s.path, s.key)
	}

	res := make([]Instrument, 0)
	for _, raw := range v.GetStringSlice(s.key) {
		ins, err := Parse(raw)
		if err != nil {
			slog.Warn("skip invalid instrument", "file", s.path, "entry", raw, "error", err)
			continue
		}
		res = append(res, ins)
	}
	return lo.UniqBy(res, func(item Instrument) string {
		return item.Symbol
	}), nil
}
