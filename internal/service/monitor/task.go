package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KNICEX/pairwatch/internal/schedule"
	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/samber/lo"
)

type ScanTask struct {
	source  instrument.Source
	monitor *Monitor
	ignored func(ctx context.Context) (map[string]struct{}, error)
	reports chan<- PassReport
	logger  *slog.Logger
}

type TaskOption func(t *ScanTask)

// WithIgnored 每轮开始时加载需要跳过的交易对, 加载失败时不跳过任何交易对
func WithIgnored(fn func(ctx context.Context) (map[string]struct{}, error)) TaskOption {
	return func(t *ScanTask) {
		t.ignored = fn
	}
}

// WithReports 每轮结束后把汇总发送到 ch, ch 满时丢弃
func WithReports(ch chan<- PassReport) TaskOption {
	return func(t *ScanTask) {
		t.reports = ch
	}
}

func NewScanTask(monitor *Monitor, source instrument.Source, opts ...TaskOption) schedule.Task {
	task := &ScanTask{
		source:  source,
		monitor: monitor,
		ignored: func(ctx context.Context) (map[string]struct{}, error) {
			return nil, nil
		},
		logger: monitor.logger,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// Run 执行一轮扫描; 观察列表读取失败时返回错误, 本轮跳过
func (t *ScanTask) Run(ctx context.Context) error {
	list, err := t.source.List(ctx)
	if err != nil {
		return fmt.Errorf("list instruments: %w", err)
	}
	// 本轮使用开始时的快照, 列表在扫描过程中被修改不影响本轮
	// 同一交易对在一轮中只处理一次
	instruments := lo.UniqBy(slices.Clone(list), func(item instrument.Instrument) string {
		return strings.ToUpper(item.Symbol)
	})

	ignored, err := t.ignored(ctx)
	if err != nil {
		t.logger.Warn("failed to load ignored symbols", "error", err)
	}
	instruments = lo.Reject(instruments, func(item instrument.Instrument, index int) bool {
		_, ok := ignored[strings.ToUpper(item.Symbol)]
		return ok
	})

	if len(instruments) == 0 {
		t.logger.Info("no instruments to scan")
	}
	report := t.monitor.Scan(ctx, instruments)
	t.logger.Info("scan finished",
		"pass", report.Id,
		"instruments", len(report.Outcomes),
		"failed", report.Failed(),
		"signals", report.Actionable(),
		"trades", report.Trades(),
		"failed_trades", report.FailedTrades(),
		"cost", report.Cost,
	)

	if t.reports != nil {
		select {
		case t.reports <- report:
		default:
		}
	}
	return nil
}

func (t *ScanTask) Name() string {
	return "pair monitor scan task"
}
