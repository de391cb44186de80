package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/pairwatch/internal/service/exchange"
	"github.com/KNICEX/pairwatch/internal/service/instrument"
	"github.com/KNICEX/pairwatch/internal/service/market"
	"github.com/KNICEX/pairwatch/internal/service/notification"
	"github.com/KNICEX/pairwatch/internal/service/strategy"
	"github.com/KNICEX/pairwatch/internal/service/trade"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWindow  = 24 * time.Hour
	defaultWorkers = 4
)

type Monitor struct {
	market    market.Client
	evaluator strategy.Evaluator
	notifier  *notification.BestEffort

	executor TradeExecutor
	policy   TradePolicy
	journal  Journal

	window  time.Duration
	workers int
	logger  *slog.Logger
	newPass func() string
}

type Option func(m *Monitor)

// WithExecutor 开启自动交易, 未设置时只发送信号通知
func WithExecutor(executor TradeExecutor, policy TradePolicy) Option {
	return func(m *Monitor) {
		m.executor = executor
		m.policy = policy
	}
}

func WithJournal(journal Journal) Option {
	return func(m *Monitor) {
		m.journal = journal
	}
}

func WithWindow(window time.Duration) Option {
	return func(m *Monitor) {
		if window > 0 {
			m.window = window
		}
	}
}

// WithWorkers 一轮扫描中同时处理的交易对数量上限
func WithWorkers(workers int) Option {
	return func(m *Monitor) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

func WithPassId(fn func() string) Option {
	return func(m *Monitor) {
		m.newPass = fn
	}
}

func NewMonitor(marketCli market.Client, evaluator strategy.Evaluator, notifier *notification.BestEffort, opts ...Option) *Monitor {
	m := &Monitor{
		market:    marketCli,
		evaluator: strategy.Safe(evaluator),
		notifier:  notifier,
		window:    defaultWindow,
		workers:   defaultWorkers,
		logger:    slog.Default(),
		newPass:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scan 扫描一批交易对, 每个交易对独立处理, 单个失败不影响其他交易对
func (m *Monitor) Scan(ctx context.Context, instruments []instrument.Instrument) PassReport {
	report := PassReport{
		Id:        m.newPass(),
		StartedAt: time.Now(),
		Outcomes:  make([]Outcome, len(instruments)),
	}

	var g errgroup.Group
	g.SetLimit(m.workers)
	for i, ins := range instruments {
		g.Go(func() error {
			report.Outcomes[i] = m.process(ctx, report.Id, ins)
			return nil
		})
	}
	_ = g.Wait()

	report.Cost = time.Since(report.StartedAt)
	return report
}

func (m *Monitor) process(ctx context.Context, pass string, ins instrument.Instrument) (out Outcome) {
	out = Outcome{Instrument: ins, Signal: strategy.Hold}
	logger := m.logger.With("pass", pass, "symbol", ins.Symbol)
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("process %s panic: %v", ins.Symbol, r)
			logger.Error("failed to process symbol", "error", out.Err)
		}
	}()

	snapshot, err := m.market.Fetch(ctx, ins, m.window)
	if err != nil {
		out.Err = err
		logger.Error("failed to get market data", "error", err)
		return out
	}
	if len(snapshot.Samples) == 0 {
		logger.Warn("empty market snapshot", "reason", "no samples in window")
	}

	out.Signal = m.evaluator.Evaluate(snapshot)
	if !out.Signal.IsActionable() {
		logger.Debug("no signal", "samples", len(snapshot.Samples))
		return out
	}
	logger.Info("find signal", "signal", out.Signal, "samples", len(snapshot.Samples))

	if m.journal != nil {
		if err = m.journal.RecordSignal(ctx, pass, snapshot, out.Signal); err != nil {
			logger.Error("failed to save signal", "signal", out.Signal, "error", err)
		}
	}
	out.Alerted = m.notifier.Notify(ctx, alertMessage(snapshot, out.Signal))

	req, ok := m.tradeRequest(ins, out.Signal)
	if !ok {
		return out
	}
	res := m.executor.Execute(ctx, req)
	out.Trade = &res

	if m.journal != nil {
		if err = m.journal.RecordTrade(ctx, pass, res); err != nil {
			logger.Error("failed to save trade", "error", err)
		}
	}
	return out
}

func (m *Monitor) tradeRequest(ins instrument.Instrument, signal strategy.Signal) (trade.Request, bool) {
	if m.executor == nil || !m.policy.Notional.IsPositive() {
		return trade.Request{}, false
	}
	var side exchange.Side
	switch {
	case signal == strategy.Buy && m.policy.AutoBuy:
		side = exchange.Buy
	case signal == strategy.Sell && m.policy.AutoSell:
		side = exchange.Sell
	default:
		return trade.Request{}, false
	}
	return trade.Request{
		Instrument: ins,
		Side:       side,
		Notional:   m.policy.Notional,
	}, true
}

func alertMessage(snapshot market.Snapshot, signal strategy.Signal) string {
	kind := "Buy"
	if signal == strategy.Sell {
		kind = "Sell"
	}
	msg := fmt.Sprintf("%s opportunity for %s", kind, snapshot.Instrument.Symbol)
	if last, ok := snapshot.Last(); ok {
		msg = fmt.Sprintf("%s (last price %s)", msg, last.Price)
	}
	return msg
}
