package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Scheduler 按固定间隔串行执行任务, 上一轮结束之前不会开始下一轮
type Scheduler struct {
	interval   time.Duration
	newTicker  func(d time.Duration) Ticker
	runOnStart bool
	logger     *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

type Option func(s *Scheduler)

func WithTicker(newTicker func(d time.Duration) Ticker) Option {
	return func(s *Scheduler) {
		s.newTicker = newTicker
	}
}

// WithRunOnStart 启动后立即执行一轮, 不等待第一个节拍
func WithRunOnStart(runOnStart bool) Option {
	return func(s *Scheduler) {
		s.runOnStart = runOnStart
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func NewScheduler(interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		interval:  interval,
		newTicker: NewTicker,
		logger:    slog.Default(),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run 阻塞直到 Stop 被调用或 ctx 结束
// 停止只影响后续轮次, 正在执行的一轮使用不可取消的 ctx 跑完
func (s *Scheduler) Run(ctx context.Context, task Task) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid schedule interval %s", s.interval)
	}
	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "task", task.Name(), "interval", s.interval)
	if s.runOnStart {
		s.runOnce(ctx, task)
	}
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "task", task.Name(), "reason", ctx.Err())
			return ctx.Err()
		case <-s.stop:
			s.logger.Info("scheduler stopped", "task", task.Name())
			return nil
		case <-ticker.C():
		}

		// 节拍和停止信号同时到达时优先停止
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		default:
		}
		s.runOnce(ctx, task)
	}
}

// Stop 可重复调用
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked", "task", task.Name(), "panic", r)
		}
	}()

	if err := task.Run(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("task failed, skip this round", "task", task.Name(), "error", err, "cost", time.Since(start))
		return
	}
	s.logger.Debug("task finished", "task", task.Name(), "cost", time.Since(start))
}
