package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Notifier 把一条文本消息发送给固定的接收者
type Notifier interface {
	Send(ctx context.Context, text string) error
}

type NotifierFunc func(ctx context.Context, text string) error

func (f NotifierFunc) Send(ctx context.Context, text string) error {
	return f(ctx, text)
}

type consoleNotifier struct {
	w io.Writer
}

// Console 输出到终端, 未配置消息通道时使用
func Console(w io.Writer) Notifier {
	return consoleNotifier{w: w}
}

func (c consoleNotifier) Send(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(c.w, text)
	return err
}

type multiNotifier []Notifier

// Multi 依次发送到所有通道, 单个通道失败不影响其他通道
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Send(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const defaultSendTimeout = 10 * time.Second

// BestEffort 通知失败只记录日志, 不向调用方返回错误
type BestEffort struct {
	inner   Notifier
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(b *BestEffort)

func WithTimeout(timeout time.Duration) Option {
	return func(b *BestEffort) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *BestEffort) {
		b.logger = logger
	}
}

func NewBestEffort(inner Notifier, opts ...Option) *BestEffort {
	b := &BestEffort{
		inner:   inner,
		timeout: defaultSendTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Notify 返回是否发送成功, 仅用于日志和测试
func (b *BestEffort) Notify(ctx context.Context, text string) bool {
	if b == nil || b.inner == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.inner.Send(ctx, text); err != nil {
		b.logger.Error("failed to send notification", "text", text, "error", err)
		return false
	}
	return true
}
