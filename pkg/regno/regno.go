// Package regno 分配 AGS 登记号，格式为 AGS-<年份>-<日期代码>-<三位序号>，
// 序号按年份和参会日期分别计数
package regno

import (
	"context"
	"errors"
	"fmt"
	"time"

	"namogange/pkg/ags"
)

// DefaultPrefix 登记号前缀
const DefaultPrefix = "AGS"

// ErrUnknownDay 未知的参会日期
var ErrUnknownDay = errors.New("regno: unknown seminar day")

// Sequence 计数器存储
type Sequence interface {
	// Peek 返回最后一次分配的序号，从未分配时为 0
	Peek(ctx context.Context, key string) (int64, error)
	// Next 原子地加一并返回新序号
	Next(ctx context.Context, key string) (int64, error)
}

// Allocator 登记号分配器
type Allocator struct {
	seq    Sequence
	prefix string
	now    func() time.Time
}

// Option 分配器选项
type Option func(*Allocator)

// WithPrefix 自定义前缀
func WithPrefix(prefix string) Option {
	return func(a *Allocator) {
		if prefix != "" {
			a.prefix = prefix
		}
	}
}

// WithClock 自定义时钟，年份取自该时钟
func WithClock(now func() time.Time) Option {
	return func(a *Allocator) {
		a.now = now
	}
}

// New 创建分配器
func New(seq Sequence, opts ...Option) *Allocator {
	a := &Allocator{seq: seq, prefix: DefaultPrefix, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Preview 预览下一个登记号，不占用序号
func (a *Allocator) Preview(ctx context.Context, day ags.SeminarDay) (string, error) {
	year, key, err := a.key(day)
	if err != nil {
		return "", err
	}
	n, err := a.seq.Peek(ctx, key)
	if err != nil {
		return "", fmt.Errorf("regno: peek %s: %w", key, err)
	}
	return Format(a.prefix, year, day, n+1), nil
}

// Reserve 占用并返回下一个登记号
func (a *Allocator) Reserve(ctx context.Context, day ags.SeminarDay) (string, error) {
	year, key, err := a.key(day)
	if err != nil {
		return "", err
	}
	n, err := a.seq.Next(ctx, key)
	if err != nil {
		return "", fmt.Errorf("regno: next %s: %w", key, err)
	}
	return Format(a.prefix, year, day, n), nil
}

// PreviewRegistrationNo 使分配器可以直接作为 ags.Allocator 使用
func (a *Allocator) PreviewRegistrationNo(ctx context.Context, day ags.SeminarDay) (string, error) {
	return a.Preview(ctx, day)
}

func (a *Allocator) key(day ags.SeminarDay) (int, string, error) {
	if !day.IsValid() {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	year := a.now().Year()
	return year, fmt.Sprintf("%d:%s", year, day.Code()), nil
}

// Format 拼接登记号，序号不足三位补零
func Format(prefix string, year int, day ags.SeminarDay, n int64) string {
	return fmt.Sprintf("%s-%d-%s-%03d", prefix, year, day.Code(), n)
}
