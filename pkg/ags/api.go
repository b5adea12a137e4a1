package ags

import "context"

// API 缴费记录的后端接口，由 pkg/agsapi 实现
type API interface {
	ListPayments(ctx context.Context, clientID string) ([]Payment, error)
	CreatePayment(ctx context.Context, payload Payload) (Payment, error)
	UpdatePayment(ctx context.Context, id uint64, payload Payload) (Payment, error)
	DeletePayment(ctx context.Context, id uint64, actingUserID string) (uint64, error)
}

// Allocator 登记号预览
type Allocator interface {
	PreviewRegistrationNo(ctx context.Context, day SeminarDay) (string, error)
}

// BankLister 银行列表
type BankLister interface {
	ListBanks(ctx context.Context) ([]Bank, error)
}

// Session 当前登录用户
type Session interface {
	Current(ctx context.Context) (User, error)
}

// ActivityLogger 操作日志，调用方不等待结果，实现方不得阻塞主流程
type ActivityLogger interface {
	LogActivity(ctx context.Context, event ActivityEvent)
}

// Notifier 用户可见的提示
type Notifier interface {
	Notify(kind NotifyKind, message string)
}

// Confirmer 危险操作前的二次确认
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// NotifierFunc 允许直接使用函数作为 Notifier
type NotifierFunc func(kind NotifyKind, message string)

func (f NotifierFunc) Notify(kind NotifyKind, message string) {
	f(kind, message)
}

// ConfirmerFunc 允许直接使用函数作为 Confirmer
type ConfirmerFunc func(ctx context.Context, message string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

type nopActivityLogger struct{}

func (nopActivityLogger) LogActivity(context.Context, ActivityEvent) {}
