package ags

import (
	"context"
	"fmt"
	"sync"
)

// Store 当前客户的缴费记录缓存，与后端保持一致。
// 所有变更都先请求后端，成功后才修改本地列表。
type Store struct {
	api      API
	clientID string

	mu       sync.RWMutex
	payments []Payment
}

// NewStore 创建缓存
func NewStore(api API, clientID string) *Store {
	return &Store{
		api:      api,
		clientID: clientID,
	}
}

// ClientID 当前客户
func (s *Store) ClientID() string {
	return s.clientID
}

// Load 从后端全量拉取，失败时保留原列表
func (s *Store) Load(ctx context.Context) error {
	payments, err := s.api.ListPayments(ctx, s.clientID)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	s.mu.Lock()
	s.payments = append([]Payment(nil), payments...)
	s.mu.Unlock()
	return nil
}

// All 全部记录的副本
func (s *Store) All() []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Payment(nil), s.payments...)
}

// Active 有效记录
func (s *Store) Active() []Payment {
	return s.filter(StatusActive)
}

// Cancelled 已作废记录
func (s *Store) Cancelled() []Payment {
	return s.filter(StatusCancelled)
}

func (s *Store) filter(status Status) []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// Get 按 ID 查找
func (s *Store) Get(id uint64) (Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.ID == id {
			return p, true
		}
	}
	return Payment{}, false
}

// Create 新增成功后插入列表头部
func (s *Store) Create(ctx context.Context, payload Payload) (Payment, error) {
	created, err := s.api.CreatePayment(ctx, payload)
	if err != nil {
		return Payment{}, fmt.Errorf("create payment: %w", err)
	}

	s.mu.Lock()
	s.payments = append([]Payment{created}, s.payments...)
	s.mu.Unlock()
	return created, nil
}

// Update 更新成功后按 ID 原位替换，本地没有该记录时不做处理
func (s *Store) Update(ctx context.Context, id uint64, payload Payload) (Payment, error) {
	updated, err := s.api.UpdatePayment(ctx, id, payload)
	if err != nil {
		return Payment{}, fmt.Errorf("update payment %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove 删除成功后移出列表
func (s *Store) Remove(ctx context.Context, id uint64, actingUserID string) error {
	if _, err := s.api.DeletePayment(ctx, id, actingUserID); err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments = append(s.payments[:i:i], s.payments[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}
