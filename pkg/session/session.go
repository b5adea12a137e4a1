// Package session 提供当前操作人：内存中的登录态优先，其次读取本地保存的会话文件
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"namogange/pkg/ags"
)

// ErrNoSession 没有可用的登录态
var ErrNoSession = errors.New("session: no user logged in")

// Provider 与 ags.Session 相同，单独声明便于本包内组合
type Provider interface {
	Current(ctx context.Context) (ags.User, error)
}

// Live 进程内的登录态
type Live struct {
	mu   sync.RWMutex
	user *ags.User
}

// NewLive 创建空的登录态
func NewLive() *Live {
	return &Live{}
}

// SetUser 登录
func (l *Live) SetUser(user ags.User) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = &user
}

// Clear 退出登录
func (l *Live) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = nil
}

// Current 当前用户
func (l *Live) Current(context.Context) (ags.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.user == nil || l.user.ID == "" {
		return ags.User{}, ErrNoSession
	}
	return *l.user, nil
}

// Persisted 保存在本地 JSON 文件中的会话
type Persisted struct {
	path string
}

// NewPersisted 指定会话文件路径
func NewPersisted(path string) *Persisted {
	return &Persisted{path: path}
}

// Current 读取会话文件，文件不存在视为未登录
func (p *Persisted) Current(context.Context) (ags.User, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return ags.User{}, ErrNoSession
	}
	if err != nil {
		return ags.User{}, fmt.Errorf("session: read %s: %w", p.path, err)
	}

	var user ags.User
	if err := json.Unmarshal(data, &user); err != nil {
		return ags.User{}, fmt.Errorf("session: decode %s: %w", p.path, err)
	}
	if user.ID == "" {
		return ags.User{}, ErrNoSession
	}
	return user, nil
}

// Save 写入会话文件
func (p *Persisted) Save(user ags.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return os.WriteFile(p.path, data, 0o600)
}

// Remove 删除会话文件
func (p *Persisted) Remove() error {
	err := os.Remove(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Chain 依次尝试各个 Provider，返回第一个可用的用户
type Chain []Provider

// Current 全部失败时返回 ErrNoSession，附带各 Provider 的错误
func (c Chain) Current(ctx context.Context) (ags.User, error) {
	errs := []error{ErrNoSession}
	for _, p := range c {
		user, err := p.Current(ctx)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, ErrNoSession) {
			errs = append(errs, err)
		}
	}
	return ags.User{}, errors.Join(errs...)
}
