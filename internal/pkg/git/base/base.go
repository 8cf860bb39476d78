// Package base 是各平台客户端共用的令牌存储与请求发送逻辑.
package base

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"forgekit/internal/pkg/git/enrich"
	"forgekit/internal/pkg/git/transport"
	pkgErrors "forgekit/pkg/errors"
)

// Options 平台客户端依赖
type Options struct {
	Doer    transport.Doer
	Logger  *zap.Logger
	Avatars *enrich.AvatarCache
}

// Base 令牌在读写锁下保存, 每次请求读取一次
type Base struct {
	mu     sync.RWMutex
	token  string
	doer   transport.Doer
	policy transport.StatusPolicy
	logger *zap.Logger

	Avatars *enrich.AvatarCache
}

// New 创建 Base, 未提供 Doer 时使用默认传输层
func New(token string, policy transport.StatusPolicy, opts Options) (*Base, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	doer := opts.Doer
	if doer == nil {
		c, err := transport.New(transport.Options{Logger: logger})
		if err != nil {
			return nil, err
		}
		doer = c
	}
	return &Base{
		token:   strings.TrimSpace(token),
		doer:    doer,
		policy:  policy,
		logger:  logger,
		Avatars: opts.Avatars,
	}, nil
}

// Logger 平台日志
func (b *Base) Logger() *zap.Logger {
	return b.logger
}

// Token 当前令牌, 未设置为空串
func (b *Base) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// SetToken 设置令牌
func (b *Base) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgErrors.ErrCredentialMissing
	}
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
	return nil
}

// RequireToken 需要认证的操作在发起请求前调用
func (b *Base) RequireToken() (string, error) {
	token := b.Token()
	if token == "" {
		return "", pkgErrors.ErrCredentialMissing
	}
	return token, nil
}

// RequireTokenFor name 为空即当前用户时必须有令牌
func (b *Base) RequireTokenFor(name string) (string, error) {
	if name == "" {
		return b.RequireToken()
	}
	return b.Token(), nil
}

// SetProxy 传输层支持时切换代理
func (b *Base) SetProxy(proxy string) error {
	ps, ok := b.doer.(transport.ProxySetter)
	if !ok {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "当前传输层不支持代理设置")
	}
	return ps.SetProxy(proxy)
}

// Send 发送请求并按平台规则检查状态码, 返回响应体
func (b *Base) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	resp, err := b.Exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Exchange 与 Send 相同, 但返回完整响应
func (b *Base) Exchange(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	resp, err := b.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := b.policy.Classify(resp); err != nil {
		b.logger.Warn("平台返回错误", zap.Int("status", resp.Status), zap.Error(err))
		return nil, err
	}
	return resp, nil
}
