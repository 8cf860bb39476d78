package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	pkgErrors "forgekit/pkg/errors"
)

// DefaultUserAgent 默认 User-Agent
const DefaultUserAgent = "forgekit"

// Doer 发送请求并返回原始响应, 非 2xx 不视为错误
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// ProxySetter 支持切换代理的 Doer
type ProxySetter interface {
	SetProxy(proxy string) error
}

// Options 传输层配置
type Options struct {
	Timeout   time.Duration
	Proxy     string
	UserAgent string
	RateLimit float64 // 每秒请求数, 0 表示不限制
	Burst     int
	Logger    *zap.Logger
}

// Client 所有平台共享的 HTTP 客户端
//
// 读取方在每次请求时获取当前 *http.Client 快照, SetProxy 在写锁下整体替换.
type Client struct {
	mu      sync.RWMutex
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New 创建传输层客户端
func New(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Client{opts: opts, logger: opts.Logger}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	hc, err := c.build(opts.Proxy)
	if err != nil {
		return nil, err
	}
	c.http = hc
	return c, nil
}

func (c *Client) build(proxy string) (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil || u.Host == "" {
			if err == nil {
				err = fmt.Errorf("缺少主机")
			}
			return nil, pkgErrors.URLConstruction(proxy, err)
		}
		tr.Proxy = http.ProxyURL(u)
	} else {
		tr.Proxy = nil
	}
	return &http.Client{Timeout: c.opts.Timeout, Transport: tr}, nil
}

// SetProxy 替换底层客户端, 空字符串表示直连
func (c *Client) SetProxy(proxy string) error {
	hc, err := c.build(proxy)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := c.http
	c.http = hc
	c.opts.Proxy = proxy
	c.mu.Unlock()

	if tr, ok := old.Transport.(*http.Transport); ok {
		tr.CloseIdleConnections()
	}
	c.logger.Info("切换代理", zap.String("proxy", proxy))
	return nil
}

// Proxy 当前代理
func (c *Client) Proxy() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.Proxy
}

func (c *Client) snapshot() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.http
}

// Do 发送请求
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Err(); err != nil {
		return nil, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, pkgErrors.Transport(err)
		}
	}

	httpReq, err := c.encode(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.snapshot().Do(httpReq)
	if err != nil {
		c.logger.Warn("请求失败", zap.String("method", req.Method), zap.String("url", req.redacted()), zap.Error(err))
		return nil, pkgErrors.Transport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgErrors.Transport(err)
	}

	c.logger.Debug(fmt.Sprintf("%s %s %d", req.Method, req.redacted(), resp.StatusCode),
		zap.Duration("cost", time.Since(start)),
		zap.Int("size", len(body)),
	)

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) encode(ctx context.Context, req *Request) (*http.Request, error) {
	u := *req.URL
	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q[k] = v
		}
		u.RawQuery = q.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "编码请求体失败", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, pkgErrors.URLConstruction(u.String(), err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}
	return httpReq, nil
}
