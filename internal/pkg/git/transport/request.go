package transport

import (
	"net/http"
	"net/url"

	pkgErrors "forgekit/pkg/errors"
)

// Request 平台请求描述, 构造过程中的地址错误延迟到发送时返回
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Query  url.Values
	Bearer string
	JSON   any
	Form   url.Values

	err error
}

// NewRequest 以 base 为前缀拼接路径段
func NewRequest(method, base string, segments ...string) *Request {
	r := &Request{
		Method: method,
		Header: make(http.Header),
		Query:  make(url.Values),
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = pkgErrors.New(pkgErrors.CodeURLConstruction, "缺少协议或主机")
		}
		r.err = pkgErrors.URLConstruction(base, err)
		return r
	}
	if len(segments) > 0 {
		u = u.JoinPath(segments...)
	}
	r.URL = u
	return r
}

// Get 构造 GET 请求
func Get(base string, segments ...string) *Request {
	return NewRequest(http.MethodGet, base, segments...)
}

// Err 构造阶段的错误
func (r *Request) Err() error {
	return r.err
}

// WithQuery 设置查询参数
func (r *Request) WithQuery(key, value string) *Request {
	r.Query.Set(key, value)
	return r
}

// WithHeader 设置请求头
func (r *Request) WithHeader(key, value string) *Request {
	r.Header.Set(key, value)
	return r
}

// WithBearer 设置 Bearer 令牌, 空令牌忽略
func (r *Request) WithBearer(token string) *Request {
	r.Bearer = token
	return r
}

// WithJSON 设置 JSON 请求体
func (r *Request) WithJSON(body any) *Request {
	r.JSON = body
	return r
}

// WithForm 设置表单请求体
func (r *Request) WithForm(form url.Values) *Request {
	r.Form = form
	return r
}

// redacted 日志中使用的地址, 去掉令牌参数
func (r *Request) redacted() string {
	if r.URL == nil {
		return ""
	}
	u := *r.URL
	q := url.Values{}
	for k, v := range r.Query {
		if k == "access_token" || k == "token" {
			q.Set(k, "***")
			continue
		}
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Response 平台响应
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK 2xx 响应
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
