package gitee

import (
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/transport"
)

// 默认地址
const (
	DefaultAPIURL  = "https://gitee.com/api/v5"
	DefaultBaseURL = "https://gitee.com"
)

// Provider Gitee平台提供者
//
// 令牌以 access_token 参数传递, 发布接口使用 token 参数.
type Provider struct {
	*base.Base
	apiURL  string
	baseURL string
}

var _ api.Client = (*Provider)(nil)

// NewProvider 创建Gitee提供者
func NewProvider(config api.ProviderConfig, opts base.Options) (*Provider, error) {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	b, err := base.New(config.Token, transport.StatusPolicy{MessageKey: "message"}, opts)
	if err != nil {
		return nil, err
	}
	return &Provider{
		Base:    b,
		apiURL:  strings.TrimRight(config.APIURL, "/"),
		baseURL: strings.TrimRight(config.BaseURL, "/"),
	}, nil
}

// Platform 获取平台类型
func (p *Provider) Platform() api.PlatformType {
	return api.PlatformGitee
}

func (p *Provider) User() api.UserService       { return &userService{p} }
func (p *Provider) Org() api.OrgService         { return &orgService{p} }
func (p *Provider) Repo() api.RepoService       { return &repoService{p} }
func (p *Provider) Commit() api.CommitService   { return &commitService{p} }
func (p *Provider) Issue() api.IssueService     { return &issueService{p} }
func (p *Provider) Release() api.ReleaseService { return &releaseService{p} }

// request 已设置令牌时附带 access_token 参数
func (p *Provider) request(method string, segments ...string) *transport.Request {
	req := transport.NewRequest(method, p.apiURL, segments...)
	if token := p.Token(); token != "" {
		req.WithQuery("access_token", token)
	}
	return req
}

func (p *Provider) get(segments ...string) *transport.Request {
	return p.request(http.MethodGet, segments...)
}

// releaseRequest 发布接口使用 token 参数
func (p *Provider) releaseRequest(method string, path api.RepoPath, rest ...string) *transport.Request {
	req := transport.NewRequest(method, p.apiURL, repoSegments(path, append([]string{"releases"}, rest...)...)...)
	if token := p.Token(); token != "" {
		req.WithQuery("token", token)
	}
	return req
}

func (p *Provider) page(segments ...string) *transport.Request {
	return transport.Get(p.baseURL, segments...)
}

func repoSegments(path api.RepoPath, rest ...string) []string {
	return append([]string{"repos", path.Owner, path.Name}, rest...)
}
