package github

import (
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/transport"
)

// 默认地址
const (
	DefaultAPIURL  = "https://api.github.com"
	DefaultBaseURL = "https://github.com"

	avatarTemplate = "https://avatars.githubusercontent.com/u/%s?v=4"
)

// Provider GitHub平台提供者
type Provider struct {
	*base.Base
	apiURL  string
	baseURL string
}

var _ api.Client = (*Provider)(nil)

// NewProvider 创建GitHub提供者
func NewProvider(config api.ProviderConfig, opts base.Options) (*Provider, error) {
	// GitHub可以省略地址，使用默认值
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	b, err := base.New(config.Token, transport.StatusPolicy{
		MessageKey:  "message",
		RateLimited: transport.HeaderExhausted("x-ratelimit-remaining"),
	}, opts)
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
	return api.PlatformGitHub
}

func (p *Provider) User() api.UserService       { return &userService{p} }
func (p *Provider) Org() api.OrgService         { return &orgService{p} }
func (p *Provider) Repo() api.RepoService       { return &repoService{p} }
func (p *Provider) Commit() api.CommitService   { return &commitService{p} }
func (p *Provider) Issue() api.IssueService     { return &issueService{p} }
func (p *Provider) Release() api.ReleaseService { return &releaseService{p} }

// request REST 接口请求, 已设置令牌时附带认证头
func (p *Provider) request(method string, segments ...string) *transport.Request {
	return transport.NewRequest(method, p.apiURL, segments...).
		WithHeader("Accept", "application/vnd.github+json").
		WithHeader("X-GitHub-Api-Version", "2022-11-28").
		WithBearer(p.Token())
}

func (p *Provider) get(segments ...string) *transport.Request {
	return p.request(http.MethodGet, segments...)
}

// page 网页请求, 不带令牌
func (p *Provider) page(segments ...string) *transport.Request {
	return transport.Get(p.baseURL, segments...)
}

func repoSegments(path api.RepoPath, rest ...string) []string {
	return append([]string{"repos", path.Owner, path.Name}, rest...)
}
