package gitcode

import (
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/transport"
)

// 默认地址
const (
	DefaultAPIURL    = "https://api.gitcode.com/api/v5"
	DefaultBaseURL   = "https://gitcode.com"
	DefaultWebAPIURL = "https://web-api.gitcode.com"

	// DefaultAvatar 用户未设置头像时网页端使用的图片
	DefaultAvatar = "https://cdn-static.gitcode.com/doc/avatar-5.png"
)

// Provider GitCode平台提供者
//
// REST 接口 (api/v5) 全部需要令牌, 头像、贡献、组织信息走网页端接口.
type Provider struct {
	*base.Base
	apiURL    string
	baseURL   string
	webAPIURL string
}

var _ api.Client = (*Provider)(nil)

// NewProvider 创建GitCode提供者
func NewProvider(config api.ProviderConfig, opts base.Options) (*Provider, error) {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.WebAPIURL == "" {
		config.WebAPIURL = DefaultWebAPIURL
	}

	b, err := base.New(config.Token, transport.StatusPolicy{MessageKey: "message"}, opts)
	if err != nil {
		return nil, err
	}
	return &Provider{
		Base:      b,
		apiURL:    strings.TrimRight(config.APIURL, "/"),
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		webAPIURL: strings.TrimRight(config.WebAPIURL, "/"),
	}, nil
}

// Platform 获取平台类型
func (p *Provider) Platform() api.PlatformType {
	return api.PlatformGitCode
}

func (p *Provider) User() api.UserService       { return &userService{p} }
func (p *Provider) Org() api.OrgService         { return &orgService{p} }
func (p *Provider) Repo() api.RepoService       { return &repoService{p} }
func (p *Provider) Commit() api.CommitService   { return &commitService{p} }
func (p *Provider) Issue() api.IssueService     { return &issueService{p} }
func (p *Provider) Release() api.ReleaseService { return &releaseService{p} }

// request REST 请求, 调用方需先通过 RequireToken 检查
func (p *Provider) request(method string, segments ...string) *transport.Request {
	return transport.NewRequest(method, p.apiURL, segments...).
		WithHeader("Accept", "application/json").
		WithBearer(p.Token())
}

func (p *Provider) get(segments ...string) *transport.Request {
	return p.request(http.MethodGet, segments...)
}

// web 网页端接口, 需要 Referer
func (p *Provider) web(segments ...string) *transport.Request {
	return transport.Get(p.webAPIURL, segments...).
		WithHeader("Accept", "application/json").
		WithHeader("Referer", p.baseURL)
}

func repoSegments(path api.RepoPath, rest ...string) []string {
	return append([]string{"repos", path.Owner, path.Name}, rest...)
}
