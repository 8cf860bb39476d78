package cnb

import (
	"fmt"
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/transport"
)

// 默认地址
const (
	DefaultAPIURL  = "https://api.cnb.cool"
	DefaultBaseURL = "https://cnb.cool"
)

// webAccept 网页端接口要求的 Accept
const webAccept = "application/vnd.cnb.web+json"

// Provider CNB平台提供者
//
// CNB 的错误信息在 errmsg 字段, 头像地址按模板拼接不需要请求.
type Provider struct {
	*base.Base
	apiURL  string
	baseURL string
}

var _ api.Client = (*Provider)(nil)

// NewProvider 创建CNB提供者
func NewProvider(config api.ProviderConfig, opts base.Options) (*Provider, error) {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	b, err := base.New(config.Token, transport.StatusPolicy{MessageKey: "errmsg"}, opts)
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
	return api.PlatformCnb
}

func (p *Provider) User() api.UserService       { return &userService{p} }
func (p *Provider) Org() api.OrgService         { return &orgService{p} }
func (p *Provider) Repo() api.RepoService       { return &repoService{p} }
func (p *Provider) Commit() api.CommitService   { return &commitService{p} }
func (p *Provider) Issue() api.IssueService     { return &issueService{p} }
func (p *Provider) Release() api.ReleaseService { return &releaseService{p} }

func (p *Provider) request(method string, segments ...string) *transport.Request {
	return transport.NewRequest(method, p.apiURL, segments...).
		WithHeader("Accept", "application/json").
		WithBearer(p.Token())
}

func (p *Provider) get(segments ...string) *transport.Request {
	return p.request(http.MethodGet, segments...)
}

// web 网页端接口, 不带令牌
func (p *Provider) web(segments ...string) *transport.Request {
	return transport.Get(p.baseURL, segments...).WithHeader("Accept", webAccept)
}

// userAvatar 用户头像模板
func (p *Provider) userAvatar(name string) string {
	return fmt.Sprintf("%s/users/%s/avatar/l", p.baseURL, name)
}

// orgAvatar 组织头像模板
func (p *Provider) orgAvatar(org string) string {
	return fmt.Sprintf("%s/%s/-/logos/l", p.baseURL, org)
}

// repoSegments CNB 仓库子资源位于 /{owner}/{repo}/-/ 下
func repoSegments(path api.RepoPath, rest ...string) []string {
	return append([]string{path.Owner, path.Name, "-"}, rest...)
}
