package gitee

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

type issueService struct {
	p *Provider
}

// Create Gitee 的创建接口挂在 owner 下, 仓库名放在表单 repo 字段
func (s *issueService) Create(ctx context.Context, path api.RepoPath, title, body string, opts *api.IssueCreateOptions) (*api.IssueInfo, error) {
	token, err := s.p.RequireToken()
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"access_token": {token},
		"repo":         {path.Name},
		"title":        {title},
		"body":         {body},
	}
	if opts != nil {
		if len(opts.Labels) > 0 {
			form.Set("labels", strings.Join(opts.Labels, ","))
		}
		// 只支持单个负责人
		if len(opts.Assignees) > 0 {
			form.Set("assignee", opts.Assignees[0])
		}
	}
	req := transport.NewRequest(http.MethodPost, s.p.apiURL, "repos", path.Owner, "issues").WithForm(form)
	return s.send(ctx, req)
}

func (s *issueService) Info(ctx context.Context, path api.RepoPath, number string) (*api.IssueInfo, error) {
	return s.send(ctx, s.p.get(repoSegments(path, "issues", number)...))
}

func (s *issueService) List(ctx context.Context, path api.RepoPath, opts *api.IssueListOptions) ([]api.IssueInfo, error) {
	req := s.p.get(repoSegments(path, "issues")...)
	opts.Apply(req.Query, "assignee", "creator")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("Issue列表", body, toIssue)
}

// Update 与创建相同, 地址不含仓库名
func (s *issueService) Update(ctx context.Context, path api.RepoPath, number string, opts *api.IssueUpdateOptions) (*api.IssueInfo, error) {
	token, err := s.p.RequireToken()
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"access_token": {token},
		"repo":         {path.Name},
	}
	if opts != nil {
		if opts.Title != nil {
			form.Set("title", *opts.Title)
		}
		if opts.Body != nil {
			form.Set("body", *opts.Body)
		}
		if opts.State != nil {
			form.Set("state", opts.State.Param())
		}
	}
	req := transport.NewRequest(http.MethodPatch, s.p.apiURL, "repos", path.Owner, "issues", number).WithForm(form)
	return s.send(ctx, req)
}

func (s *issueService) send(ctx context.Context, req *transport.Request) (*api.IssueInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("Issue", body, toIssue)
}
