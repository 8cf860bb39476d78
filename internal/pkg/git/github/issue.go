package github

import (
	"context"
	"net/http"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

type issueService struct {
	p *Provider
}

// Create 创建 Issue
func (s *issueService) Create(ctx context.Context, path api.RepoPath, title, body string, opts *api.IssueCreateOptions) (*api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	payload := map[string]any{"title": title, "body": body}
	if opts != nil {
		if len(opts.Labels) > 0 {
			payload["labels"] = opts.Labels
		}
		if len(opts.Assignees) > 0 {
			payload["assignees"] = opts.Assignees
		}
	}
	req := s.p.request(http.MethodPost, repoSegments(path, "issues")...).WithJSON(payload)
	return s.send(ctx, req)
}

// Info 获取 Issue
func (s *issueService) Info(ctx context.Context, path api.RepoPath, number string) (*api.IssueInfo, error) {
	return s.send(ctx, s.p.get(repoSegments(path, "issues", number)...))
}

// List 获取 Issue 列表
func (s *issueService) List(ctx context.Context, path api.RepoPath, opts *api.IssueListOptions) ([]api.IssueInfo, error) {
	req := s.p.get(repoSegments(path, "issues")...)
	opts.Apply(req.Query, "assignee", "creator")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("Issue列表", body, toIssue)
}

// Update 更新 Issue, 只提交设置了的字段
func (s *issueService) Update(ctx context.Context, path api.RepoPath, number string, opts *api.IssueUpdateOptions) (*api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if opts != nil {
		if opts.Title != nil {
			payload["title"] = *opts.Title
		}
		if opts.Body != nil {
			payload["body"] = *opts.Body
		}
		if opts.State != nil {
			payload["state"] = opts.State.Param()
		}
	}
	req := s.p.request(http.MethodPatch, repoSegments(path, "issues", number)...).WithJSON(payload)
	return s.send(ctx, req)
}

func (s *issueService) send(ctx context.Context, req *transport.Request) (*api.IssueInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("Issue", body, toIssue)
}
