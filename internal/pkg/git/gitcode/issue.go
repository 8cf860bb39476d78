package gitcode

import (
	"context"
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

type issueService struct {
	p *Provider
}

func (s *issueService) Create(ctx context.Context, path api.RepoPath, title, body string, opts *api.IssueCreateOptions) (*api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	payload := map[string]string{"title": title, "body": body}
	if opts != nil {
		if len(opts.Labels) > 0 {
			payload["labels"] = strings.Join(opts.Labels, ",")
		}
		if len(opts.Assignees) > 0 {
			payload["assignees"] = strings.Join(opts.Assignees, ",")
		}
	}
	return s.send(ctx, s.p.request(http.MethodPost, repoSegments(path, "issues")...).WithJSON(payload))
}

func (s *issueService) Info(ctx context.Context, path api.RepoPath, number string) (*api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	return s.send(ctx, s.p.get(repoSegments(path, "issues", number)...))
}

func (s *issueService) List(ctx context.Context, path api.RepoPath, opts *api.IssueListOptions) ([]api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	req := s.p.get(repoSegments(path, "issues")...)
	opts.Apply(req.Query, "assignee", "creator")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("Issue列表", body, toIssue)
}

func (s *issueService) Update(ctx context.Context, path api.RepoPath, number string, opts *api.IssueUpdateOptions) (*api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	payload := map[string]string{}
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
	return s.send(ctx, s.p.request(http.MethodPatch, repoSegments(path, "issues", number)...).WithJSON(payload))
}

func (s *issueService) send(ctx context.Context, req *transport.Request) (*api.IssueInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("Issue", body, toIssue)
}
