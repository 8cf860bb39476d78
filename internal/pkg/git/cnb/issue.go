package cnb

import (
	"context"
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/enrich"
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
	payload := map[string]string{"title": title}
	if body != "" {
		payload["body"] = body
	}
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

// List 每个 Issue 的创建者并发查询, 结果保持接口返回顺序
func (s *issueService) List(ctx context.Context, path api.RepoPath, opts *api.IssueListOptions) ([]api.IssueInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	req := s.p.get(repoSegments(path, "issues")...)
	opts.Apply(req.Query, "assignees", "authors")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := jsonx.ParseArray("Issue列表", body)
	if err != nil {
		return nil, err
	}
	return enrich.Ordered(ctx, items, enrich.DefaultConcurrency, func(ctx context.Context, item *jsonx.Reader) (api.IssueInfo, error) {
		raw, err := s.spliceCreator(ctx, []byte(item.Raw().Raw))
		if err != nil {
			return api.IssueInfo{}, err
		}
		issue, err := jsonx.Decode("Issue列表", raw, toIssue)
		if err != nil {
			return api.IssueInfo{}, err
		}
		return *issue, nil
	})
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
	return s.send(ctx, s.p.request(http.MethodPut, repoSegments(path, "issues", number)...).WithJSON(payload))
}

func (s *issueService) send(ctx context.Context, req *transport.Request) (*api.IssueInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if body, err = s.spliceCreator(ctx, body); err != nil {
		return nil, err
	}
	return jsonx.Decode("Issue", body, toIssue)
}

// spliceCreator Issue 只返回 author.username, 从网页端用户资料补全 user
func (s *issueService) spliceCreator(ctx context.Context, raw []byte) ([]byte, error) {
	r, err := jsonx.Parse("Issue", raw)
	if err != nil {
		return nil, err
	}
	username := r.NonEmpty("author.username")
	if err := r.Err(); err != nil {
		return nil, err
	}

	body, err := s.p.Send(ctx, s.p.web("users", username))
	if err != nil {
		return nil, err
	}
	profile, err := jsonx.Parse("用户资料", body)
	if err != nil {
		return nil, err
	}
	user := map[string]any{
		"name":       profile.StrOr("username", username),
		"avatar_url": s.p.userAvatar(username),
	}
	if email := profile.OptStr("email"); email != nil {
		user["email"] = *email
	}
	return jsonx.Set(raw, "user", user)
}
