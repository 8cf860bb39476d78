package gitee

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

// releaseService 发布接口全部需要令牌
type releaseService struct {
	p *Provider
}

func (s *releaseService) Create(ctx context.Context, path api.RepoPath, tag string, opts *api.ReleaseCreateOptions) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	name, body, target := opts.Resolve(tag)
	req := s.p.releaseRequest(http.MethodPost, path).WithForm(url.Values{
		"tag_name":         {tag},
		"name":             {name},
		"body":             {body},
		"target_commitish": {target},
	})
	return s.send(ctx, req)
}

func (s *releaseService) Info(ctx context.Context, path api.RepoPath, tag string) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	if tag == "" {
		return s.send(ctx, s.p.releaseRequest(http.MethodGet, path, "latest"))
	}
	return s.send(ctx, s.p.releaseRequest(http.MethodGet, path, "tags", tag))
}

func (s *releaseService) List(ctx context.Context, path api.RepoPath) ([]api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	body, err := s.p.Send(ctx, s.p.releaseRequest(http.MethodGet, path))
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("发布列表", body, toRelease)
}

// Update 先按标签查询发布 id
func (s *releaseService) Update(ctx context.Context, path api.RepoPath, tag string, opts api.ReleaseUpdateOptions) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	body, err := s.p.Send(ctx, s.p.releaseRequest(http.MethodGet, path, "tags", tag))
	if err != nil {
		return nil, err
	}
	r, err := jsonx.Parse("发布信息", body)
	if err != nil {
		return nil, err
	}
	id := r.ReqUint("id")
	if err := r.Err(); err != nil {
		return nil, err
	}

	name, content := opts.Resolve(tag)
	req := s.p.releaseRequest(http.MethodPatch, path, strconv.FormatUint(id, 10)).WithForm(url.Values{
		"tag_name": {tag},
		"name":     {name},
		"body":     {content},
	})
	return s.send(ctx, req)
}

func (s *releaseService) send(ctx context.Context, req *transport.Request) (*api.ReleaseInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("发布信息", body, toRelease)
}
