package gitcode

import (
	"context"
	"net/http"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

type releaseService struct {
	p *Provider
}

func (s *releaseService) Create(ctx context.Context, path api.RepoPath, tag string, opts *api.ReleaseCreateOptions) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	name, body, target := opts.Resolve(tag)
	req := s.p.request(http.MethodPost, repoSegments(path, "releases")...).WithJSON(map[string]string{
		"tag_name":         tag,
		"name":             name,
		"body":             body,
		"target_commitish": target,
	})
	return s.send(ctx, req)
}

func (s *releaseService) Info(ctx context.Context, path api.RepoPath, tag string) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	if tag == "" {
		return s.send(ctx, s.p.get(repoSegments(path, "releases", "latest")...))
	}
	return s.send(ctx, s.p.get(repoSegments(path, "releases", "tags", tag)...))
}

func (s *releaseService) List(ctx context.Context, path api.RepoPath) ([]api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "releases")...))
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("发布列表", body, toRelease)
}

// Update GitCode 直接以标签名定位发布
func (s *releaseService) Update(ctx context.Context, path api.RepoPath, tag string, opts api.ReleaseUpdateOptions) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	name, body := opts.Resolve(tag)
	req := s.p.request(http.MethodPatch, repoSegments(path, "releases", tag)...).
		WithJSON(map[string]string{"name": name, "body": body})
	return s.send(ctx, req)
}

func (s *releaseService) send(ctx context.Context, req *transport.Request) (*api.ReleaseInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("发布信息", body, toRelease)
}
