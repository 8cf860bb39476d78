package github

import (
	"context"
	"net/http"
	"strconv"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	"forgekit/internal/pkg/git/transport"
)

type releaseService struct {
	p *Provider
}

// Create 创建发布
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

// Info tag 为空时获取最新发布
func (s *releaseService) Info(ctx context.Context, path api.RepoPath, tag string) (*api.ReleaseInfo, error) {
	if tag == "" {
		return s.send(ctx, s.p.get(repoSegments(path, "releases", "latest")...))
	}
	return s.send(ctx, s.p.get(repoSegments(path, "releases", "tags", tag)...))
}

// List 获取发布列表
func (s *releaseService) List(ctx context.Context, path api.RepoPath) ([]api.ReleaseInfo, error) {
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "releases")...))
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("发布列表", body, toRelease)
}

// Update 先按标签查询发布 id 再更新
func (s *releaseService) Update(ctx context.Context, path api.RepoPath, tag string, opts api.ReleaseUpdateOptions) (*api.ReleaseInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	id, err := s.releaseID(ctx, path, tag)
	if err != nil {
		return nil, err
	}
	name, body := opts.Resolve(tag)
	req := s.p.request(http.MethodPatch, repoSegments(path, "releases", id)...).
		WithJSON(map[string]string{"name": name, "body": body})
	return s.send(ctx, req)
}

func (s *releaseService) releaseID(ctx context.Context, path api.RepoPath, tag string) (string, error) {
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "releases", "tags", tag)...))
	if err != nil {
		return "", err
	}
	r, err := jsonx.Parse("发布信息", body)
	if err != nil {
		return "", err
	}
	id := r.ReqUint("id")
	if err := r.Err(); err != nil {
		return "", err
	}
	return strconv.FormatUint(id, 10), nil
}

func (s *releaseService) send(ctx context.Context, req *transport.Request) (*api.ReleaseInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("发布信息", body, toRelease)
}
