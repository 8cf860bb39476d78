package cnb

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
	items, err := jsonx.ParseArray("发布列表", body)
	if err != nil {
		return nil, err
	}
	releases := make([]api.ReleaseInfo, 0, len(items))
	for _, item := range items {
		rel, err := s.decode([]byte(item.Raw().Raw))
		if err != nil {
			return nil, err
		}
		releases = append(releases, *rel)
	}
	return releases, nil
}

// Update 先按标签查出发布 id 再修改
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
	id := r.NumberString("id")
	if err := r.Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *releaseService) send(ctx context.Context, req *transport.Request) (*api.ReleaseInfo, error) {
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.decode(body)
}

// decode 发布作者头像按模板写入
func (s *releaseService) decode(raw []byte) (*api.ReleaseInfo, error) {
	r, err := jsonx.Parse("发布信息", raw)
	if err != nil {
		return nil, err
	}
	login := r.StrOr("author.username", r.StrOr("author.login", ""))
	if login != "" && !r.Exists("author.avatar_url") {
		if raw, err = jsonx.Set(raw, "author.avatar_url", s.p.userAvatar(login)); err != nil {
			return nil, err
		}
	}
	return jsonx.Decode("发布信息", raw, toRelease)
}
