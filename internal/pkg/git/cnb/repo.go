package cnb

import (
	"context"
	"net/http"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	pkgErrors "forgekit/pkg/errors"
)

var accessLevel = map[api.CollaboratorPermission]string{
	api.PermissionAdmin: "Master",
	api.PermissionPush:  "Developer",
	api.PermissionPull:  "Reporter",
}

type repoService struct {
	p *Provider
}

// Info 仓库接口不含默认分支, 另行查询后写入
func (s *repoService) Info(ctx context.Context, path api.RepoPath) (*api.RepoInfo, error) {
	body, err := s.p.Send(ctx, s.p.get("repos", path.Owner, path.Name))
	if err != nil {
		return nil, err
	}
	r, err := jsonx.Parse("仓库信息", body)
	if err != nil {
		return nil, err
	}
	public := strings.EqualFold(r.StrOr("visibility_level", ""), "public")

	branch, err := s.defaultBranch(ctx, path, public)
	if err != nil {
		return nil, err
	}
	if body, err = jsonx.Set(body, "default_branch", branch); err != nil {
		return nil, err
	}
	return jsonx.Decode("仓库信息", body, toRepo)
}

// defaultBranch 公开仓库从网页端分支列表读取 is_head, 私有仓库走 git/head 接口
func (s *repoService) defaultBranch(ctx context.Context, path api.RepoPath, public bool) (string, error) {
	if !public {
		body, err := s.p.Send(ctx, s.p.get("repos", path.Owner, path.Name, "-", "git", "head"))
		if err != nil {
			return "", err
		}
		r, err := jsonx.Parse("默认分支", body)
		if err != nil {
			return "", err
		}
		name := r.NonEmpty("name")
		return name, r.Err()
	}

	req := s.p.web(repoSegments(path, "git", "refs")...).
		WithQuery("page", "1").
		WithQuery("page_size", "5000").
		WithQuery("prefix", "branch")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return "", err
	}
	refs, err := jsonx.ParseArray("分支列表", body)
	if err != nil {
		return "", err
	}
	for _, ref := range refs {
		if ref.Bool("is_head") {
			name := strings.TrimPrefix(ref.NonEmpty("ref"), "refs/heads/")
			return name, ref.Err()
		}
	}
	return "", pkgErrors.Malformed("分支列表: 没有 is_head 分支")
}

// AddCollaborator 以外部协作者身份加入仓库成员, 结果按请求参数合成
func (s *repoService) AddCollaborator(ctx context.Context, path api.RepoPath, user string, perm api.CollaboratorPermission) (*api.CollaboratorResult, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	level, ok := accessLevel[perm]
	if !ok {
		level = "Guest"
	}
	req := s.p.request(http.MethodPost, repoSegments(path, "members", user)...).WithJSON(map[string]any{
		"access_level":            level,
		"is_outside_collaborator": true,
	})
	if _, err := s.p.Send(ctx, req); err != nil {
		return nil, err
	}
	return &api.CollaboratorResult{Login: user, AvatarURL: s.p.userAvatar(user)}, nil
}
