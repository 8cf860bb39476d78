package gitcode

import (
	"bytes"
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

var permissionParam = map[api.CollaboratorPermission]string{
	api.PermissionAdmin: "admin",
	api.PermissionPush:  "push",
	api.PermissionPull:  "pull",
}

type repoService struct {
	p *Provider
}

func (s *repoService) Info(ctx context.Context, path api.RepoPath) (*api.RepoInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path)...))
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("仓库信息", body, toRepo)
}

// AddCollaborator 响应不含头像, 从用户资料补全
func (s *repoService) AddCollaborator(ctx context.Context, path api.RepoPath, user string, perm api.CollaboratorPermission) (*api.CollaboratorResult, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	permission, ok := permissionParam[perm]
	if !ok {
		permission = "pull"
	}
	req := s.p.request(http.MethodPut, repoSegments(path, "collaborators", user)...).
		WithJSON(map[string]string{"permission": permission})
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	// 已是协作者时响应体为空
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte(`{}`)
	}
	if !gjson.GetBytes(body, "login").Exists() {
		if body, err = jsonx.Set(body, "login", user); err != nil {
			return nil, err
		}
	}
	avatar, err := (&userService{s.p}).commitAvatar(ctx, user)
	if err != nil {
		return nil, err
	}
	if body, err = jsonx.Set(body, "avatar_url", avatar); err != nil {
		return nil, err
	}
	return jsonx.Decode("协作者", body, toCollaborator)
}
