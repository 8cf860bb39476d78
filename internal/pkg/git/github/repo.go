package github

import (
	"bytes"
	"context"
	"net/http"

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

// Info 获取仓库信息
func (s *repoService) Info(ctx context.Context, path api.RepoPath) (*api.RepoInfo, error) {
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path)...))
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("仓库信息", body, toRepo)
}

// AddCollaborator 邀请协作者, 未指定权限时为 pull
// 用户已是协作者时返回 204 无响应体, 此时以被添加用户本身作为结果
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

	if len(bytes.TrimSpace(body)) == 0 {
		avatar, err := s.p.User().AvatarURL(ctx, user)
		if err != nil {
			return nil, err
		}
		return &api.CollaboratorResult{Login: user, AvatarURL: avatar}, nil
	}
	return jsonx.Decode("协作者", body, toCollaborator)
}
