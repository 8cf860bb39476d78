package gitee

import (
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

func (s *repoService) Info(ctx context.Context, path api.RepoPath) (*api.RepoInfo, error) {
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path)...))
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("仓库信息", body, toRepo)
}

// AddCollaborator 令牌放在请求体中
func (s *repoService) AddCollaborator(ctx context.Context, path api.RepoPath, user string, perm api.CollaboratorPermission) (*api.CollaboratorResult, error) {
	token, err := s.p.RequireToken()
	if err != nil {
		return nil, err
	}
	permission, ok := permissionParam[perm]
	if !ok {
		permission = "pull"
	}
	req := s.p.request(http.MethodPut, repoSegments(path, "collaborators", user)...).
		WithJSON(map[string]string{"access_token": token, "permission": permission})
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("协作者", body, toCollaborator)
}
