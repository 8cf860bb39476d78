package cnb

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type orgService struct {
	p *Provider
}

func (s *orgService) Info(ctx context.Context, org string) (*api.OrgInfo, error) {
	body, err := s.p.Send(ctx, s.p.get(org))
	if err != nil {
		return nil, err
	}
	if body, err = jsonx.Set(body, "avatar_url", s.p.orgAvatar(org)); err != nil {
		return nil, err
	}
	return jsonx.Decode("组织信息", body, toOrg)
}

func (s *orgService) RepoList(ctx context.Context, org string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	req := s.p.get(org, "-", "repos")
	opts.Apply(req.Query)
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("组织仓库列表", body, toRepo)
}

// AvatarURL 组织头像按模板拼接
func (s *orgService) AvatarURL(_ context.Context, org string) (string, error) {
	return s.p.orgAvatar(org), nil
}
