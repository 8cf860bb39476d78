package gitee

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type orgService struct {
	p *Provider
}

func (s *orgService) Info(ctx context.Context, org string) (*api.OrgInfo, error) {
	body, err := s.p.Send(ctx, s.p.get("orgs", org))
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("组织信息", body, toOrg)
}

func (s *orgService) RepoList(ctx context.Context, org string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	req := s.p.get("orgs", org, "repos")
	opts.Apply(req.Query)
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("组织仓库列表", body, toRepo)
}

// AvatarURL 从组织主页抓取头像
func (s *orgService) AvatarURL(ctx context.Context, org string) (string, error) {
	return s.p.Avatars.Resolve(ctx, "gitee:org:"+org, func(ctx context.Context) (string, error) {
		body, err := s.p.Send(ctx, s.p.page(org))
		if err != nil {
			return "", err
		}
		return parseOrgAvatar(body)
	})
}
