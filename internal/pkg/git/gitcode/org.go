package gitcode

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type orgService struct {
	p *Provider
}

// Info 组织信息来自网页端接口, 缺少头像时从群组信息补全
func (s *orgService) Info(ctx context.Context, org string) (*api.OrgInfo, error) {
	body, err := s.p.Send(ctx, s.p.web("orgs", org).WithBearer(s.p.Token()))
	if err != nil {
		return nil, err
	}
	r, err := jsonx.Parse("组织信息", body)
	if err != nil {
		return nil, err
	}
	if r.StrOr("avatar_url", "") == "" {
		avatar, err := s.AvatarURL(ctx, org)
		if err != nil {
			return nil, err
		}
		if body, err = jsonx.Set(body, "avatar_url", avatar); err != nil {
			return nil, err
		}
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

// AvatarURL 读取群组信息中的头像
func (s *orgService) AvatarURL(ctx context.Context, org string) (string, error) {
	return s.p.Avatars.Resolve(ctx, "gitcode:org:"+org, func(ctx context.Context) (string, error) {
		body, err := s.p.Send(ctx, s.p.web("api", "v2", "groups", org))
		if err != nil {
			return "", err
		}
		r, err := jsonx.Parse("群组信息", body)
		if err != nil {
			return "", err
		}
		avatar := r.NonEmpty("avatar")
		return avatar, r.Err()
	})
}
