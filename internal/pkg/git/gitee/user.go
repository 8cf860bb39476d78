package gitee

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type userService struct {
	p *Provider
}

// Info 获取用户信息, name 为空时获取当前用户
func (s *userService) Info(ctx context.Context, name string) (*api.UserInfo, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return nil, err
	}
	req := s.p.get("user")
	if name != "" {
		req = s.p.get("users", name)
	}
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("用户信息", body, toUser)
}

// AvatarURL 通过网页端用户详情接口获取头像
func (s *userService) AvatarURL(ctx context.Context, name string) (string, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return "", err
	}
	if name == "" {
		info, err := s.Info(ctx, "")
		if err != nil {
			return "", err
		}
		return info.AvatarURL, nil
	}
	return s.p.Avatars.Resolve(ctx, "gitee:user:"+name, func(ctx context.Context) (string, error) {
		req := s.p.page("users", name, "detail").WithHeader("Referer", s.p.baseURL)
		body, err := s.p.Send(ctx, req)
		if err != nil {
			return "", err
		}
		r, err := jsonx.Parse("用户详情", body)
		if err != nil {
			return "", err
		}
		avatar := r.Object("data").NonEmpty("avatar_url")
		return avatar, r.Err()
	})
}

// Contribution 抓取个人主页的贡献日历
func (s *userService) Contribution(ctx context.Context, name string) (*api.ContributionResult, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return nil, err
	}
	if name == "" {
		info, err := s.Info(ctx, "")
		if err != nil {
			return nil, err
		}
		name = info.Login
	}
	req := s.p.page(name).
		WithHeader("X-Requested-With", "XMLHttpRequest").
		WithHeader("Accept", "application/javascript")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseContribution(body)
}

// RepoList 获取用户仓库列表
func (s *userService) RepoList(ctx context.Context, name string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return nil, err
	}
	req := s.p.get("user", "repos").WithQuery("sort", "updated")
	if name != "" {
		req = s.p.get("users", name, "repos").WithQuery("sort", "pushed")
	}
	opts.Apply(req.Query)

	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("仓库列表", body, toRepo)
}
