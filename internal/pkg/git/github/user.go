package github

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

// AvatarURL 从个人主页读取用户 id 后拼接头像地址
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
	return s.p.Avatars.Resolve(ctx, "github:user:"+name, func(ctx context.Context) (string, error) {
		body, err := s.p.Send(ctx, s.p.page(name).WithHeader("Accept", "text/html"))
		if err != nil {
			return "", err
		}
		id, err := parseUserID(body)
		if err != nil {
			return "", err
		}
		return avatarFromID(id), nil
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
		WithQuery("action", "show").
		WithQuery("controller", "profiles").
		WithQuery("tab", "contributions").
		WithQuery("user_id", name).
		WithHeader("X-Requested-With", "XMLHttpRequest").
		WithHeader("Accept", "text/html")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseContribution(body)
}

// RepoList 当前用户只列出自己拥有的仓库
func (s *userService) RepoList(ctx context.Context, name string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return nil, err
	}
	req := s.p.get("user", "repos").WithQuery("type", "owner")
	if name != "" {
		req = s.p.get("users", name, "repos")
	}
	req.WithQuery("sort", "pushed")
	opts.Apply(req.Query)

	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("仓库列表", body, toRepo)
}
