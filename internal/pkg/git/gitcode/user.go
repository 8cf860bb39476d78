package gitcode

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
	pkgErrors "forgekit/pkg/errors"
)

type userService struct {
	p *Provider
}

// Info 用户信息接口不返回仓库数, 从网页端项目统计补全
func (s *userService) Info(ctx context.Context, name string) (*api.UserInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
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

	r, err := jsonx.Parse("用户信息", body)
	if err != nil {
		return nil, err
	}
	login := name
	if login == "" {
		login = r.StrOr("login", r.StrOr("username", ""))
	}
	if login == "" {
		return nil, pkgErrors.Malformed("用户信息: 缺少 login/username")
	}
	total, err := s.repoCount(ctx, login)
	if err != nil {
		return nil, err
	}
	if body, err = jsonx.Set(body, "repo_count", total); err != nil {
		return nil, err
	}
	return jsonx.Decode("用户信息", body, toUser)
}

func (s *userService) repoCount(ctx context.Context, login string) (uint64, error) {
	req := s.p.web("api", "v2", "projects", "profile", login).WithQuery("repo_query_type", "created")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return 0, err
	}
	r, err := jsonx.Parse("项目统计", body)
	if err != nil {
		return 0, err
	}
	return r.Uint("total"), nil
}

// AvatarURL 读取网页端用户资料中的头像
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
	avatar, err := s.profileAvatar(ctx, name)
	if err != nil {
		return "", err
	}
	if avatar == "" {
		return "", pkgErrors.Malformed("用户资料: 字段 avatar 缺失或不是非空字符串")
	}
	return avatar, nil
}

// profileAvatar 用户资料中的头像, 未设置时为空串
func (s *userService) profileAvatar(ctx context.Context, name string) (string, error) {
	return s.p.Avatars.Resolve(ctx, "gitcode:user:"+name, func(ctx context.Context) (string, error) {
		req := s.p.web("uc", "api", "v1", "user", "setting", "profile").WithQuery("username", name)
		body, err := s.p.Send(ctx, req)
		if err != nil {
			return "", err
		}
		r, err := jsonx.Parse("用户资料", body)
		if err != nil {
			return "", err
		}
		return r.StrOr("avatar", ""), nil
	})
}

// commitAvatar 提交作者头像, 查不到时使用默认头像
func (s *userService) commitAvatar(ctx context.Context, name string) (string, error) {
	avatar, err := s.profileAvatar(ctx, name)
	if err != nil {
		return "", err
	}
	if avatar == "" {
		return DefaultAvatar, nil
	}
	return avatar, nil
}

// Contribution 网页端贡献接口返回日期到次数的映射
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
	req := s.p.web("uc", "api", "v1", "events", name, "contributions").WithQuery("username", name)
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("贡献日历", body, toContribution)
}

func (s *userService) RepoList(ctx context.Context, name string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
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
