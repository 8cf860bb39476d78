package cnb

import (
	"context"
	"strconv"
	"time"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type userService struct {
	p *Provider
}

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

	r, err := jsonx.Parse("用户信息", body)
	if err != nil {
		return nil, err
	}
	login := r.NonEmpty("username")
	if err := r.Err(); err != nil {
		return nil, err
	}
	if body, err = jsonx.Set(body, "avatar_url", s.p.userAvatar(login)); err != nil {
		return nil, err
	}
	return jsonx.Decode("用户信息", body, toUser)
}

// AvatarURL 指定用户名时直接按模板拼接
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
	return s.p.userAvatar(name), nil
}

// Contribution 读取当年的贡献日历
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
	req := s.p.web("users", name, "calendar").WithQuery("year", strconv.Itoa(time.Now().Year()))
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("贡献日历", body, toContribution)
}

func (s *userService) RepoList(ctx context.Context, name string, opts *api.ListOptions) ([]api.RepoInfo, error) {
	if _, err := s.p.RequireTokenFor(name); err != nil {
		return nil, err
	}
	req := s.p.get("user", "repos")
	if name != "" {
		req = s.p.get("users", name, "repos").WithQuery("role", "owner")
	}
	req.WithQuery("desc", "true").WithQuery("order_by", "last_updated_at")
	opts.Apply(req.Query)

	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList("仓库列表", body, toRepo)
}
