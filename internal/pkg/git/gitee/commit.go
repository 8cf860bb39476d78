package gitee

import (
	"context"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type commitService struct {
	p *Provider
}

func (s *commitService) Info(ctx context.Context, path api.RepoPath, sha string) (*api.CommitInfo, error) {
	if sha == "" {
		sha = "HEAD"
	}
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "commits", sha)...))
	if err != nil {
		return nil, err
	}
	if body, err = s.spliceAvatars(body); err != nil {
		return nil, err
	}
	return jsonx.Decode("提交信息", body, toCommit)
}

func (s *commitService) List(ctx context.Context, path api.RepoPath, opts *api.CommitListOptions) ([]api.CommitInfo, error) {
	req := s.p.get(repoSegments(path, "commits")...)
	opts.Apply(req.Query)
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := jsonx.ParseArray("提交列表", body)
	if err != nil {
		return nil, err
	}
	commits := make([]api.CommitInfo, 0, len(items))
	for _, item := range items {
		raw, err := s.spliceAvatars([]byte(item.Raw().Raw))
		if err != nil {
			return nil, err
		}
		c, err := jsonx.Decode("提交列表", raw, toCommit)
		if err != nil {
			return nil, err
		}
		commits = append(commits, *c)
	}
	return commits, nil
}

// spliceAvatars 顶层账号缺失时使用平台默认头像
func (s *commitService) spliceAvatars(raw []byte) ([]byte, error) {
	r, err := jsonx.Parse("提交信息", raw)
	if err != nil {
		return nil, err
	}
	for _, role := range []string{"author", "committer"} {
		avatar := r.StrOr(role+".avatar_url", s.p.baseURL+"/assets/no_portrait.png")
		if raw, err = jsonx.Set(raw, "commit."+role+".avatar_url", avatar); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
