package github

import (
	"context"
	"net/url"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

type commitService struct {
	p *Provider
}

// Info 获取单个提交, sha 为空时取 HEAD
func (s *commitService) Info(ctx context.Context, path api.RepoPath, sha string) (*api.CommitInfo, error) {
	if sha == "" {
		sha = "HEAD"
	}
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "commits", sha)...))
	if err != nil {
		return nil, err
	}
	body, err = s.spliceAvatars(body)
	if err != nil {
		return nil, err
	}
	return jsonx.Decode("提交信息", body, toCommit)
}

// List 获取提交列表
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

// spliceAvatars 将顶层账号头像写入 commit.author/commit.committer
// 提交邮箱未关联账号时顶层账号为 null, 使用按名称生成的 identicon
func (s *commitService) spliceAvatars(raw []byte) ([]byte, error) {
	r, err := jsonx.Parse("提交信息", raw)
	if err != nil {
		return nil, err
	}
	for _, role := range []string{"author", "committer"} {
		avatar := r.StrOr(role+".avatar_url", "")
		if avatar == "" {
			avatar = s.p.baseURL + "/identicons/" + url.PathEscape(r.StrOr("commit."+role+".name", "")) + ".png"
		}
		if raw, err = jsonx.Set(raw, "commit."+role+".avatar_url", avatar); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
