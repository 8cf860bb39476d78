package gitcode

import (
	"context"

	"github.com/tidwall/gjson"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/enrich"
	"forgekit/internal/pkg/git/jsonx"
)

type commitService struct {
	p *Provider
}

// Info 补全作者/提交者头像, 并通过与父提交比较得到变更文件
// 根提交没有父提交, 变更文件为空
func (s *commitService) Info(ctx context.Context, path api.RepoPath, sha string) (*api.CommitInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
	if sha == "" {
		sha = "HEAD"
	}
	body, err := s.p.Send(ctx, s.p.get(repoSegments(path, "commits", sha)...))
	if err != nil {
		return nil, err
	}
	if body, err = s.spliceAvatars(ctx, body); err != nil {
		return nil, err
	}

	r, err := jsonx.Parse("提交信息", body)
	if err != nil {
		return nil, err
	}
	head := r.StrOr("sha", sha)
	files := []byte(`[]`)
	if parent := r.StrOr("parents.0.sha", ""); parent != "" {
		if files, err = s.compareFiles(ctx, path, parent, head); err != nil {
			return nil, err
		}
	}
	if body, err = jsonx.SetRaw(body, "files", files); err != nil {
		return nil, err
	}
	return jsonx.Decode("提交信息", body, toCommit)
}

// List 每个提交的头像并发补全, 结果保持接口返回顺序
func (s *commitService) List(ctx context.Context, path api.RepoPath, opts *api.CommitListOptions) ([]api.CommitInfo, error) {
	if _, err := s.p.RequireToken(); err != nil {
		return nil, err
	}
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
	return enrich.Ordered(ctx, items, enrich.DefaultConcurrency, func(ctx context.Context, item *jsonx.Reader) (api.CommitInfo, error) {
		raw, err := s.spliceAvatars(ctx, []byte(item.Raw().Raw))
		if err != nil {
			return api.CommitInfo{}, err
		}
		c, err := jsonx.Decode("提交列表", raw, toCommit)
		if err != nil {
			return api.CommitInfo{}, err
		}
		return *c, nil
	})
}

// spliceAvatars 按提交中的作者名并发查询头像
func (s *commitService) spliceAvatars(ctx context.Context, raw []byte) ([]byte, error) {
	r, err := jsonx.Parse("提交信息", raw)
	if err != nil {
		return nil, err
	}
	authorName := r.Str("commit.author.name")
	committerName := r.Str("commit.committer.name")
	if err := r.Err(); err != nil {
		return nil, err
	}

	users := &userService{s.p}
	author, committer, err := enrich.Pair(ctx,
		func(ctx context.Context) (string, error) { return users.commitAvatar(ctx, authorName) },
		func(ctx context.Context) (string, error) { return users.commitAvatar(ctx, committerName) },
	)
	if err != nil {
		return nil, err
	}
	if raw, err = jsonx.Set(raw, "commit.author.avatar_url", author); err != nil {
		return nil, err
	}
	return jsonx.Set(raw, "commit.committer.avatar_url", committer)
}

// compareFiles 返回比较结果中的 files 原始数组
func (s *commitService) compareFiles(ctx context.Context, path api.RepoPath, base, head string) ([]byte, error) {
	req := s.p.get(repoSegments(path, "compare", base+"..."+head)...).WithQuery("straight", "true")
	body, err := s.p.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	files := gjson.GetBytes(body, "files")
	if !files.IsArray() {
		return []byte(`[]`), nil
	}
	return []byte(files.Raw), nil
}
