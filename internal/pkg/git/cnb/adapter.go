package cnb

import (
	"strings"

	"github.com/samber/lo"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

var fileStatus = map[string]api.FileStatus{
	"add":    api.FileAdded,
	"modify": api.FileModified,
	"delete": api.FileDeleted,
	"rename": api.FileRenamed,
	"copy":   api.FileCopied,
	"change": api.FileChanged,
}

// toUser avatar_url 由调用方按模板写入
func toUser(r *jsonx.Reader) (*api.UserInfo, error) {
	u := &api.UserInfo{
		Login:           r.NonEmpty("username"),
		Name:            r.OptStr("nickname"),
		Email:           r.OptStr("email"),
		AvatarURL:       r.NonEmpty("avatar_url"),
		Followers:       r.Uint("follower_count"),
		Following:       r.Uint("follow_count"),
		PublicRepoCount: r.Uint("repo_count"),
	}
	return u, r.Err()
}

func toOrg(r *jsonx.Reader) (*api.OrgInfo, error) {
	o := &api.OrgInfo{
		Login:       r.NonEmpty("login"),
		Name:        r.OptStr("name"),
		Email:       r.OptStr("email"),
		AvatarURL:   r.NonEmpty("avatar_url"),
		Description: r.OptStr("description"),
		FollowCount: r.Uint("followers"),
	}
	return o, r.Err()
}

// toRepo owner/name 缺失时从 path 推出, 推送时间取 updated_at
func toRepo(r *jsonx.Reader) (*api.RepoInfo, error) {
	fullPath := r.StrOr("path", "")
	var owner string
	if o := r.OptObject("owner"); o != nil {
		owner = o.StrOr("login", "")
	}
	if owner == "" {
		owner, _, _ = strings.Cut(fullPath, "/")
	}
	name := r.StrOr("name", "")
	if name == "" && fullPath != "" {
		name = fullPath[strings.LastIndex(fullPath, "/")+1:]
	}
	if owner == "" || name == "" {
		r.Fail("缺少 owner/name")
	}
	fullName := r.StrOr("full_name", fullPath)
	if fullName == "" {
		fullName = owner + "/" + name
	}

	repo := &api.RepoInfo{
		Owner:         owner,
		Name:          name,
		FullName:      fullName,
		Description:   r.OptStr("description"),
		Visibility:    api.VisibilityOf(strings.EqualFold(r.StrOr("visibility_level", ""), "public")),
		Fork:          r.StrOr("forked_from_repo.path", "") != "",
		ForkCount:     r.Uint("fork_count"),
		Language:      r.OptStr("language"),
		StarCount:     r.Uint("star_count"),
		DefaultBranch: r.StrOr("default_branch", ""),
		CreatedAt:     r.Time("created_at"),
		UpdatedAt:     r.Time("updated_at"),
	}
	repo.PushedAt = repo.UpdatedAt
	return repo, r.Err()
}

// toFile changes 由增删行数相加得到
func toFile(f *jsonx.Reader, _ int) api.FileInfo {
	name := f.StrOr("name", "")
	if name == "" {
		name = f.StrOr("filename", "")
	}
	additions, deletions := f.Uint("additions"), f.Uint("deletions")
	return api.FileInfo{
		FileName:  name,
		Status:    api.FileStatusFrom(fileStatus, f.StrOr("status", "")),
		Additions: additions,
		Deletions: deletions,
		Changes:   additions + deletions,
	}
}

// toCommit avatar_url 由调用方按模板写入
func toCommit(r *jsonx.Reader) (*api.CommitInfo, error) {
	data := r.Object("commit")
	c := &api.CommitInfo{
		Sha: r.NonEmpty("sha"),
		Commit: api.CommitData{
			Author:    toCommitUser(data.Object("author")),
			Committer: toCommitUser(data.Object("committer")),
			Message:   data.Str("message"),
		},
		Files: lo.Map(r.Array("files"), toFile),
	}
	if stats := r.OptObject("stats"); stats != nil {
		c.Stats = api.StatsInfo{
			Total:     stats.Uint("total"),
			Additions: stats.Uint("additions"),
			Deletions: stats.Uint("deletions"),
		}
	}
	if c.Files == nil {
		c.Files = []api.FileInfo{}
	}
	return c, r.Err()
}

func toCommitUser(r *jsonx.Reader) api.CommitUserInfo {
	return api.CommitUserInfo{
		Name:      r.Str("name"),
		Email:     r.OptStr("email"),
		AvatarURL: r.NonEmpty("avatar_url"),
		Date:      r.Time("date"),
	}
}

// toIssue user 由创建者补全阶段写入
func toIssue(r *jsonx.Reader) (*api.IssueInfo, error) {
	user := r.Object("user")
	issue := &api.IssueInfo{
		Number: r.NumberString("number"),
		State:  api.StateClosed,
		Title:  r.Str("title"),
		Body:   r.OptStr("body"),
		Labels: lo.Map(r.Array("labels"), func(l *jsonx.Reader, _ int) api.LabelInfo {
			return api.LabelInfo{Name: l.Str("name"), Color: l.Str("color")}
		}),
		User: api.IssueUserInfo{
			Name:      user.NonEmpty("name"),
			Email:     user.OptStr("email"),
			AvatarURL: user.NonEmpty("avatar_url"),
		},
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
		ClosedAt:  r.OptTime("closed_at"),
	}
	if r.StrOr("state", "") == "open" {
		issue.State = api.StateOpened
	}
	if issue.Labels == nil {
		issue.Labels = []api.LabelInfo{}
	}
	return issue, r.Err()
}

// toRelease 作者登录名取 username, 头像由调用方写入
func toRelease(r *jsonx.Reader) (*api.ReleaseInfo, error) {
	tag := r.NonEmpty("tag_name")
	author := r.Object("author")
	login := author.StrOr("username", "")
	if login == "" {
		login = author.NonEmpty("login")
	}
	rel := &api.ReleaseInfo{
		TagName:         tag,
		TargetCommitish: r.StrOr("target_commitish", ""),
		Prerelease:      r.Bool("prerelease"),
		Name:            r.StrOr("name", tag),
		Body:            r.OptStr("body"),
		Author: api.AuthorInfo{
			Login:     login,
			AvatarURL: author.NonEmpty("avatar_url"),
		},
		CreatedAt: r.Time("created_at"),
		Assets: lo.Map(r.Array("assets"), func(a *jsonx.Reader, _ int) api.AssetsInfo {
			url := a.StrOr("browser_download_url", "")
			if url == "" {
				url = a.NonEmpty("path")
			}
			return api.AssetsInfo{Name: a.Str("name"), URL: url}
		}),
	}
	if rel.Assets == nil {
		rel.Assets = []api.AssetsInfo{}
	}
	return rel, r.Err()
}

// toContribution 日期 (YYYYMMDD) 到 {score} 的映射
func toContribution(r *jsonx.Reader) (*api.ContributionResult, error) {
	keys, values := r.Entries()
	days := make([]api.ContributionData, 0, len(keys))
	for i, key := range keys {
		date, err := api.ParseDay(api.DateCompact, key)
		if err != nil {
			r.Fail("日期格式错误: %s", key)
			break
		}
		days = append(days, api.ContributionData{Date: date, Count: uint32(values[i].Uint("score"))})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return api.NewContributionResult(days), nil
}
