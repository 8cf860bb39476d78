package gitcode

import (
	"strings"

	"github.com/samber/lo"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/jsonx"
)

var fileStatus = map[string]api.FileStatus{
	"added":    api.FileAdded,
	"modified": api.FileModified,
	"removed":  api.FileDeleted,
	"deleted":  api.FileDeleted,
	"renamed":  api.FileRenamed,
	"copied":   api.FileCopied,
	"changed":  api.FileChanged,
}

// toUser repo_count 由用户信息补全阶段写入
func toUser(r *jsonx.Reader) (*api.UserInfo, error) {
	login := r.StrOr("login", "")
	if login == "" {
		login = r.NonEmpty("username")
	}
	u := &api.UserInfo{
		Login:           login,
		Name:            r.OptStr("name"),
		Email:           r.OptStr("email"),
		AvatarURL:       r.NonEmpty("avatar_url"),
		Followers:       r.Uint("followers"),
		Following:       r.Uint("following"),
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

// toRepo name 取 path, 可见性优先读 public 标记
func toRepo(r *jsonx.Reader) (*api.RepoInfo, error) {
	owner := r.Object("owner").NonEmpty("login")
	name := r.NonEmpty("path")
	// public 优先, 其次 visibility_level, 最后 visibility
	var public bool
	switch {
	case r.Exists("public"):
		public = r.Bool("public")
	case r.Exists("visibility_level"):
		public = strings.EqualFold(r.StrOr("visibility_level", ""), "public")
	default:
		public = strings.EqualFold(r.StrOr("visibility", ""), "public")
	}
	repo := &api.RepoInfo{
		Owner:         owner,
		Name:          name,
		FullName:      owner + "/" + name,
		Description:   r.OptStr("description"),
		Visibility:    api.VisibilityOf(public),
		Fork:          r.Bool("fork"),
		ForkCount:     r.Uint("forks_count"),
		Language:      r.OptStr("language"),
		StarCount:     r.Uint("stargazers_count"),
		DefaultBranch: r.StrOr("default_branch", ""),
		CreatedAt:     r.Time("created_at"),
		UpdatedAt:     r.Time("updated_at"),
	}
	if r.Exists("pushed_at") {
		repo.PushedAt = r.Time("pushed_at")
	} else {
		repo.PushedAt = repo.UpdatedAt
	}
	return repo, r.Err()
}

func toCollaborator(r *jsonx.Reader) (*api.CollaboratorResult, error) {
	c := &api.CollaboratorResult{
		Login:     r.NonEmpty("login"),
		AvatarURL: r.NonEmpty("avatar_url"),
	}
	return c, r.Err()
}

func toFile(f *jsonx.Reader, _ int) api.FileInfo {
	name := f.StrOr("filename", "")
	if name == "" {
		name = f.StrOr("new_path", "")
	}
	return api.FileInfo{
		FileName:  name,
		Status:    api.FileStatusFrom(fileStatus, f.StrOr("status", "")),
		Additions: f.Uint("additions"),
		Deletions: f.Uint("deletions"),
		Changes:   f.Uint("changes"),
	}
}

// toCommit avatar_url 与 files 由补全阶段写入
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

func toIssue(r *jsonx.Reader) (*api.IssueInfo, error) {
	user := r.Object("user")
	userName := user.StrOr("name", "")
	if userName == "" {
		userName = user.NonEmpty("login")
	}
	issue := &api.IssueInfo{
		Number: r.NumberString("number"),
		State:  api.StateClosed,
		Title:  r.Str("title"),
		Body:   r.OptStr("body"),
		Labels: lo.Map(r.Array("labels"), func(l *jsonx.Reader, _ int) api.LabelInfo {
			return api.LabelInfo{Name: l.Str("name"), Color: l.Str("color")}
		}),
		User: api.IssueUserInfo{
			Name:      userName,
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

func toRelease(r *jsonx.Reader) (*api.ReleaseInfo, error) {
	tag := r.NonEmpty("tag_name")
	author := r.Object("author")
	rel := &api.ReleaseInfo{
		TagName:         tag,
		TargetCommitish: r.StrOr("target_commitish", ""),
		Prerelease:      r.Bool("prerelease"),
		Name:            r.StrOr("name", tag),
		Body:            r.OptStr("body"),
		Author: api.AuthorInfo{
			Login:     author.NonEmpty("login"),
			AvatarURL: author.NonEmpty("avatar_url"),
		},
		CreatedAt: r.Time("created_at"),
		Assets: lo.Map(r.Array("assets"), func(a *jsonx.Reader, _ int) api.AssetsInfo {
			return api.AssetsInfo{Name: a.Str("name"), URL: a.NonEmpty("browser_download_url")}
		}),
	}
	if rel.Assets == nil {
		rel.Assets = []api.AssetsInfo{}
	}
	return rel, r.Err()
}

// toContribution 日期 (YYYY-MM-DD) 到次数的映射
func toContribution(r *jsonx.Reader) (*api.ContributionResult, error) {
	keys, values := r.Entries()
	days := make([]api.ContributionData, 0, len(keys))
	for i, key := range keys {
		date, err := api.ParseDay(api.DateDashed, key)
		if err != nil {
			r.Fail("日期格式错误: %s", key)
			break
		}
		days = append(days, api.ContributionData{Date: date, Count: uint32(values[i].ReqUint(""))})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return api.NewContributionResult(days), nil
}
