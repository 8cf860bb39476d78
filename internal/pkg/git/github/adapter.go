package github

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
	"renamed":  api.FileRenamed,
	"copied":   api.FileCopied,
	"changed":  api.FileChanged,
}

func toUser(r *jsonx.Reader) (*api.UserInfo, error) {
	u := &api.UserInfo{
		Login:           r.NonEmpty("login"),
		Name:            r.OptStr("name"),
		Email:           r.OptStr("email"),
		AvatarURL:       r.NonEmpty("avatar_url"),
		Followers:       r.Uint("followers"),
		Following:       r.Uint("following"),
		PublicRepoCount: r.Uint("public_repos"),
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

func toRepo(r *jsonx.Reader) (*api.RepoInfo, error) {
	owner := r.Object("owner").NonEmpty("login")
	name := r.NonEmpty("name")
	repo := &api.RepoInfo{
		Owner:         owner,
		Name:          name,
		FullName:      owner + "/" + name,
		Description:   r.OptStr("description"),
		Visibility:    api.VisibilityOf(strings.EqualFold(r.StrOr("visibility", ""), "public")),
		Fork:          r.Bool("fork"),
		ForkCount:     r.Uint("forks_count"),
		Language:      r.OptStr("language"),
		StarCount:     r.Uint("stargazers_count"),
		DefaultBranch: r.Str("default_branch"),
		CreatedAt:     r.Time("created_at"),
		UpdatedAt:     r.Time("updated_at"),
	}
	// 空仓库没有 pushed_at
	if r.Exists("pushed_at") {
		repo.PushedAt = r.Time("pushed_at")
	} else {
		repo.PushedAt = repo.UpdatedAt
	}
	return repo, r.Err()
}

func toCollaborator(r *jsonx.Reader) (*api.CollaboratorResult, error) {
	inviter := r.Object("inviter")
	c := &api.CollaboratorResult{
		Login:     inviter.NonEmpty("login"),
		AvatarURL: inviter.NonEmpty("avatar_url"),
	}
	return c, r.Err()
}

// toCommit 提交详情与列表项共用, 列表项没有 stats/files
func toCommit(r *jsonx.Reader) (*api.CommitInfo, error) {
	data := r.Object("commit")
	c := &api.CommitInfo{
		Sha: r.NonEmpty("sha"),
		Commit: api.CommitData{
			Author:    toCommitUser(data.Object("author")),
			Committer: toCommitUser(data.Object("committer")),
			Message:   data.Str("message"),
		},
		Files: lo.Map(r.Array("files"), func(f *jsonx.Reader, _ int) api.FileInfo {
			return api.FileInfo{
				FileName:  f.StrOr("filename", ""),
				Status:    api.FileStatusFrom(fileStatus, f.StrOr("status", "")),
				Additions: f.Uint("additions"),
				Deletions: f.Uint("deletions"),
				Changes:   f.Uint("changes"),
			}
		}),
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
	issue := &api.IssueInfo{
		Number: r.NumberString("number"),
		State:  api.StateClosed,
		Title:  r.Str("title"),
		Body:   r.OptStr("body"),
		Labels: lo.Map(r.Array("labels"), func(l *jsonx.Reader, _ int) api.LabelInfo {
			return api.LabelInfo{Name: l.Str("name"), Color: "#" + l.Str("color")}
		}),
		User: api.IssueUserInfo{
			Name:      user.NonEmpty("login"),
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
		TargetCommitish: r.Str("target_commitish"),
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
