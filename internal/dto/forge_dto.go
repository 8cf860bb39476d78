package dto

import (
	"strings"
	"time"

	"forgekit/internal/pkg/git/api"
)

// ListQuery 分页查询参数, 不传时使用平台默认值
type ListQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1"`
}

// Options 转换为分页参数, 上限由平台客户端限制
func (q *ListQuery) Options() *api.ListOptions {
	return &api.ListOptions{Page: q.Page, PerPage: q.PerPage}
}

// RepoURI 仓库路由参数
type RepoURI struct {
	Owner string `uri:"owner" binding:"required"`
	Repo  string `uri:"repo" binding:"required"`
}

// Path 仓库路径
func (u *RepoURI) Path() api.RepoPath {
	return api.RepoPath{Owner: u.Owner, Name: u.Repo}
}

// CommitListQuery 提交列表查询参数, 时间为 RFC3339
type CommitListQuery struct {
	ListQuery
	Sha    string     `form:"sha"`
	Author string     `form:"author"`
	Since  *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until  *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Options 转换为提交过滤参数
func (q *CommitListQuery) Options() *api.CommitListOptions {
	return &api.CommitListOptions{
		ListOptions: *q.ListQuery.Options(),
		Sha:         q.Sha,
		Author:      q.Author,
		Since:       q.Since,
		Until:       q.Until,
	}
}

// IssueListQuery Issue 列表查询参数, labels 以逗号分隔
type IssueListQuery struct {
	ListQuery
	State    string `form:"state" binding:"omitempty,oneof=open closed"`
	Labels   string `form:"labels"`
	Assignee string `form:"assignee"`
	Creator  string `form:"creator"`
}

// Options 转换为 Issue 过滤参数
func (q *IssueListQuery) Options() *api.IssueListOptions {
	opts := &api.IssueListOptions{
		ListOptions: *q.ListQuery.Options(),
		Assignee:    q.Assignee,
		Creator:     q.Creator,
	}
	if state, ok := api.ParseState(q.State); ok {
		opts.State = state
	}
	for _, l := range strings.Split(q.Labels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			opts.Labels = append(opts.Labels, l)
		}
	}
	return opts
}

// AvatarResponse 头像地址
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
