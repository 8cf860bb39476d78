package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// 分页默认值
const (
	DefaultPerPage = 30
	MaxPerPage     = 100
	DefaultPage    = 1
)

// ListOptions 分页参数, 零值使用默认值
type ListOptions struct {
	PerPage int
	Page    int
}

// Normalize 返回应用默认值并限制上限后的分页参数
func (o *ListOptions) Normalize() (perPage, page int) {
	perPage, page = DefaultPerPage, DefaultPage
	if o == nil {
		return
	}
	if o.PerPage > 0 {
		perPage = min(o.PerPage, MaxPerPage)
	}
	if o.Page > 0 {
		page = o.Page
	}
	return
}

// Apply 将分页参数写入查询
func (o *ListOptions) Apply(q url.Values) {
	perPage, page := o.Normalize()
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
}

// CommitListOptions 提交列表过滤
type CommitListOptions struct {
	ListOptions
	Sha    string
	Author string
	Since  *time.Time
	Until  *time.Time
}

// Apply 写入分页及过滤参数, 时间以 RFC3339 传递
func (o *CommitListOptions) Apply(q url.Values) {
	if o == nil {
		(*ListOptions)(nil).Apply(q)
		return
	}
	o.ListOptions.Apply(q)
	if o.Sha != "" {
		q.Set("sha", o.Sha)
	}
	if o.Author != "" {
		q.Set("author", o.Author)
	}
	if o.Since != nil {
		q.Set("since", o.Since.UTC().Format(time.RFC3339))
	}
	if o.Until != nil {
		q.Set("until", o.Until.UTC().Format(time.RFC3339))
	}
}

// IssueListOptions Issue 列表过滤
type IssueListOptions struct {
	ListOptions
	Labels   []string
	State    StateType // 为空表示不过滤
	Assignee string
	Creator  string
}

// Apply 写入分页及过滤参数, assigneeKey/creatorKey 为平台使用的参数名
func (o *IssueListOptions) Apply(q url.Values, assigneeKey, creatorKey string) {
	if o == nil {
		(*ListOptions)(nil).Apply(q)
		return
	}
	o.ListOptions.Apply(q)
	if len(o.Labels) > 0 {
		q.Set("labels", strings.Join(o.Labels, ","))
	}
	if o.State != "" {
		q.Set("state", o.State.Param())
	}
	if o.Assignee != "" {
		q.Set(assigneeKey, o.Assignee)
	}
	if o.Creator != "" {
		q.Set(creatorKey, o.Creator)
	}
}

// IssueCreateOptions 创建 Issue 的可选字段
type IssueCreateOptions struct {
	Labels    []string
	Assignees []string
}

// IssueUpdateOptions 更新 Issue, nil 字段不修改
type IssueUpdateOptions struct {
	Title *string
	Body  *string
	State *StateType
}

// ReleaseCreateOptions 创建发布的可选字段
// Name/Body 为空时使用标签名, TargetCommitish 为空时使用 HEAD
type ReleaseCreateOptions struct {
	Name            string
	Body            string
	TargetCommitish string
}

// Resolve 返回填充默认值后的 name/body/target
func (o *ReleaseCreateOptions) Resolve(tag string) (name, body, target string) {
	name, body, target = tag, tag, "HEAD"
	if o == nil {
		return
	}
	if o.Name != "" {
		name = o.Name
	}
	if o.Body != "" {
		body = o.Body
	}
	if o.TargetCommitish != "" {
		target = o.TargetCommitish
	}
	return
}

// ReleaseUpdateOptions 更新发布, 为空时使用标签名
type ReleaseUpdateOptions struct {
	Name string
	Body string
}

// Resolve 返回填充默认值后的 name/body
func (o ReleaseUpdateOptions) Resolve(tag string) (name, body string) {
	name, body = tag, tag
	if o.Name != "" {
		name = o.Name
	}
	if o.Body != "" {
		body = o.Body
	}
	return
}
