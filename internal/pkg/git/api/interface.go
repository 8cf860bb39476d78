package api

import "context"

// Client Git平台客户端, 每个平台一个实现
//
// 名称参数为空字符串时表示当前认证用户, 此时必须已设置访问令牌.
type Client interface {
	// Platform 获取平台类型
	Platform() PlatformType

	// SetToken 设置访问令牌, 空令牌返回 CredentialMissing
	SetToken(token string) error

	// SetProxy 切换代理, 空字符串表示直连
	SetProxy(proxy string) error

	User() UserService
	Org() OrgService
	Repo() RepoService
	Commit() CommitService
	Issue() IssueService
	Release() ReleaseService
}

// UserService 用户相关操作
type UserService interface {
	// Info 获取用户信息
	Info(ctx context.Context, name string) (*UserInfo, error)

	// AvatarURL 获取用户头像地址
	AvatarURL(ctx context.Context, name string) (string, error)

	// Contribution 获取贡献日历
	Contribution(ctx context.Context, name string) (*ContributionResult, error)

	// RepoList 获取用户仓库列表
	RepoList(ctx context.Context, name string, opts *ListOptions) ([]RepoInfo, error)
}

// OrgService 组织相关操作
type OrgService interface {
	Info(ctx context.Context, org string) (*OrgInfo, error)
	RepoList(ctx context.Context, org string, opts *ListOptions) ([]RepoInfo, error)
	AvatarURL(ctx context.Context, org string) (string, error)
}

// RepoService 仓库相关操作
type RepoService interface {
	Info(ctx context.Context, path RepoPath) (*RepoInfo, error)

	// AddCollaborator 添加协作者, perm 为 PermissionNone 时使用平台默认权限
	AddCollaborator(ctx context.Context, path RepoPath, user string, perm CollaboratorPermission) (*CollaboratorResult, error)
}

// CommitService 提交相关操作
type CommitService interface {
	// Info 获取单个提交, sha 为空时取 HEAD
	Info(ctx context.Context, path RepoPath, sha string) (*CommitInfo, error)
	List(ctx context.Context, path RepoPath, opts *CommitListOptions) ([]CommitInfo, error)
}

// IssueService Issue 相关操作
type IssueService interface {
	Create(ctx context.Context, path RepoPath, title, body string, opts *IssueCreateOptions) (*IssueInfo, error)
	Info(ctx context.Context, path RepoPath, number string) (*IssueInfo, error)
	List(ctx context.Context, path RepoPath, opts *IssueListOptions) ([]IssueInfo, error)
	Update(ctx context.Context, path RepoPath, number string, opts *IssueUpdateOptions) (*IssueInfo, error)
}

// ReleaseService 发布相关操作
type ReleaseService interface {
	Create(ctx context.Context, path RepoPath, tag string, opts *ReleaseCreateOptions) (*ReleaseInfo, error)

	// Info 获取发布, tag 为空时取最新发布
	Info(ctx context.Context, path RepoPath, tag string) (*ReleaseInfo, error)
	List(ctx context.Context, path RepoPath) ([]ReleaseInfo, error)
	Update(ctx context.Context, path RepoPath, tag string, opts ReleaseUpdateOptions) (*ReleaseInfo, error)
}
