package api

import (
	"strings"
	"time"
)

// PlatformType 平台类型
type PlatformType string

const (
	PlatformGitHub  PlatformType = "github"
	PlatformGitee   PlatformType = "gitee"
	PlatformGitCode PlatformType = "gitcode"
	PlatformCnb     PlatformType = "cnb"
)

// Platforms 支持的全部平台
var Platforms = []PlatformType{PlatformGitHub, PlatformGitee, PlatformGitCode, PlatformCnb}

// ParsePlatform 解析平台名称, 未知平台返回 false
func ParsePlatform(name string) (PlatformType, bool) {
	for _, p := range Platforms {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// ProviderConfig 通用平台配置, 为空的地址使用各平台默认值
type ProviderConfig struct {
	Token     string // 访问Token
	APIURL    string // REST API 地址
	BaseURL   string // 网页地址
	WebAPIURL string // 网页接口地址, 仅 GitCode 使用
}

// RepoPath 仓库路径 owner/name
type RepoPath struct {
	Owner string
	Name  string
}

func (p RepoPath) String() string {
	return p.Owner + "/" + p.Name
}

// ParseRepoPath 解析 owner/name 形式的仓库路径
func ParseRepoPath(s string) (RepoPath, bool) {
	owner, name, ok := strings.Cut(strings.Trim(s, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoPath{}, false
	}
	return RepoPath{Owner: owner, Name: name}, true
}

// Visibility 仓库可见性
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// VisibilityOf 公开标记转可见性
func VisibilityOf(public bool) Visibility {
	if public {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// UserInfo 用户信息
type UserInfo struct {
	Login           string  `json:"login" yaml:"login"`
	Name            *string `json:"name" yaml:"name"`
	Email           *string `json:"email" yaml:"email"`
	AvatarURL       string  `json:"avatar_url" yaml:"avatar_url"`
	Followers       uint64  `json:"followers" yaml:"followers"`
	Following       uint64  `json:"following" yaml:"following"`
	PublicRepoCount uint64  `json:"public_repo_count" yaml:"public_repo_count"`
}

// OrgInfo 组织信息
type OrgInfo struct {
	Login       string  `json:"login" yaml:"login"`
	Name        *string `json:"name" yaml:"name"`
	Email       *string `json:"email" yaml:"email"`
	AvatarURL   string  `json:"avatar_url" yaml:"avatar_url"`
	Description *string `json:"description" yaml:"description"`
	FollowCount uint64  `json:"follow_count" yaml:"follow_count"`
}

// RepoInfo 仓库信息
type RepoInfo struct {
	Owner         string     `json:"owner" yaml:"owner"`
	Name          string     `json:"name" yaml:"name"`
	FullName      string     `json:"full_name" yaml:"full_name"`
	Description   *string    `json:"description" yaml:"description"`
	Visibility    Visibility `json:"visibility" yaml:"visibility"`
	Fork          bool       `json:"fork" yaml:"fork"`
	ForkCount     uint64     `json:"fork_count" yaml:"fork_count"`
	Language      *string    `json:"language" yaml:"language"`
	StarCount     uint64     `json:"star_count" yaml:"star_count"`
	DefaultBranch string     `json:"default_branch" yaml:"default_branch"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" yaml:"updated_at"`
	PushedAt      time.Time  `json:"pushed_at" yaml:"pushed_at"`
}

// CollaboratorPermission 协作者权限, 零值表示未指定
type CollaboratorPermission string

const (
	PermissionNone  CollaboratorPermission = ""
	PermissionAdmin CollaboratorPermission = "Admin"
	PermissionPush  CollaboratorPermission = "Push"
	PermissionPull  CollaboratorPermission = "Pull"
)

// ParsePermission 解析 admin/push/pull, 空字符串为 PermissionNone
func ParsePermission(s string) (CollaboratorPermission, bool) {
	switch s {
	case "":
		return PermissionNone, true
	case "admin", "Admin":
		return PermissionAdmin, true
	case "push", "Push":
		return PermissionPush, true
	case "pull", "Pull":
		return PermissionPull, true
	}
	return PermissionNone, false
}

// CollaboratorResult 添加协作者结果
type CollaboratorResult struct {
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}
