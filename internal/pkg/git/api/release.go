package api

import "time"

// ReleaseInfo 发布信息
type ReleaseInfo struct {
	TagName         string       `json:"tag_name" yaml:"tag_name"`
	TargetCommitish string       `json:"target_commitish" yaml:"target_commitish"`
	Prerelease      bool         `json:"prerelease" yaml:"prerelease"`
	Name            string       `json:"name" yaml:"name"`
	Body            *string      `json:"body" yaml:"body"`
	Author          AuthorInfo   `json:"author" yaml:"author"`
	CreatedAt       time.Time    `json:"created_at" yaml:"created_at"`
	Assets          []AssetsInfo `json:"assets" yaml:"assets"`
}

// AuthorInfo 发布作者
type AuthorInfo struct {
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

// AssetsInfo 附件
type AssetsInfo struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}
