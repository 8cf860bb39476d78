package api

import "time"

// FileStatus 文件变更状态
type FileStatus string

const (
	FileAdded     FileStatus = "Added"
	FileModified  FileStatus = "Modified"
	FileDeleted   FileStatus = "Deleted"
	FileRenamed   FileStatus = "Renamed"
	FileCopied    FileStatus = "Copied"
	FileChanged   FileStatus = "Changed"
	FileUnChanged FileStatus = "UnChanged"
)

// FileStatusFrom 按平台的状态映射表转换, 未知状态为 FileUnChanged
func FileStatusFrom(table map[string]FileStatus, status string) FileStatus {
	if s, ok := table[status]; ok {
		return s
	}
	return FileUnChanged
}

// CommitInfo 提交信息
type CommitInfo struct {
	Sha    string     `json:"sha" yaml:"sha"`
	Commit CommitData `json:"commit" yaml:"commit"`
	Stats  StatsInfo  `json:"stats" yaml:"stats"`
	Files  []FileInfo `json:"files" yaml:"files"`
}

// CommitData 提交内容
type CommitData struct {
	Author    CommitUserInfo `json:"author" yaml:"author"`
	Committer CommitUserInfo `json:"committer" yaml:"committer"`
	Message   string         `json:"message" yaml:"message"`
}

// CommitUserInfo 提交作者/提交者
type CommitUserInfo struct {
	Name      string    `json:"name" yaml:"name"`
	Email     *string   `json:"email" yaml:"email"`
	AvatarURL string    `json:"avatar_url" yaml:"avatar_url"`
	Date      time.Time `json:"date" yaml:"date"`
}

// StatsInfo 变更统计
type StatsInfo struct {
	Total     uint64 `json:"total" yaml:"total"`
	Additions uint64 `json:"additions" yaml:"additions"`
	Deletions uint64 `json:"deletions" yaml:"deletions"`
}

// FileInfo 单个文件变更
type FileInfo struct {
	FileName  string     `json:"file_name" yaml:"file_name"`
	Status    FileStatus `json:"status" yaml:"status"`
	Additions uint64     `json:"additions" yaml:"additions"`
	Deletions uint64     `json:"deletions" yaml:"deletions"`
	Changes   uint64     `json:"changes" yaml:"changes"`
}
