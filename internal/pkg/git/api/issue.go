package api

import "time"

// StateType Issue 状态
type StateType string

const (
	StateOpened StateType = "Opened"
	StateClosed StateType = "Closed"
)

// Param 平台查询参数中使用的状态值
func (s StateType) Param() string {
	if s == StateOpened {
		return "open"
	}
	return "closed"
}

// ParseState 解析 open/closed
func ParseState(s string) (StateType, bool) {
	switch s {
	case "open", "opened", "Opened":
		return StateOpened, true
	case "closed", "Closed":
		return StateClosed, true
	}
	return "", false
}

// IssueInfo Issue 信息
type IssueInfo struct {
	Number    string        `json:"number" yaml:"number"`
	State     StateType     `json:"state" yaml:"state"`
	Title     string        `json:"title" yaml:"title"`
	Body      *string       `json:"body" yaml:"body"`
	Labels    []LabelInfo   `json:"labels" yaml:"labels"`
	User      IssueUserInfo `json:"user" yaml:"user"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated_at"`
	ClosedAt  *time.Time    `json:"closed_at" yaml:"closed_at"`
}

// LabelInfo 标签
type LabelInfo struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// IssueUserInfo Issue 创建者, 不含 login
type IssueUserInfo struct {
	Name      string  `json:"name" yaml:"name"`
	Email     *string `json:"email" yaml:"email"`
	AvatarURL string  `json:"avatar_url" yaml:"avatar_url"`
}
