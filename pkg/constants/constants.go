package constants

// 版本信息
const (
	AppName    = "forgekit"
	AppVersion = "1.0.0"
)

// 输出格式
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// 观察任务类型
const (
	WatchKindRelease      = "release"
	WatchKindCommit       = "commit"
	WatchKindContribution = "contribution"
)

// 网关路径中表示当前认证用户的名称
const CurrentUser = "@me"

// JWT 相关
const (
	JWTContextKey = "jwt_subject"
	JWTTypeAccess = "access"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
