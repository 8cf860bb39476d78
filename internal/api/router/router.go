package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"forgekit/internal/api/handler"
	"forgekit/internal/api/middleware"
	"forgekit/internal/pkg/config"
	"forgekit/internal/pkg/logger"
	"forgekit/internal/service"
)

// Setup 设置路由
func Setup(cfg *config.Config, forge *service.ForgeService, log *zap.Logger) *gin.Engine {
	// 设置Gin模式
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}
	if w := logger.GetWriter(); w != nil {
		gin.DefaultWriter = w
		gin.DefaultErrorWriter = w
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	forgeHandler := handler.NewForgeHandler(forge)

	// API v1
	v1 := r.Group("/api/v1/:platform")
	if cfg.Auth.JWT.Secret != "" {
		v1.Use(middleware.AuthMiddleware(cfg.Auth.JWT.Secret))
	}
	{
		users := v1.Group("/users/:name")
		{
			users.GET("", forgeHandler.UserInfo)
			users.GET("/avatar", forgeHandler.UserAvatar)
			users.GET("/contribution", forgeHandler.UserContribution)
			users.GET("/repos", forgeHandler.UserRepos)
		}

		orgs := v1.Group("/orgs/:org")
		{
			orgs.GET("", forgeHandler.OrgInfo)
			orgs.GET("/repos", forgeHandler.OrgRepos)
			orgs.GET("/avatar", forgeHandler.OrgAvatar)
		}

		repos := v1.Group("/repos/:owner/:repo")
		{
			repos.GET("", forgeHandler.RepoInfo)
			repos.GET("/commits", forgeHandler.CommitList)
			repos.GET("/commits/:sha", forgeHandler.CommitInfo)
			repos.GET("/issues", forgeHandler.IssueList)
			repos.GET("/issues/:number", forgeHandler.IssueInfo)
			repos.GET("/releases", forgeHandler.ReleaseList)
			repos.GET("/releases/latest", forgeHandler.ReleaseInfo)
			repos.GET("/releases/tags/:tag", forgeHandler.ReleaseInfo)
		}
	}

	return r
}

// NewServer 创建支持 h2c 的HTTP服务器
func NewServer(cfg *config.Config, r http.Handler) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: h2c.NewHandler(r, &http2.Server{}),
	}
}
