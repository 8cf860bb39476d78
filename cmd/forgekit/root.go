package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"forgekit/internal/pkg/config"
	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/logger"
	"forgekit/internal/service"
	"forgekit/pkg/constants"
	pkgErrors "forgekit/pkg/errors"
)

// app 命令行共享状态, 在 PersistentPreRunE 中初始化
type app struct {
	configPath string
	platform   string
	output     string
	proxy      string

	cfg   *config.Config
	forge *service.ForgeService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           constants.AppName,
		Short:         "GitHub / Gitee / GitCode / CNB 统一客户端",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "配置文件路径, 为空时查找 ./configs/config.yaml")
	flags.StringVarP(&a.platform, "platform", "p", string(api.PlatformGitHub), "平台: github|gitee|gitcode|cnb")
	flags.StringVarP(&a.output, "output", "o", constants.OutputJSON, "输出格式: json|yaml")
	flags.StringVar(&a.proxy, "proxy", "", "HTTP 代理地址, 覆盖配置")

	root.AddCommand(
		newUserCmd(a),
		newOrgCmd(a),
		newRepoCmd(a),
		newCommitCmd(a),
		newIssueCmd(a),
		newReleaseCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newTokenCmd(a),
		newSecretCmd(a),
		newVersionCmd(),
	)
	return root
}

// init 加载 .env 与配置并初始化日志
func (a *app) init() error {
	if a.output != constants.OutputJSON && a.output != constants.OutputYAML {
		return pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("不支持的输出格式: %s", a.output))
	}

	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.proxy != "" {
		cfg.HTTP.Proxy = a.proxy
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	a.cfg = cfg
	return nil
}

// service 首次使用时创建平台客户端
func (a *app) service() (*service.ForgeService, error) {
	if a.forge != nil {
		return a.forge, nil
	}
	forge, err := service.NewForgeService(a.cfg, logger.Named("forge"))
	if err != nil {
		return nil, err
	}
	a.forge = forge
	return forge, nil
}

// client 当前 --platform 的客户端
func (a *app) client() (api.Client, error) {
	forge, err := a.service()
	if err != nil {
		return nil, err
	}
	return forge.Client(a.platform)
}

func parseRepo(s string) (api.RepoPath, error) {
	path, ok := api.ParseRepoPath(s)
	if !ok {
		return api.RepoPath{}, pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("仓库路径格式错误, 应为 owner/repo: %s", s))
	}
	return path, nil
}

// nameArg 未指定或为 @me 时表示当前认证用户
func nameArg(args []string) string {
	if len(args) == 0 || args[0] == constants.CurrentUser {
		return ""
	}
	return args[0]
}
