package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"forgekit/internal/pkg/config"
	"forgekit/internal/pkg/git"
	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/enrich"
	"forgekit/internal/pkg/git/transport"
	"forgekit/pkg/constants"
	pkgErrors "forgekit/pkg/errors"
)

// ForgeService 按平台持有客户端, 供命令行、网关与定时任务使用
type ForgeService struct {
	clients map[api.PlatformType]api.Client
	logger  *zap.Logger
}

// NewForgeService 根据配置为每个平台创建客户端
// 所有平台共用一个传输层与头像缓存
func NewForgeService(cfg *config.Config, logger *zap.Logger) (*ForgeService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doer, err := transport.New(transport.Options{
		Timeout:   cfg.HTTP.Timeout,
		Proxy:     cfg.HTTP.Proxy,
		UserAgent: cfg.HTTP.UserAgent,
		RateLimit: cfg.HTTP.RateLimit,
		Burst:     cfg.HTTP.Burst,
		Logger:    logger.Named("transport"),
	})
	if err != nil {
		return nil, err
	}
	avatars := enrich.NewAvatarCache(cfg.Cache.AvatarSize)

	clients := make([]api.Client, 0, len(api.Platforms))
	for _, platform := range api.Platforms {
		providerCfg, err := cfg.Provider(platform)
		if err != nil {
			return nil, err
		}
		client, err := git.NewClient(platform, providerCfg, base.Options{
			Doer:    doer,
			Logger:  logger.Named(string(platform)),
			Avatars: avatars,
		})
		if err != nil {
			return nil, fmt.Errorf("创建 %s 客户端失败: %w", platform, err)
		}
		clients = append(clients, client)
	}
	return NewForgeServiceWithClients(logger, clients...), nil
}

// NewForgeServiceWithClients 使用已创建的客户端
func NewForgeServiceWithClients(logger *zap.Logger, clients ...api.Client) *ForgeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ForgeService{
		clients: make(map[api.PlatformType]api.Client, len(clients)),
		logger:  logger,
	}
	for _, c := range clients {
		s.clients[c.Platform()] = c
	}
	return s
}

// Client 按平台名称获取客户端
func (s *ForgeService) Client(name string) (api.Client, error) {
	platform, ok := api.ParsePlatform(name)
	if !ok {
		return nil, pkgErrors.New(pkgErrors.CodeNotFound, fmt.Sprintf("不支持的平台: %s", name))
	}
	c, ok := s.clients[platform]
	if !ok {
		return nil, pkgErrors.ErrPlatformNotFound
	}
	return c, nil
}

// SetProxy 切换所有平台的代理
func (s *ForgeService) SetProxy(proxy string) error {
	for platform, c := range s.clients {
		if err := c.SetProxy(proxy); err != nil {
			return fmt.Errorf("%s: %w", platform, err)
		}
	}
	s.logger.Info("代理已切换", zap.String("proxy", proxy))
	return nil
}

// LatestRelease 获取仓库最新发布
func (s *ForgeService) LatestRelease(ctx context.Context, platform string, path api.RepoPath) (*api.ReleaseInfo, error) {
	c, err := s.Client(platform)
	if err != nil {
		return nil, err
	}
	return c.Release().Info(ctx, path, "")
}

// HeadCommit 获取仓库默认分支最新提交
func (s *ForgeService) HeadCommit(ctx context.Context, platform string, path api.RepoPath) (*api.CommitInfo, error) {
	c, err := s.Client(platform)
	if err != nil {
		return nil, err
	}
	return c.Commit().Info(ctx, path, "")
}

// ContributionTotal 获取用户贡献总数
func (s *ForgeService) ContributionTotal(ctx context.Context, platform, name string) (uint32, error) {
	c, err := s.Client(platform)
	if err != nil {
		return 0, err
	}
	result, err := c.User().Contribution(ctx, name)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Observe 读取观察任务当前的值: 最新发布标签、最新提交 sha 或贡献总数
func (s *ForgeService) Observe(ctx context.Context, job config.WatchJob) (string, error) {
	switch job.Kind {
	case constants.WatchKindRelease, constants.WatchKindCommit:
		path, ok := api.ParseRepoPath(job.Target)
		if !ok {
			return "", pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("仓库路径格式错误: %s", job.Target))
		}
		if job.Kind == constants.WatchKindRelease {
			rel, err := s.LatestRelease(ctx, job.Platform, path)
			if err != nil {
				return "", err
			}
			return rel.TagName, nil
		}
		commit, err := s.HeadCommit(ctx, job.Platform, path)
		if err != nil {
			return "", err
		}
		return commit.Sha, nil
	case constants.WatchKindContribution:
		total, err := s.ContributionTotal(ctx, job.Platform, job.Target)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(total), nil
	default:
		return "", pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("不支持的观察类型: %s", job.Kind))
	}
}
