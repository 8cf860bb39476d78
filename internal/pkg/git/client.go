// Package git 按平台类型创建统一的 Git 平台客户端.
package git

import (
	"fmt"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/cnb"
	"forgekit/internal/pkg/git/gitcode"
	"forgekit/internal/pkg/git/gitee"
	"forgekit/internal/pkg/git/github"
	pkgErrors "forgekit/pkg/errors"
)

// NewClient 创建指定平台的客户端
func NewClient(platform api.PlatformType, config api.ProviderConfig, opts base.Options) (api.Client, error) {
	switch platform {
	case api.PlatformGitHub:
		p, err := github.NewProvider(config, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	case api.PlatformGitee:
		p, err := gitee.NewProvider(config, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	case api.PlatformGitCode:
		p, err := gitcode.NewProvider(config, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	case api.PlatformCnb:
		p, err := cnb.NewProvider(config, opts)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("不支持的平台类型: %s", platform))
	}
}
