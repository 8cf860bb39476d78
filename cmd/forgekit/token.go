package main

import (
	"time"

	"github.com/spf13/cobra"

	"forgekit/internal/pkg/jwt"
	pkgErrors "forgekit/pkg/errors"
	"forgekit/pkg/utils"
)

// newTokenCmd 签发网关访问令牌
func newTokenCmd(a *app) *cobra.Command {
	var expire time.Duration
	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "使用 auth.jwt.secret 签发网关访问令牌",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("expire") {
				expire = time.Duration(a.cfg.Auth.JWT.AccessTokenExpire) * time.Second
			}
			token, err := jwt.GenerateAccessToken(a.cfg.Auth.JWT.Secret, args[0], expire)
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"access_token": token})
		},
	}
	cmd.Flags().DurationVar(&expire, "expire", 0, "有效期, 默认使用 auth.jwt.access_token_expire")
	return cmd
}

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "配置中的敏感值处理",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "encrypt <plaintext>",
		Short: "使用 crypto.aes_key 加密, 输出可直接写入 providers.*.token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealed, err := utils.SealToken(a.cfg.Crypto.AESKey, args[0])
			if err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeBadRequest, "加密失败", err)
			}
			return a.print(cmd, map[string]string{"token": sealed})
		},
	})
	return cmd
}
