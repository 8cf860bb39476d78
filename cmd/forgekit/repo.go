package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
	pkgErrors "forgekit/pkg/errors"
)

func newRepoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "仓库操作",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info <owner/repo>",
		Short: "获取仓库信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.Repo().Info(cmd.Context(), path)
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	})

	var permission string
	collaborator := &cobra.Command{
		Use:   "add-collaborator <owner/repo> <user>",
		Short: "添加协作者",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			perm, ok := api.ParsePermission(permission)
			if !ok {
				return pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("不支持的权限: %s", permission))
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			result, err := client.Repo().AddCollaborator(cmd.Context(), path, args[1], perm)
			if err != nil {
				return err
			}
			return a.print(cmd, result)
		},
	}
	collaborator.Flags().StringVar(&permission, "permission", "", "权限: admin|push|pull, 为空时使用平台默认值")
	cmd.AddCommand(collaborator)

	return cmd
}
