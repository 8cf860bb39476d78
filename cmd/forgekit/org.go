package main

import (
	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
)

func newOrgCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "组织信息",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info <org>",
		Short: "获取组织信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.Org().Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "avatar <org>",
		Short: "获取组织头像地址",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			avatar, err := client.Org().AvatarURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"avatar_url": avatar})
		},
	})

	var list api.ListOptions
	repos := &cobra.Command{
		Use:   "repos <org>",
		Short: "获取组织仓库列表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			result, err := client.Org().RepoList(cmd.Context(), args[0], &list)
			if err != nil {
				return err
			}
			return a.print(cmd, result)
		},
	}
	addListFlags(repos, &list)
	cmd.AddCommand(repos)

	return cmd
}
