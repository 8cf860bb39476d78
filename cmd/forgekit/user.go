package main

import (
	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "用户信息, 省略用户名或使用 @me 表示当前用户",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info [name]",
		Short: "获取用户信息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.User().Info(cmd.Context(), nameArg(args))
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "avatar [name]",
		Short: "获取用户头像地址",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			avatar, err := client.User().AvatarURL(cmd.Context(), nameArg(args))
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"avatar_url": avatar})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "contribution [name]",
		Short: "获取贡献日历",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			result, err := client.User().Contribution(cmd.Context(), nameArg(args))
			if err != nil {
				return err
			}
			return a.print(cmd, result)
		},
	})

	var list api.ListOptions
	repos := &cobra.Command{
		Use:   "repos [name]",
		Short: "获取用户仓库列表",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			result, err := client.User().RepoList(cmd.Context(), nameArg(args), &list)
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

// addListFlags 分页参数, 0 表示使用默认值
func addListFlags(cmd *cobra.Command, opts *api.ListOptions) {
	cmd.Flags().IntVar(&opts.Page, "page", 0, "页码")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "每页数量, 最大 100")
}
