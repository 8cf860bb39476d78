package main

import (
	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
)

func newReleaseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "发布操作",
	}

	var create api.ReleaseCreateOptions
	createCmd := &cobra.Command{
		Use:   "create <owner/repo> <tag>",
		Short: "创建发布, 名称与说明默认为标签",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			rel, err := client.Release().Create(cmd.Context(), path, args[1], &create)
			if err != nil {
				return err
			}
			return a.print(cmd, rel)
		},
	}
	createCmd.Flags().StringVar(&create.Name, "name", "", "发布名称")
	createCmd.Flags().StringVar(&create.Body, "body", "", "发布说明")
	createCmd.Flags().StringVar(&create.TargetCommitish, "target", "", "目标分支或提交, 默认为 HEAD")

	infoCmd := &cobra.Command{
		Use:   "info <owner/repo> [tag]",
		Short: "获取发布, 省略标签时为最新发布",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			var tag string
			if len(args) > 1 {
				tag = args[1]
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			rel, err := client.Release().Info(cmd.Context(), path, tag)
			if err != nil {
				return err
			}
			return a.print(cmd, rel)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <owner/repo>",
		Short: "获取发布列表",
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
			releases, err := client.Release().List(cmd.Context(), path)
			if err != nil {
				return err
			}
			return a.print(cmd, releases)
		},
	}

	var update api.ReleaseUpdateOptions
	updateCmd := &cobra.Command{
		Use:   "update <owner/repo> <tag>",
		Short: "更新发布",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			rel, err := client.Release().Update(cmd.Context(), path, args[1], update)
			if err != nil {
				return err
			}
			return a.print(cmd, rel)
		},
	}
	updateCmd.Flags().StringVar(&update.Name, "name", "", "发布名称")
	updateCmd.Flags().StringVar(&update.Body, "body", "", "发布说明")

	cmd.AddCommand(createCmd, infoCmd, listCmd, updateCmd)
	return cmd
}
