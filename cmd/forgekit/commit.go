package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
	pkgErrors "forgekit/pkg/errors"
)

func newCommitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "提交信息",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info <owner/repo> [sha]",
		Short: "获取单个提交, 省略 sha 时为 HEAD",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			var sha string
			if len(args) > 1 {
				sha = args[1]
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			commit, err := client.Commit().Info(cmd.Context(), path, sha)
			if err != nil {
				return err
			}
			return a.print(cmd, commit)
		},
	})

	var (
		opts         api.CommitListOptions
		since, until string
	)
	list := &cobra.Command{
		Use:   "list <owner/repo>",
		Short: "获取提交列表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			if opts.Since, err = parseTime("since", since); err != nil {
				return err
			}
			if opts.Until, err = parseTime("until", until); err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			commits, err := client.Commit().List(cmd.Context(), path, &opts)
			if err != nil {
				return err
			}
			return a.print(cmd, commits)
		},
	}
	list.Flags().StringVar(&opts.Sha, "sha", "", "分支名或起始提交")
	list.Flags().StringVar(&opts.Author, "author", "", "提交作者")
	list.Flags().StringVar(&since, "since", "", "起始时间 (RFC3339)")
	list.Flags().StringVar(&until, "until", "", "截止时间 (RFC3339)")
	addListFlags(list, &opts.ListOptions)
	cmd.AddCommand(list)

	return cmd
}

func parseTime(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, fmt.Sprintf("--%s 时间格式错误", flag), err)
	}
	return &t, nil
}
