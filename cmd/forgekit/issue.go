package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgekit/internal/pkg/git/api"
	pkgErrors "forgekit/pkg/errors"
)

func newIssueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue 操作",
	}
	cmd.AddCommand(
		newIssueCreateCmd(a),
		newIssueInfoCmd(a),
		newIssueListCmd(a),
		newIssueUpdateCmd(a),
	)
	return cmd
}

func parseState(s string) (api.StateType, error) {
	state, ok := api.ParseState(s)
	if !ok {
		return "", pkgErrors.New(pkgErrors.CodeBadRequest, fmt.Sprintf("不支持的状态: %s", s))
	}
	return state, nil
}

func newIssueCreateCmd(a *app) *cobra.Command {
	var (
		body string
		opts api.IssueCreateOptions
	)
	cmd := &cobra.Command{
		Use:   "create <owner/repo> <title>",
		Short: "创建 Issue",
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
			issue, err := client.Issue().Create(cmd.Context(), path, args[1], body, &opts)
			if err != nil {
				return err
			}
			return a.print(cmd, issue)
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "内容")
	cmd.Flags().StringSliceVar(&opts.Labels, "labels", nil, "标签, 逗号分隔")
	cmd.Flags().StringSliceVar(&opts.Assignees, "assignees", nil, "负责人, 逗号分隔")
	return cmd
}

func newIssueInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <owner/repo> <number>",
		Short: "获取 Issue",
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
			issue, err := client.Issue().Info(cmd.Context(), path, args[1])
			if err != nil {
				return err
			}
			return a.print(cmd, issue)
		},
	}
}

func newIssueListCmd(a *app) *cobra.Command {
	var (
		opts  api.IssueListOptions
		state string
	)
	cmd := &cobra.Command{
		Use:   "list <owner/repo>",
		Short: "获取 Issue 列表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			if state != "" {
				if opts.State, err = parseState(state); err != nil {
					return err
				}
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			issues, err := client.Issue().List(cmd.Context(), path, &opts)
			if err != nil {
				return err
			}
			return a.print(cmd, issues)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "状态: open|closed")
	cmd.Flags().StringSliceVar(&opts.Labels, "labels", nil, "标签, 逗号分隔")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "负责人")
	cmd.Flags().StringVar(&opts.Creator, "creator", "", "创建者")
	addListFlags(cmd, &opts.ListOptions)
	return cmd
}

// newIssueUpdateCmd 只修改显式传入的字段
func newIssueUpdateCmd(a *app) *cobra.Command {
	var title, body, state string
	cmd := &cobra.Command{
		Use:   "update <owner/repo> <number>",
		Short: "更新 Issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseRepo(args[0])
			if err != nil {
				return err
			}
			opts := &api.IssueUpdateOptions{}
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("body") {
				opts.Body = &body
			}
			if cmd.Flags().Changed("state") {
				s, err := parseState(state)
				if err != nil {
					return err
				}
				opts.State = &s
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			issue, err := client.Issue().Update(cmd.Context(), path, args[1], opts)
			if err != nil {
				return err
			}
			return a.print(cmd, issue)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "标题")
	cmd.Flags().StringVar(&body, "body", "", "内容")
	cmd.Flags().StringVar(&state, "state", "", "状态: open|closed")
	return cmd
}
