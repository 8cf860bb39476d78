package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"forgekit/internal/pkg/logger"
	"forgekit/internal/scheduler"
	pkgErrors "forgekit/pkg/errors"
)

func newWatchCmd(a *app) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "按 watch.jobs 定时观察发布、提交与贡献变化",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Watch.Jobs) == 0 {
				return pkgErrors.New(pkgErrors.CodeBadRequest, "未配置观察任务 watch.jobs")
			}
			forge, err := a.service()
			if err != nil {
				return err
			}
			s, err := scheduler.NewScheduler(forge, logger.Named("watch"), a.cfg.Watch.Jobs)
			if err != nil {
				return err
			}

			if once {
				values := make(map[string]string, len(a.cfg.Watch.Jobs))
				for _, job := range a.cfg.Watch.Jobs {
					v, _, err := s.Trigger(job.Name)
					if err != nil {
						return err
					}
					values[job.Name] = v
				}
				return a.print(cmd, values)
			}

			// 先建立初始值, 之后只在变化时记录
			s.RunOnce()
			if err := s.Start(); err != nil {
				return err
			}
			logger.Info("观察任务运行中", zap.Int("jobs", len(a.cfg.Watch.Jobs)))
			<-cmd.Context().Done()
			s.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "每个任务执行一次并输出当前值")
	return cmd
}
