package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"forgekit/internal/api/router"
	"forgekit/internal/pkg/logger"
	"forgekit/internal/scheduler"
	"forgekit/pkg/constants"
)

func newServeCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动只读 HTTP 网关",
		RunE: func(cmd *cobra.Command, args []string) error {
			forge, err := a.service()
			if err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("服务 %s 启动中...", a.cfg.Server.Name), zap.String("version", constants.AppVersion))

			if watch && len(a.cfg.Watch.Jobs) > 0 {
				s, err := scheduler.NewScheduler(forge, logger.Named("watch"), a.cfg.Watch.Jobs)
				if err != nil {
					return err
				}
				if err := s.Start(); err != nil {
					return err
				}
				defer s.Stop()
			}

			r := router.Setup(a.cfg, forge, logger.Named("gin"))
			srv := router.NewServer(a.cfg, r)

			errCh := make(chan error, 1)
			go func() {
				logger.Info(fmt.Sprintf("%s 服务启动成功", a.cfg.Server.Name),
					zap.String("address", srv.Addr),
					zap.String("mode", a.cfg.Server.Mode),
					zap.Bool("auth", a.cfg.Auth.JWT.Secret != ""),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("服务器启动失败: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			logger.Info("正在关闭服务器...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("服务器强制关闭: %w", err)
			}
			logger.Info("服务器已退出")
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "同时运行 watch.jobs 中的观察任务")
	return cmd
}
