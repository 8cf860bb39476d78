package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"forgekit/internal/pkg/logger"
	pkgErrors "forgekit/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%d] %v\n", pkgErrors.Kind(err), err)
		os.Exit(1)
	}
}
