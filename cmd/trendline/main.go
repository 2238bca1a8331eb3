// Package main is the trendline command-line entrypoint.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/trendline/cmd"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iostore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd.SetStoreManager(iostore.Manager)
	err := cmd.Execute(ctx)

	stop()
	iostore.CloseStore()
	if closeErr := cmd.Cleanup(); closeErr != nil {
		contract.LogWarn("Cannot close log file", closeErr)
	}
	if err != nil {
		contract.LogFatal("Error running trendline", err)
	}
}
