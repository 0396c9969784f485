package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/sitegen/internal/client/cli"
	"github.com/dmitrijs2005/sitegen/internal/client/config"
	"github.com/dmitrijs2005/sitegen/internal/flagx"
	"github.com/dmitrijs2005/sitegen/internal/logging"
)

func main() {
	cfgArgs, cmdArgs := flagx.SplitArgs(os.Args[1:], config.FlagNames())

	cfg, err := config.LoadConfig(cfgArgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, logger)
	root.SetArgs(cmdArgs)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
