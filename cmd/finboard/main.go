package main

import (
	"context"
	"fmt"
	"os"

	"finboard/internal/cli"
	"finboard/internal/log"
)

var version = "dev"

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(context.Background(), log.New(log.DefaultConfig()))
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
