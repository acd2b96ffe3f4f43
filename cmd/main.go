package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/opsbench/opsctl/internal/interfaces/cli"
	"github.com/opsbench/opsctl/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			container.Logger.Error("unexpected failure", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "Error: unexpected failure: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx, container.GetCLIContainer())
}
