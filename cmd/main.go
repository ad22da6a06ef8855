package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kcli "k8s.io/component-base/cli"

	"github.com/wgquickrs/agent/cmd/app/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := cli.NewRootCommand(ctx)
	code := kcli.Run(cmd)
	os.Exit(code)
}
