// Command sknext shows the next uncompleted tasks of a speckit tasks.md file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/sknext/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nInterrupted")
		stop()
		os.Exit(130)
	}
	cmd.PrintError(os.Stderr, err)
	stop()
	os.Exit(cmd.ExitCode(err))
}
