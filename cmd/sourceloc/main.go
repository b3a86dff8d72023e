package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/sourceloc/internal/cli"
	slerrors "github.com/matzehuels/sourceloc/pkg/errors"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidData = 2   // unreadable entity, config or reference input
	exitInterrupted = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, slerrors.UserMessage(err))
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	switch slerrors.GetCode(err) {
	case slerrors.ErrCodeInvalidConfig, slerrors.ErrCodeInvalidEntity,
		slerrors.ErrCodeInvalidReference, slerrors.ErrCodeFileNotFound:
		return exitInvalidData
	}
	return exitFailure
}
