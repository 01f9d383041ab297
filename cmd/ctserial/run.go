package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/shell"
	"github.com/spf13/cobra"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect <device> [baud]",
	Short: "Open a session with a serial device and start the shell",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	sh := shell.New(a.dispatcher, a.state, os.Stdout, shell.WithLogger(a.logger))
	sh.PrintBanner()

	if len(args) > 0 {
		if res := sh.Submit(connectLine(args)); res.Kind == command.Reject {
			return rejectedArgs(args)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := shell.NewReader(os.Stdin, a.dispatcher)
	defer reader.Close()

	return sh.Run(ctx, reader)
}
