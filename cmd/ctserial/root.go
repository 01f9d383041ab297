package main

import (
	"fmt"
	"os"

	"github.com/MironCo/ctserial/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctserial [device] [baud]",
	Short: "ctserial is an interactive shell for raw serial devices",
	Long: `ctserial sends text and raw hex to a serial device, reads back whatever it answers
and shows both directions as aligned hex and character rows.

With a device argument the session is opened before the prompt appears.`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", config.DefaultMode.String(), "Output mode: hex, ascii, utf-8 or mixed")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
}
