package main

import (
	"fmt"

	"github.com/MironCo/ctserial/internal/serial"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the serial devices that connect accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := serial.DescribeDevices()
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No serial devices found")
			return nil
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
