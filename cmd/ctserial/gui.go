package main

import (
	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/serial"
	"github.com/MironCo/ctserial/internal/ui"
	"github.com/MironCo/ctserial/internal/util"
	"github.com/spf13/cobra"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

var guiCmd = &cobra.Command{
	Use:   "gui [device] [baud]",
	Short: "Open the shell in a desktop window",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		devices, err := serial.System{}.Devices()
		if err != nil {
			a.logger.Warn("device enumeration failed", "err", err)
		}

		myApp := fyneapp.New()
		myWindow := myApp.NewWindow("ctserial")

		var initial string
		if len(args) > 0 {
			res := a.dispatcher.Execute(connectLine(args), "", a.state)
			if res.Kind == command.Reject {
				return rejectedArgs(args)
			}
			initial = res.Text
		}
		sh := ui.NewShell(a.dispatcher, a.state, util.PreferredDevice(devices), myApp.Quit)
		sh.Show(initial)

		myWindow.SetContent(sh.Content())
		myWindow.SetOnClosed(a.closeSession)
		myWindow.Resize(fyne.NewSize(900, 700))
		myWindow.ShowAndRun()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
