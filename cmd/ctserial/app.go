package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/config"
	"github.com/MironCo/ctserial/internal/logging"
	"github.com/MironCo/ctserial/internal/serial"
	"github.com/spf13/cobra"
)

// app holds the pieces shared by every front end
type app struct {
	logger     *slog.Logger
	dispatcher *command.Dispatcher
	state      *command.State
}

func newApp(cmd *cobra.Command) (*app, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	modeName, _ := cmd.Flags().GetString("mode")

	mode, err := config.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	logger := logging.ForDebug(debug)
	transceiver := serial.NewTransceiver(serial.WithLogger(logger))
	dispatcher := command.New(serial.System{}, transceiver,
		command.WithLogger(logger),
		command.WithMetrics(transceiver.Metrics()),
	)

	return &app{
		logger:     logger,
		dispatcher: dispatcher,
		state:      command.NewState(mode),
	}, nil
}

// connectLine turns "device [baud]" arguments into the equivalent shell command
func connectLine(args []string) string {
	return "connect " + strings.Join(args, " ")
}

// closeSession closes a session left open when a front end goes away
func (a *app) closeSession() {
	if !a.state.Connected() {
		return
	}
	if err := a.state.Session.Close(); err != nil {
		a.logger.Warn("close failed", "device", a.state.Session.Device, "err", err)
	}
	a.state.Session = nil
}

func rejectedArgs(args []string) error {
	return fmt.Errorf("invalid connect arguments: %s", strings.Join(args, " "))
}
