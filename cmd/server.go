package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"picam.api/v0/internal/config"
	"picam.api/v0/server"
	"picam.api/v0/server/route/telegram"
)

func handleServerCmd(cmd *cobra.Command, args []string) error {
	if action := cmd.Flag("service").Value.String(); action != "" {
		return controlService(action, serviceFlagArgs(cmd))
	}

	// Extract & construct server options.
	port, err := strconv.ParseUint(cmd.PersistentFlags().Lookup("port").Value.String(), 10, 16)
	if err != nil {
		return fmt.Errorf("failed to parse port: %v", err)
	}

	opts := &server.ServerOpts{
		ServerCertificate: cmd.PersistentFlags().Lookup("srvCrt").Value.String(),
		ServerKey:         cmd.PersistentFlags().Lookup("srvKey").Value.String(),
		HostEndpoint:      cmd.PersistentFlags().Lookup("host").Value.String(),
		PortEndpoint:      uint16(port),
	}

	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, journal, cleanup, err := newPictureService(cfg, reg)
	if err != nil {
		return fmt.Errorf("failed to create picture service: %v", err)
	}
	defer cleanup()

	run := func(ctx context.Context) error {
		// The bot is optional, the API runs without it.
		if cfg.TelegramToken != "" {
			var history telegram.History
			if journal != nil {
				history = journal
			}
			bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, svc, history)
			if err != nil {
				log.Printf("Failed to instantiate the telegram bot: %v\n", err)
			} else {
				go bot.Start(ctx)
			}
		}
		return server.Run(ctx, opts, svc, reg)
	}

	if err := runManaged(cmd.Context(), run); err != nil {
		return fmt.Errorf("failed server command: %v", err)
	}
	return nil
}

// serviceFlagArgs rebuilds the explicitly set flags so an installed service
// starts with the same configuration.
func serviceFlagArgs(cmd *cobra.Command) []string {
	args := []string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		args = append(args, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
	})
	return args
}

func NewServerCommand() *cobra.Command {
	srvCmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server on given endpoint with options.",
		RunE:  handleServerCmd,
	}

	srvCmd.PersistentFlags().String("srvCrt", "", "(Optional) Path to server's certificate.")
	srvCmd.PersistentFlags().String("srvKey", "", "(Optional) Path to server's key.")
	srvCmd.PersistentFlags().String("host", "localhost", "Server hostname to serve on.")
	srvCmd.PersistentFlags().Uint("port", 3000, "Server port to serve on.")
	srvCmd.Flags().String("service", "", "Service action: install, uninstall, start, stop, restart")
	config.RegisterFlags(srvCmd.Flags())

	return srvCmd
}
