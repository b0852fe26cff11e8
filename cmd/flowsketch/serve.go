package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/event"
	fshttp "github.com/awantoch/flowsketch/http"
	"github.com/awantoch/flowsketch/telemetry"
	"github.com/awantoch/flowsketch/utils"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   constants.CmdServe,
		Short: constants.DescServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				if err := cfg.SetAddr(addr); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := telemetry.Init(cfg); err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx); err != nil {
					utils.Warn("telemetry shutdown: %v", err)
				}
			}()

			bus, err := event.NewEventBusFromConfig(&cfg.Event)
			if err != nil {
				return err
			}
			defer bus.Close()

			gen, err := newGenerator(ctx, cfg, bus)
			if err != nil {
				return err
			}
			return fshttp.StartServer(ctx, cfg, gen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address host:port (overrides config and PORT)")
	return cmd
}
