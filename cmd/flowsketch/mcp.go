package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/event"
	mcpserver "github.com/awantoch/flowsketch/mcp"
	"github.com/awantoch/flowsketch/utils"
)

// newMCPCmd creates the 'mcp' subcommand and its subcommands.
func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CmdMCP,
		Short: constants.DescMCPCommands,
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var stdio bool
	var addr string
	cmd := &cobra.Command{
		Use:   constants.CmdServe,
		Short: constants.DescMCPServe,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runMCPServe(stdio, addr); err != nil {
				utils.Error("MCP server failed: %v", err)
				exit(1)
			}
		},
	}
	cmd.Flags().BoolVar(&stdio, "stdio", true, "serve over stdin/stdout instead of HTTP (default)")
	cmd.Flags().StringVar(&addr, "addr", constants.DefaultMCPAddr, "listen address for HTTP mode")
	return cmd
}

func runMCPServe(stdio bool, addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, err := event.NewEventBusFromConfig(&cfg.Event)
	if err != nil {
		return err
	}
	defer bus.Close()

	gen, err := newGenerator(ctx, cfg, bus)
	if err != nil {
		return err
	}
	tools := []mcpserver.ToolRegistration{mcpserver.GenerateWorkflowTool(gen)}
	return mcpserver.Serve(ctx, mcpserver.Options{Stdio: stdio, Addr: addr, Debug: debug}, tools)
}
