package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/event"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/utils"
	"github.com/awantoch/flowsketch/workflow"
)

var (
	exit       = os.Exit
	configPath string
	debug      bool
)

// generator is what the generate command and servers need from the workflow service.
type generator interface {
	Generate(ctx context.Context, description string) (*model.Workflow, error)
}

// newGenerator builds the workflow service; tests replace it with a fake.
var newGenerator = func(ctx context.Context, cfg *config.Config, events event.EventBus) (generator, error) {
	var pub workflow.Publisher
	if events != nil {
		pub = events
	}
	svc, err := workflow.NewServiceFromConfig(ctx, cfg, pub)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// NewRootCmd creates the root 'flowsketch' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "flowsketch",
		Short:        "Turn plain-English workflow descriptions into typed steps and flowcharts",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to flowsketch config (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug || os.Getenv(constants.EnvDebug) != "" {
			utils.SetDebug(true)
		}
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newGraphCmd(),
		newPromptCmd(),
		newMCPCmd(),
	)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, utils.Errorf("failed to load config %s: %w", configPath, err)
	}
	return cfg, nil
}
