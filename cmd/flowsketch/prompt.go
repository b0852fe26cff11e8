package main

import (
	"github.com/spf13/cobra"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/prompt"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdPrompt,
		Short: constants.DescPrompt,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd, "", prompt.SystemPrompt()+"\n")
		},
	}
}
