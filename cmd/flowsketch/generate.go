package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/utils"
	"github.com/awantoch/flowsketch/workflow"
)

// newGenerateCmd creates the 'generate' subcommand.
func newGenerateCmd() *cobra.Command {
	var promptText, output, format string
	cmd := &cobra.Command{
		Use:   constants.CmdGenerate + " [description]",
		Short: constants.DescGenerate,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if promptText == "" {
				promptText = strings.Join(args, " ")
			}
			if promptText == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				promptText = string(data)
			}
			if strings.TrimSpace(promptText) == "" {
				return fmt.Errorf("%s: pass -p or a description", constants.ResponsePromptRequired)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := utils.WithRequestID(context.Background(), utils.NewRequestID())
			gen, err := newGenerator(ctx, cfg, nil)
			if err != nil {
				return err
			}
			wf, err := gen.Generate(ctx, promptText)
			if err != nil {
				return errors.New(workflow.UserMessage(err))
			}

			out, err := formatWorkflow(wf, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVarP(&promptText, "prompt", "p", "", "workflow description (\"-\" reads stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", constants.FormatJSON, "output format: json, yaml, or mermaid")
	return cmd
}

func formatWorkflow(wf *model.Workflow, format string) (string, error) {
	switch format {
	case constants.FormatJSON:
		data, err := json.MarshalIndent(wf, "", "  ")
		if err != nil {
			return "", fmt.Errorf(constants.ErrMarshalFailed, err)
		}
		return string(data) + "\n", nil
	case constants.FormatYAML:
		data, err := yaml.Marshal(wf)
		if err != nil {
			return "", fmt.Errorf(constants.ErrMarshalFailed, err)
		}
		return string(data), nil
	case constants.FormatMermaid:
		return wf.MermaidSyntax + "\n", nil
	default:
		return "", fmt.Errorf(constants.ErrUnknownFormat, format)
	}
}

// writeOutput prints out, or writes it to path when one is given.
func writeOutput(cmd *cobra.Command, path, out string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf(constants.ErrWriteOutputFailed, err)
	}
	utils.User(constants.MsgDraftWritten, path)
	return nil
}
