package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/graph"
	"github.com/awantoch/flowsketch/graphviz"
	"github.com/awantoch/flowsketch/model"
)

// newGraphCmd creates the 'graph' subcommand.
func newGraphCmd() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   constants.CmdGraph + " <workflow-file>",
		Short: constants.DescGraph,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := readWorkflowFile(args[0])
			if err != nil {
				return err
			}
			var diagram string
			switch format {
			case constants.FormatMermaid:
				diagram, err = graph.ExportMermaid(wf.Steps)
			case constants.FormatDOT:
				diagram, err = graphviz.ExportDOT(wf.Steps)
			default:
				return fmt.Errorf(constants.ErrUnknownFormat, format)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, diagram+"\n")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write diagram to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", constants.FormatMermaid, "diagram format: mermaid or dot")
	return cmd
}

// readWorkflowFile loads a workflow saved by 'generate' as JSON, or YAML by extension.
func readWorkflowFile(path string) (*model.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(constants.ErrReadFileFailed, err)
	}
	var wf model.Workflow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &wf)
	default:
		err = json.Unmarshal(data, &wf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, s := range wf.Steps {
		if !s.Type.Valid() {
			return nil, fmt.Errorf("%s: step %d has unknown type %q", path, i, s.Type)
		}
	}
	return &wf, nil
}
