package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"evalgo.org/neptuneexport/internal/args"
	"evalgo.org/neptuneexport/internal/neptuneml"
)

// applyProfileOptions holds the flags of the apply-profile command.
type applyProfileOptions struct {
	dataModel   string
	commandLine string
	targetsFile string
	format      string
	runLogDir   string
	keepDays    int
}

type profileTarget struct {
	NodeType string `json:"node_type"`
	Edge     bool   `json:"edge"`
	Property string `json:"property,omitempty"`
	TaskType string `json:"task_type"`
}

type profileResult struct {
	DataModel string          `json:"data_model"`
	Args      []string        `json:"args"`
	Targets   []profileTarget `json:"targets,omitempty"`

	commandLine string
}

var (
	profileOpts = applyProfileOptions{}

	applyProfileCmd = &cobra.Command{
		Use:   "apply-profile [flags] -- <export arguments>",
		Short: "Normalise export arguments for a NeptuneML data model",
		Long: `Rewrite an export command line so it is consistent with the NeptuneML
training data requirements of the selected data model.

For property graphs type definitions are excluded, edges carry both edge and
vertex labels and output files are merged. export-pg becomes
export-pg-from-config when a config or filter is given. For RDF the export
writes edges only, in ntriples format.

Examples:
  # Normalise a property graph export
  neptune-export apply-profile --data-model pg -- export-pg -e db.cluster.neptune.amazonaws.com

  # Pass the command line as a single string and emit JSON
  neptune-export apply-profile --data-model rdf --output json \
    --command-line "export-rdf -e db.cluster.neptune.amazonaws.com --format turtle"

  # Also validate the training targets of a data processing config
  neptune-export apply-profile --data-model pg --targets targets.json -- export-pg -e host`,
		RunE: func(cmd *cobra.Command, positional []string) error {
			return runApplyProfile(cmd.OutOrStdout(), profileOpts, positional)
		},
	}
)

func init() {
	applyProfileCmd.Flags().StringVar(&profileOpts.dataModel, "data-model", "pg", "data model, one of 'pg' or 'rdf'")
	applyProfileCmd.Flags().StringVar(&profileOpts.commandLine, "command-line", "", "export command line as a single string")
	applyProfileCmd.Flags().StringVar(&profileOpts.targetsFile, "targets", "", "JSON file with training targets to validate")
	applyProfileCmd.Flags().StringVarP(&profileOpts.format, "output", "o", "text", "output format, one of 'text' or 'json'")
	addRunLogFlags(applyProfileCmd.Flags(), &profileOpts.runLogDir, &profileOpts.keepDays)
	rootCmd.AddCommand(applyProfileCmd)
}

func runApplyProfile(out io.Writer, opts applyProfileOptions, positional []string) (err error) {
	model, err := neptuneml.ParseDataModel(opts.dataModel)
	if err != nil {
		return err
	}

	result := profileResult{DataModel: model.Name()}

	var arguments *args.ArgumentSet
	switch {
	case opts.commandLine != "" && len(positional) > 0:
		return fmt.Errorf("use either --command-line or positional arguments, not both")
	case opts.commandLine != "":
		arguments, err = args.Parse(opts.commandLine)
		if err != nil {
			return err
		}
	default:
		arguments = args.New(positional...)
	}

	if opts.runLogDir != "" {
		journal, jerr := openJournal(opts.runLogDir, opts.keepDays)
		if jerr != nil {
			return jerr
		}
		run, jerr := journal.Start("apply-profile", model.Name(), arguments.Values())
		if jerr != nil {
			return jerr
		}
		defer func() {
			run.Metadata = map[string]interface{}{"targets": len(result.Targets), "tokens": arguments.Len()}
			recordRun(journal, run, err)
		}()
	}

	if opts.targetsFile != "" {
		data, rerr := os.ReadFile(opts.targetsFile)
		if rerr != nil {
			return fmt.Errorf("failed to read targets file: %w", rerr)
		}
		targets, perr := neptuneml.ParseTargets(model, data)
		if perr != nil {
			return perr
		}
		for _, t := range targets {
			result.Targets = append(result.Targets, profileTarget{
				NodeType: t.NodeType.FullyQualifiedLabel(),
				Edge:     t.NodeType.IsEdge(),
				Property: t.Property,
				TaskType: t.TaskType,
			})
		}
	}

	model.NormalizeArguments(arguments)
	result.Args = arguments.Values()
	result.commandLine = arguments.String()

	logger.WithFields(logrus.Fields{
		"data_model": model.Name(),
		"tokens":     arguments.Len(),
		"targets":    len(result.Targets),
	}).Debug("Applied NeptuneML profile")

	return writeProfileResult(out, result, opts.format)
}

func writeProfileResult(out io.Writer, result profileResult, format string) error {
	switch format {
	case "json":
		return writeJSON(out, result)
	case "text", "":
		if _, err := fmt.Fprintln(out, result.commandLine); err != nil {
			return err
		}
		for _, t := range result.Targets {
			line := fmt.Sprintf("target: %s %s", t.TaskType, t.NodeType)
			if t.Property != "" {
				line += " " + t.Property
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q, expected 'text' or 'json'", format)
	}
}
