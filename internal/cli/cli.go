package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/provgraph/internal/app"
	"github.com/vk/provgraph/internal/export"
)

// EnvPrefix is the prefix of the environment variables mirroring the flags,
// e.g. PROVGRAPH_MIN_COALESCE for --min-coalesce.
const EnvPrefix = "PROVGRAPH"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `provgraph - assembles the provenance graph of a dataset's files.

Files are linked to the files they were derived from through the analysis
steps that produced them, grouped by biological replicate, for one genome
assembly and annotation.

Arguments:
  DATASET_PATH
    Path to a single .hcl or .json dataset file, or a directory of them.

Every flag can also be set through the environment, e.g. PROVGRAPH_ASSEMBLY.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg *app.Config
	cmd := &cobra.Command{
		Use:           "provgraph [flags] [DATASET_PATH]",
		Short:         "Assemble the provenance graph of a dataset",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			path := v.GetString("dataset")
			if path == "" && len(posArgs) > 0 {
				path = posArgs[0]
			}
			slog.Debug("Dataset path determined.", "path", path)

			if path == "" {
				slog.Debug("No dataset path provided, printing usage and exiting.")
				return cmd.Help()
			}

			parsed, err := newConfig(v, path)
			if err != nil {
				return err
			}
			cfg = parsed
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("dataset", "d", "", "Path to the dataset file or directory.")
	flags.StringP("assembly", "a", "", "Genome assembly to draw the graph for, e.g. 'GRCh38'.")
	flags.String("annotation", "", "Genome annotation to draw the graph for, e.g. 'V29'.")
	flags.StringP("format", "f", export.FormatJSON, "Output format. Options: "+strings.Join(export.Formats, ", ")+".")
	flags.StringP("output", "o", "", "Write the graph to this file instead of stdout.")
	flags.Int("min-coalesce", 0, "Smallest group of contributing files drawn as one node. 0 uses the dataset setting or 5.")
	flags.String("select", "", "ID of the node to highlight as selected.")
	flags.Bool("colorize", false, "Append each file's status to its node class.")
	flags.Bool("table", false, "Also print the file table, marking files placed in the graph.")
	flags.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	if err := v.BindPFlags(flags); err != nil {
		return nil, false, fmt.Errorf("failed to bind flags: %w", err)
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		// Help was requested or no dataset was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// newConfig validates the merged flag and environment values.
func newConfig(v *viper.Viper, path string) (*app.Config, error) {
	logFormat := strings.ToLower(v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		DatasetPath:    path,
		Assembly:       v.GetString("assembly"),
		Annotation:     v.GetString("annotation"),
		MinCoalesce:    v.GetInt("min-coalesce"),
		SelectedNodeID: v.GetString("select"),
		Colorize:       v.GetBool("colorize"),
		Format:         v.GetString("format"),
		OutputPath:     v.GetString("output"),
		ShowTable:      v.GetBool("table"),
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}
