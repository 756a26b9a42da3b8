package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/config"
	"github.com/ziadkadry99/classview/internal/pipeline"
	"github.com/ziadkadry99/classview/internal/progress"
	"github.com/ziadkadry99/classview/internal/systems"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "classview <input-path> <output-directory> <system-key>",
	Short: "Generate a searchable HTML browser for a classification system",
	Long: `classview reads a classification export (a JSON document whose
System.Items.Item list holds coded items that nest through Children.Item,
with every field wrapped in a single-element array) and writes a single
self-contained index.html that renders the hierarchy as a searchable,
expandable tree with a detail panel.

The system key selects the title, description, icon and accent colour of the
page. Run "classview systems" to list the known keys.`,
	Example: `  classview uniclass.json site uniclass
  classview build
  classview serve uniclass.json uniclass --watch --open`,
	Args:          generatorArgs,
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// usageError marks failures caused by bad invocation; Execute prints the
// command usage after them.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func generatorArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return &usageError{fmt.Errorf("expected 3 arguments <input-path> <output-directory> <system-key>, got %d", len(args))}
	}
	if _, err := systems.Lookup(args[2]); err != nil {
		return &usageError{err}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	out := cmd.OutOrStdout()

	job := pipeline.Job{Input: args[0], OutputDir: args[1], System: args[2]}
	fmt.Fprintf(out, "Generating %s browser from %s\n", job.System, job.Input)

	report, err := pipeline.Run(cmd.Context(), job, pipeline.Options{
		Logger:      logger,
		Reporter:    progress.NewReporter(out),
		SearchDelay: cfg.SearchDelay(),
	})
	if err != nil {
		return err
	}

	for _, line := range report.Summary() {
		fmt.Fprintln(out, line)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return execute(context.Background())
}

func execute(ctx context.Context) error {
	c, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		errOut := rootCmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(errOut, c.UsageString())
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
