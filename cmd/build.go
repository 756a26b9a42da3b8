package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/pipeline"
	"github.com/ziadkadry99/classview/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate every target listed in the config file",
	Long: `Generates one page per configured target. Target inputs may be globs; a glob
matching several files writes each page into a subdirectory named after its
input file.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().IntP("concurrency", "j", 0, "maximum pages generated at once (default from config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Targets) == 0 {
		return errors.New("no targets configured\nRun `classview init` or add a targets section to " + cfgFile)
	}

	jobs, err := pipeline.ExpandTargets(cfg.Targets)
	if err != nil {
		return err
	}

	concurrency := cfg.Build.Concurrency
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		concurrency = n
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Building %d page(s)\n", len(jobs))

	reports, err := pipeline.RunAll(cmd.Context(), jobs, pipeline.Options{
		Logger:      newLogger(cmd, cfg),
		Reporter:    progress.NewReporter(out),
		SearchDelay: cfg.SearchDelay(),
		Concurrency: concurrency,
	})
	for _, r := range reports {
		if r == nil {
			continue
		}
		fmt.Fprintf(out, "\n%s (%s)\n", r.Job.Input, r.System.Key)
		for _, line := range r.Summary() {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return err
}
