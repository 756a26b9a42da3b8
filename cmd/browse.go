package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/config"
	"github.com/ziadkadry99/classview/internal/pipeline"
	"github.com/ziadkadry99/classview/internal/prefs"
	"github.com/ziadkadry99/classview/internal/systems"
	"github.com/ziadkadry99/classview/internal/tui"
	"github.com/ziadkadry99/classview/internal/viewer"
)

var browseCmd = &cobra.Command{
	Use:   "browse <input-path> <system-key>",
	Short: "Browse a classification export in the terminal",
	Long: `Opens an interactive tree browser in the terminal. Press / to search,
enter to select, t to switch theme, y to copy the selected code and q to quit.
The theme choice is remembered between runs.`,
	Args: cobra.ExactArgs(2),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	preset, err := systems.Lookup(args[1])
	if err != nil {
		return err
	}
	export, err := pipeline.Load(args[0])
	if err != nil {
		return err
	}

	store := openPreferences(cfg, logger)
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	v := viewer.New(export.Forest,
		viewer.WithPreferences(store),
		viewer.WithSearchDelay(cfg.SearchDelay()),
		viewer.WithLogger(logger),
	)
	return tui.Run(v, preset)
}

// openPreferences opens the on-disk preference store, falling back to an
// in-memory one so browsing still works without a writable config dir.
func openPreferences(cfg *config.Config, logger *slog.Logger) viewer.PreferenceStore {
	path := cfg.Browse.PrefsPath
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			logger.Warn("preferences disabled", "error", err)
			return viewer.NewMemoryPreferences()
		}
		path = p
	}
	store, err := prefs.Open(path)
	if err != nil {
		logger.Warn("preferences disabled", "path", path, "error", err)
		return viewer.NewMemoryPreferences()
	}
	logger.Debug("preferences opened", "path", store.Path())
	return store
}
