package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/classview/internal/pipeline"
	"github.com/ziadkadry99/classview/internal/server"
	"github.com/ziadkadry99/classview/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve <input-path> <system-key>",
	Short: "Generate a page and preview it over HTTP",
	Long: `Generates the page into the output directory (a temporary one by default)
and serves it locally together with a small JSON API over the same forest.
With --watch the page is regenerated whenever the input file changes and open
browser tabs reload automatically.`,
	Args: cobra.ExactArgs(2),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("output", "o", "", "output directory (default: a temporary directory)")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().Bool("watch", false, "regenerate when the input file changes")
	serveCmd.Flags().Bool("open", false, "open the page in the default browser")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	port := cfg.Serve.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	watchInput, _ := cmd.Flags().GetBool("watch")
	open := cfg.Serve.Open
	if cmd.Flags().Changed("open") {
		open, _ = cmd.Flags().GetBool("open")
	}
	allowAll := cfg.Serve.AllowAllOrigins
	if cmd.Flags().Changed("allow-all-origins") {
		allowAll, _ = cmd.Flags().GetBool("allow-all-origins")
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir, err = os.MkdirTemp("", "classview-*")
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		defer os.RemoveAll(outputDir)
	}

	job := pipeline.Job{Input: args[0], OutputDir: outputDir, System: args[1]}
	srv := server.New(server.Config{Port: port, AllowAll: allowAll, LiveReload: watchInput}, logger)

	opts := pipeline.Options{Logger: logger, SearchDelay: cfg.SearchDelay()}
	if err := regenerate(cmd.Context(), srv, job, opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchInput {
		w, err := watch.New(job.Input,
			watch.WithOnChange(func() {
				if err := regenerate(ctx, srv, job, opts); err != nil {
					logger.Warn("regeneration failed, keeping previous page", "error", err)
				}
			}),
			watch.WithOnError(func(err error) {
				logger.Warn("watcher", "error", err)
			}),
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watching %s: %w", job.Input, err)
		}
		defer w.Stop()
		logger.Info("watching for changes", "path", w.Path())
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", job.Input, url)
	if open {
		if err := server.OpenBrowser(url); err != nil {
			logger.Warn("could not open browser", "error", err)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// regenerate runs the pipeline and hands the new page to the server.
func regenerate(ctx context.Context, srv *server.Server, job pipeline.Job, opts pipeline.Options) error {
	report, err := pipeline.Run(ctx, job, opts)
	if err != nil {
		return err
	}
	page, err := os.ReadFile(report.Path)
	if err != nil {
		return fmt.Errorf("reading generated page: %w", err)
	}
	srv.Update(page, report.Export)
	return nil
}
