package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/docsplit/internal/observability"
	"github.com/jonathan/docsplit/internal/pipeline"
	"github.com/jonathan/docsplit/internal/watch"
)

var devCommand = &cobra.Command{
	Use:   "dev",
	Short: "Build once, then watch the source tree and rebuild on change",
	Long: `Runs a full build, then watches the source tree and rebuilds whenever a
document changes. Fence errors are reported but do not stop the watch loop;
fix the document and save again. Stop with Ctrl-C.`,
	RunE: runDevCmd,
}

var devOpts buildFlags

func init() {
	addConfigFlags(devCommand, &devOpts)
	rootCmd.AddCommand(devCommand)
}

func runDevCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &devOpts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.Options{
		Source:      cfg.Source,
		Output:      cfg.Output,
		Tracks:      tracksFor(cfg),
		Extensions:  cfg.Extensions,
		Concurrency: cfg.Concurrency,
		Printer:     printer,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rebuild := func() {
		if _, err := pipeline.Run(ctx, opts); err != nil {
			// A rebuild is idempotent over the whole tree, so the dev loop
			// survives bad documents: report and keep watching.
			fmt.Fprintf(cmd.ErrOrStderr(), "build failed: %v\n", err)
		}
	}
	rebuild()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s for changes\n", cfg.Source)
	err = watch.Watch(ctx, cfg.Source, cfg.Extensions, watch.DefaultDebounce, func(changed []string) {
		for _, p := range changed {
			printer.PrintWatchEvent(p)
		}
		rebuild()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
