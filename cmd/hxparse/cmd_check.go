package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hxparse/haxe/codebase"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report syntax errors in every Haxe expression file below dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cb := codebase.New(dir, opts.config.Extensions)
			out := cmd.OutOrStdout()

			if watch {
				if interval <= 0 {
					interval = opts.config.Watch.Interval
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				w := codebase.NewFileWatcher(cb, interval, func(path string, info *codebase.FileInfo) {
					if info == nil {
						fmt.Fprintf(out, "%s: removed\n", relPath(dir, path))
						return
					}
					if printDiagnostics(out, dir, info) == 0 {
						fmt.Fprintf(out, "%s: ok\n", relPath(dir, path))
					}
				})
				return w.Run(ctx)
			}

			scanErr := cb.ScanAll(cmd.Context())
			count := 0
			for _, f := range cb.Files() {
				count += printDiagnostics(out, dir, f)
			}
			if scanErr != nil {
				return scanErr
			}
			if count > 0 {
				return fmt.Errorf("%d syntax error(s) in %s", count, dir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and recheck files when they change")
	cmd.Flags().DurationVar(&interval, "interval", 0, "polling interval for --watch (default from config)")

	return cmd
}

func printDiagnostics(w io.Writer, dir string, f *codebase.FileInfo) int {
	diags := f.Diagnostics()
	for _, d := range diags {
		fmt.Fprintf(w, "%s:%s: %s\n", relPath(dir, f.Path), d.Span.Start, d.Message)
	}
	return len(diags)
}

func relPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
