package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coverlay/coverlay/internal/coverage"
	"github.com/coverlay/coverlay/internal/engine"
	"github.com/coverlay/coverlay/internal/reporter/console"
	"github.com/coverlay/coverlay/internal/watcher"
)

// NewWatchCommand creates the watch subcommand: keep the coverage map
// fresh as reports change and reprint the focused file's status.
//
// Focus changes arrive on stdin, one absolute or workspace-relative
// path per line, so an editor integration can pipe its focus events to
// the process. A blank line forces a manual refresh.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch reports and continuously print coverage status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, eng, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			focused := ""

			show := func() {
				mu.Lock()
				target := focused
				mu.Unlock()
				if target == "" {
					return
				}
				coverageMap, builtAt := eng.Snapshot()
				detail, _ := coverage.Match(target, coverageMap)
				fmt.Fprintln(out, console.WatchLine(target, detail, builtAt))
			}

			rebuild := func() {
				// A failed rebuild degrades the display to unknown; it
				// never takes the watcher down.
				if _, err := eng.Refresh(ctx); err != nil {
					if !errors.Is(err, context.Canceled) {
						fmt.Fprintln(out, "coverage: unknown (rebuild failed)")
					}
					return
				}
				show()
			}

			debounce := cfg.Debounce()
			if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
				debounce = interval
			}
			scheduler := engine.NewScheduler(debounce, rebuild)
			defer scheduler.Close()

			w, err := watcher.New(cfg.Workspace, cfg.Globs(), scheduler.Trigger, eng.Logger())
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			go func() {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" {
						scheduler.Trigger()
						continue
					}
					if !filepath.IsAbs(line) {
						line = filepath.Join(cfg.Workspace, line)
					}
					mu.Lock()
					focused = line
					mu.Unlock()
					show()
				}
			}()

			rebuild()
			if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Duration("interval", 0, "debounce window override, e.g. 200ms")
	return cmd
}
