package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/analyzer"
	"github.com/penwyp/go-nfc-checklist/internal/data/watcher"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// settleDelay groups the burst of events a single save produces.
const settleDelay = 200 * time.Millisecond

// watchAndRun runs the analyzer once, then again after every change to input,
// until ctx is cancelled or the process is interrupted. Run errors are reported
// and the loop keeps going, so a half-written file does not end the session.
func watchAndRun(ctx context.Context, a *analyzer.Analyzer, input string, errOut io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(input)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", input, err)
	}
	defer fw.Close()

	runOnce := func() {
		if _, err := a.Run(); err != nil {
			util.LogError("Checklist run failed", util.F("error", err.Error()))
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}

	runOnce()
	util.LogInfo("Watching for changes", util.F("input", input))

	for {
		select {
		case <-ctx.Done():
			a.Stats().PrintFinalStats()
			return nil
		case _, ok := <-fw.Events():
			if !ok {
				return nil
			}
			if !settle(ctx, fw.Events()) {
				a.Stats().PrintFinalStats()
				return nil
			}
			runOnce()
		}
	}
}

// settle drains events until none arrive for settleDelay. It returns false
// when ctx ends first.
func settle(ctx context.Context, events <-chan watcher.FileEvent) bool {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-events:
			if !ok {
				return true
			}
			timer.Reset(settleDelay)
		case <-timer.C:
			return true
		}
	}
}
