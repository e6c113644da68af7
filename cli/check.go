package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/commodities/loader"
)

const debounceDelay = 100 * time.Millisecond

type CheckCmd struct {
	File  FileOrStdin `help:"Price database filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch bool        `help:"Check again whenever the file or one of its includes changes." short:"w"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Watch && cmd.File.IsStdin() {
		return fmt.Errorf("--watch needs a file, not stdin")
	}

	result, ok := cmd.check(ctx, globals)
	if !cmd.Watch {
		if !ok {
			return NewCommandError(1)
		}
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cmd.watch(runCtx, ctx, globals, result)
}

// check loads the file into a fresh pool and reports the outcome. The
// result is returned even when lines failed, so its includes can be watched.
func (cmd *CheckCmd) check(ctx *kong.Context, globals *Globals) (*loader.Result, bool) {
	s, err := globals.newSession(ctx, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return nil, false
	}
	defer s.close()

	ldr := loader.New(loader.WithFollowIncludes())
	result, err := cmd.File.Load(s.ctx, ldr, s.pool)
	if err != nil {
		source, _ := cmd.File.GetSourceContent()
		renderer := NewErrorRenderer(cmd.File.GetAbsoluteFilename(), source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll([]error{err}))
		_, _ = fmt.Fprintln(ctx.Stderr)

		var loadErrs loader.LoadErrors
		if stderrors.As(err, &loadErrs) {
			printError(ctx.Stderr, fmt.Sprintf("%d error(s) found", len(loadErrs)))
		} else {
			printError(ctx.Stderr, "load error")
		}
		return result, false
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d prices, %d conversions in %d file(s)",
		result.Prices, result.Conversions, 1+len(result.Includes)))
	return result, true
}

// watchList returns the root file and, when known, every file it includes.
func (cmd *CheckCmd) watchList(result *loader.Result) map[string]bool {
	files := map[string]bool{cmd.File.GetAbsoluteFilename(): true}
	if result != nil {
		for _, include := range result.Includes {
			files[include] = true
		}
	}
	return files
}

// watch checks the file again after every burst of changes until runCtx is
// done.
func (cmd *CheckCmd) watch(runCtx context.Context, ctx *kong.Context, globals *Globals, result *loader.Result) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	watched := make(map[string]bool)
	update := func(result *loader.Result) {
		files := cmd.watchList(result)

		// Remove watches for files no longer included
		for file := range watched {
			if !files[file] {
				_ = watcher.Remove(file)
				delete(watched, file)
			}
		}

		// Re-add the rest to catch files that were replaced
		for file := range files {
			if err := watcher.Add(file); err != nil {
				printError(ctx.Stderr, fmt.Sprintf("failed to watch %s: %v", file, err))
				continue
			}
			watched[file] = true
		}
	}

	update(result)
	printInfof(ctx.Stderr, "Watching %s for changes", pathStyle.Render(cmd.File.Filename))

	reload := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			printInfof(ctx.Stderr, "%s changed, checking again", pathStyle.Render(cmd.File.Filename))
			result, _ = cmd.check(ctx, globals)
			update(result)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("file watcher error: %v", err))
		}
	}
}
