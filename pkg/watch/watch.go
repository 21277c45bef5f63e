// Package watch drives the `--watch` / `gertx watch` rebuild loop: real
// file-change events from fsnotify drive a debounced rebuild, with a
// one-shot-then-loop structure and a status-icon build summary
// (orchestrate.PrintSummary) after each pass.
package watch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"

	"github.com/ormasoftchile/gertx/pkg/orchestrate"
)

// debounce is how long to wait after the last fs event before rebuilding,
// coalescing a burst of saves (e.g. an editor's atomic-rename write) into
// one rebuild.
const debounce = 150 * time.Millisecond

// Loop watches the directories containing every pattern match and
// rebuilds on change until stop is closed. It never returns a build error
// itself — per-file errors are logged and the watcher keeps running — only
// a fatal watcher-setup error is returned.
func Loop(w io.Writer, cfg orchestrate.Config, patterns []string, stop <-chan struct{}, forceRebuild <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(patterns)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}

	rebuild := func() {
		report, err := orchestrate.Build(cfg, patterns, true)
		if err != nil {
			fmt.Fprintf(w, "! %v\n", err)
			return
		}
		orchestrate.PrintSummary(w, report)
	}

	rebuild()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-stop:
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSourceChange(ev) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case <-pending:
			rebuild()

		case <-forceRebuild:
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "! watch error: %v\n", err)
		}
	}
}

func isSourceChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	ext := filepath.Ext(ev.Name)
	return ext == ".tsx" || ext == ".jsx" || ext == ".ts"
}

// REPL runs the interactive watch-mode control surface on stdin/stdout:
// 'r' forces an immediate rebuild, 'q' stops the watcher. Grounded on the
// teacher's pkg/debugger readline REPL (same chzyer/readline Config shape,
// same "blank line continues, unknown command warns" loop), scaled down to
// two commands since watch mode has no step state to inspect.
func REPL(w io.Writer, forceRebuild chan<- struct{}, stop chan<- struct{}) error {
	completer := readline.NewPrefixCompleter(readline.PcItem("r"), readline.PcItem("q"))
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gertx[watch]> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return fmt.Errorf("init watch REPL: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(w, "watching for changes. 'r' rebuilds now, 'q' quits.")
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				close(stop)
				return nil
			}
			return err
		}
		switch strings.TrimSpace(line) {
		case "r":
			select {
			case forceRebuild <- struct{}{}:
			default:
			}
		case "q":
			close(stop)
			return nil
		case "":
			continue
		default:
			fmt.Fprintf(w, "unknown command %q: use 'r' or 'q'\n", line)
		}
	}
}

func watchDirs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	for _, pat := range patterns {
		dir := filepath.Dir(pat)
		if dir == "" {
			dir = "."
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		dirs = append(dirs, ".")
	}
	return dirs, nil
}
