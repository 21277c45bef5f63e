package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/gertx/pkg/orchestrate"
	"github.com/ormasoftchile/gertx/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Rebuild on source changes (equivalent to build --watch)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return runWatchLoop(cfg, args)
	},
}

func init() {
	watchCmd.Flags().StringVar(&buildOut, "out", "", "Output directory for compiled commands (default .claude/commands)")
	watchCmd.Flags().StringVar(&buildAgentsOut, "agents-out", "", "Output directory for compiled agents (default .claude/agents)")
	watchCmd.Flags().StringVar(&buildSkillsOut, "skills-out", "", "Output directory for compiled skills (default .claude/skills)")
	watchCmd.Flags().StringVar(&buildRuntimeOut, "runtime-out", "", "Output directory for the runtime bundle (default .claude/runtime)")
	watchCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Run each rebuild without writing any file")
	watchCmd.Flags().BoolVar(&buildCodeSplit, "code-split", false, "Emit one runtime module per namespace instead of a single entry bundle")
	watchCmd.Flags().BoolVar(&buildMinify, "minify", false, "Minify the generated runtime bundle")
	watchCmd.Flags().StringVar(&buildBundlerBin, "bundler-bin", "", "Path to an external JS bundler binary (esbuild or similar)")
	watchCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to a .gertx.yaml/.gertx.toml config file (default: discovered in cwd)")
}

// runWatchLoop runs the fsnotify rebuild loop and the readline control REPL
// side by side; either one stopping (REPL's 'q', or the watcher dying)
// ends the command.
func runWatchLoop(cfg orchestrate.Config, patterns []string) error {
	stop := make(chan struct{})
	forceRebuild := make(chan struct{}, 1)

	go func() {
		if err := watch.Loop(os.Stdout, cfg, patterns, stop, forceRebuild); err != nil {
			fmt.Fprintf(os.Stderr, "! watch loop stopped: %v\n", err)
		}
	}()

	return watch.REPL(os.Stdout, forceRebuild, stop)
}
