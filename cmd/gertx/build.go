package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/gertx/pkg/config"
	"github.com/ormasoftchile/gertx/pkg/orchestrate"
)

var (
	buildOut        string
	buildAgentsOut  string
	buildSkillsOut  string
	buildRuntimeOut string
	buildDryRun     bool
	buildWatch      bool
	buildCodeSplit  bool
	buildMinify     bool
	buildBundlerBin string
	buildConfigPath string
)

var buildCmd = &cobra.Command{
	Use:   "build [patterns...]",
	Short: "Compile component sources into Markdown (and a runtime bundle, if any use control flow)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "", "Output directory for compiled commands (default .claude/commands)")
	buildCmd.Flags().StringVar(&buildAgentsOut, "agents-out", "", "Output directory for compiled agents (default .claude/agents)")
	buildCmd.Flags().StringVar(&buildSkillsOut, "skills-out", "", "Output directory for compiled skills (default .claude/skills)")
	buildCmd.Flags().StringVar(&buildRuntimeOut, "runtime-out", "", "Output directory for the runtime bundle (default .claude/runtime)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Run the full pipeline without writing any file")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild on source changes")
	buildCmd.Flags().BoolVar(&buildCodeSplit, "code-split", false, "Emit one runtime module per namespace instead of a single entry bundle")
	buildCmd.Flags().BoolVar(&buildMinify, "minify", false, "Minify the generated runtime bundle")
	buildCmd.Flags().StringVar(&buildBundlerBin, "bundler-bin", "", "Path to an external JS bundler binary (esbuild or similar)")
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to a .gertx.yaml/.gertx.toml config file (default: discovered in cwd)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if buildWatch {
		return runWatchLoop(cfg, args)
	}

	report, err := orchestrate.Build(cfg, args, false)
	if err != nil {
		orchestrate.PrintSummary(os.Stdout, report)
		return err
	}
	orchestrate.PrintSummary(os.Stdout, report)

	for _, f := range report.Files {
		if f.Err != nil {
			return fmt.Errorf("build failed")
		}
	}
	return nil
}

// resolveConfig layers --config (or a discovered .gertx.yaml/.gertx.toml)
// under the flags actually set on cmd, per pkg/config's documented
// precedence: flag > config-file > built-in default.
func resolveConfig(cmd *cobra.Command) (orchestrate.Config, error) {
	path := buildConfigPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(wd)
		}
	}
	file, err := config.Load(path)
	if err != nil {
		return orchestrate.Config{}, err
	}

	flags := config.FlagOverrides{}
	f := cmd.Flags()
	if f.Changed("out") {
		flags.Out = &buildOut
	}
	if f.Changed("agents-out") {
		flags.AgentsOut = &buildAgentsOut
	}
	if f.Changed("skills-out") {
		flags.SkillsOut = &buildSkillsOut
	}
	if f.Changed("runtime-out") {
		flags.RuntimeOut = &buildRuntimeOut
	}
	if f.Changed("bundler-bin") {
		flags.BundlerBin = &buildBundlerBin
	}
	if f.Changed("dry-run") {
		flags.DryRun = &buildDryRun
	}
	if f.Changed("code-split") {
		flags.CodeSplit = &buildCodeSplit
	}
	if f.Changed("minify") {
		flags.Minify = &buildMinify
	}
	return config.Merge(file, flags), nil
}
