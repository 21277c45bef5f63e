// Package config loads the optional `.gertx.yaml`/`.gertx.toml` project
// config file and layers CLI flag values over it, over built-in defaults:
// flag values win over file values, which win over built-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/gertx/pkg/gerr"
	"github.com/ormasoftchile/gertx/pkg/orchestrate"
)

// File is the on-disk shape of `.gertx.yaml`/`.gertx.toml`: the same keys
// as the CLI flags.
type File struct {
	Out        string `yaml:"out" toml:"out"`
	AgentsOut  string `yaml:"agents-out" toml:"agents-out"`
	SkillsOut  string `yaml:"skills-out" toml:"skills-out"`
	RuntimeOut string `yaml:"runtime-out" toml:"runtime-out"`
	DryRun     bool   `yaml:"dry-run" toml:"dry-run"`
	Watch      bool   `yaml:"watch" toml:"watch"`
	CodeSplit  bool   `yaml:"code-split" toml:"code-split"`
	Minify     bool   `yaml:"minify" toml:"minify"`
	BundlerBin string `yaml:"bundler-bin" toml:"bundler-bin"`
}

// Load reads path (a YAML or TOML file, chosen by extension) into a File.
// A missing path is not an error: it returns the zero File so defaults and
// flags alone apply.
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, gerr.New(gerr.Config, path, 0, "reading config file: %v", err)
	}
	if isTomlPath(path) {
		if err := toml.Unmarshal(data, &f); err != nil {
			return f, gerr.New(gerr.Config, path, 0, "parsing TOML config: %v", err)
		}
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, gerr.New(gerr.Config, path, 0, "parsing YAML config: %v", err)
	}
	return f, nil
}

func isTomlPath(path string) bool {
	return len(path) >= 5 && path[len(path)-5:] == ".toml"
}

// Discover looks for `.gertx.yaml` then `.gertx.toml` in dir, returning the
// first one found, or "" if neither exists.
func Discover(dir string) string {
	for _, name := range []string{".gertx.yaml", ".gertx.toml"} {
		p := dir + string(os.PathSeparator) + name
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FlagOverrides captures which CLI flags the user actually set (Cobra's
// Changed() per-flag), so an unset flag doesn't shadow a config-file value
// with its own zero default.
type FlagOverrides struct {
	Out, AgentsOut, SkillsOut, RuntimeOut, BundlerBin *string
	DryRun, Watch, CodeSplit, Minify                  *bool
}

// Merge layers flags (only the ones actually set) over file, over
// orchestrate's own built-in defaults.
func Merge(file File, flags FlagOverrides) orchestrate.Config {
	cfg := orchestrate.Config{
		CommandsOut: file.Out,
		AgentsOut:   file.AgentsOut,
		SkillsOut:   file.SkillsOut,
		RuntimeOut:  file.RuntimeOut,
		DryRun:      file.DryRun,
		CodeSplit:   file.CodeSplit,
		Minify:      file.Minify,
		BundlerBin:  file.BundlerBin,
	}
	if flags.Out != nil {
		cfg.CommandsOut = *flags.Out
	}
	if flags.AgentsOut != nil {
		cfg.AgentsOut = *flags.AgentsOut
	}
	if flags.SkillsOut != nil {
		cfg.SkillsOut = *flags.SkillsOut
	}
	if flags.RuntimeOut != nil {
		cfg.RuntimeOut = *flags.RuntimeOut
	}
	if flags.BundlerBin != nil {
		cfg.BundlerBin = *flags.BundlerBin
	}
	if flags.DryRun != nil {
		cfg.DryRun = *flags.DryRun
	}
	if flags.CodeSplit != nil {
		cfg.CodeSplit = *flags.CodeSplit
	}
	if flags.Minify != nil {
		cfg.Minify = *flags.Minify
	}
	return cfg
}
