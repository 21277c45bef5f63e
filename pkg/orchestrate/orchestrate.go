// Package orchestrate implements the Build Orchestrator: for each
// discovered source file it runs the extractor, builds the
// Transform Context, dispatches the document-level transform and the
// matching emitter, computes the output path, and writes the rendered
// Markdown; after all files it runs the Runtime Bundler once.
package orchestrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/bundle"
	"github.com/ormasoftchile/gertx/pkg/emit"
	"github.com/ormasoftchile/gertx/pkg/extract"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/gerr"
	"github.com/ormasoftchile/gertx/pkg/ir"
	"github.com/ormasoftchile/gertx/pkg/transform"
)

// Config carries the CLI surface's flags, already layered over any config
// file by pkg/config.
type Config struct {
	CommandsOut string
	AgentsOut   string
	SkillsOut   string
	RuntimeOut  string
	DryRun      bool
	CodeSplit   bool
	Minify      bool
	BundlerBin  string
}

func (c Config) withDefaults() Config {
	if c.CommandsOut == "" {
		c.CommandsOut = ".claude/commands"
	}
	if c.AgentsOut == "" {
		c.AgentsOut = ".claude/agents"
	}
	if c.SkillsOut == "" {
		c.SkillsOut = ".claude/skills"
	}
	if c.RuntimeOut == "" {
		c.RuntimeOut = ".claude/runtime"
	}
	return c
}

// FileResult reports one input file's outcome.
type FileResult struct {
	Source string
	Output string // output path (also set on a dry run); "" if the file failed before it was computed
	Kind   string // "command" | "agent" | "skill"
	Err    error
}

// Report is the accumulated outcome of one Build call.
type Report struct {
	Files      []FileResult
	BundleOut  bundle.Result
	RuntimePath string
}

// Build compiles every file matched by patterns, then runs the bundler
// once over every runtime-dialect file's contribution. It returns as soon
// as one file fails unless continueOnError is set: watch mode reports and
// continues past a per-file error, a one-shot build fails the invocation.
func Build(cfg Config, patterns []string, continueOnError bool) (Report, error) {
	cfg = cfg.withDefaults()
	files, err := discover(patterns)
	if err != nil {
		return Report{}, gerr.New(gerr.Config, "", 0, "resolving input patterns: %v", err)
	}
	sort.Strings(files)

	var report Report
	collector := bundle.NewCollector()

	for _, path := range files {
		res, units, err := compileOne(cfg, path)
		report.Files = append(report.Files, res)
		if err != nil {
			if continueOnError {
				continue
			}
			return report, err
		}
		for _, u := range units {
			for _, fn := range u.Functions {
				collector.Add(u.Namespace, u.ModulePath, fn)
			}
		}
	}

	if !collector.Empty() {
		bres, err := bundle.Write(bundle.Options{
			OutDir:     cfg.RuntimeOut,
			CodeSplit:  cfg.CodeSplit,
			Minify:     cfg.Minify,
			BundlerBin: cfg.BundlerBin,
			DryRun:     cfg.DryRun,
		}, collector.Units())
		if err != nil {
			return report, err
		}
		report.BundleOut = bres
		report.RuntimePath = filepath.Join(cfg.RuntimeOut, "runtime.js")
	}

	return report, nil
}

func discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func compileOne(cfg Config, path string) (FileResult, []bundle.Unit, error) {
	res := FileResult{Source: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = gerr.New(gerr.Config, path, 0, "reading source file: %v", err)
		return res, nil, res.Err
	}

	file, err := astview.Parse(path, src)
	if err != nil {
		res.Err = err
		return res, nil, err
	}

	decl, err := extract.Extract(path, file)
	if err != nil {
		res.Err = err
		return res, nil, err
	}

	dialect := gctx.Static
	if extract.IsRuntimeDialect(file) {
		dialect = gctx.Runtime
	}

	basename := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	namespace := gctx.NamespaceFromBasename(basename)

	ctx := gctx.New(path, namespace, dialect, file, decl)

	root, err := transform.RootElement(file)
	if err != nil {
		res.Err = err
		return res, nil, err
	}

	doc, err := transform.BuildDocument(ctx, root)
	if err != nil {
		res.Err = err
		return res, nil, err
	}

	outPath, kind := outputPath(cfg, doc, basename)
	res.Kind = kind
	res.Output = outPath

	rendered := emit.Document(emit.Options{RuntimePath: filepath.Join(cfg.RuntimeOut, "runtime.js")}, doc)

	if !cfg.DryRun {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			res.Err = gerr.New(gerr.Config, path, 0, "creating output directory: %v", err)
			return res, nil, res.Err
		}
		if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
			res.Err = gerr.New(gerr.Config, path, 0, "writing output file: %v", err)
			return res, nil, res.Err
		}
	}

	if kind == "skill" {
		if sd, ok := doc.(*ir.SkillDocument); ok {
			if err := writeSkillResources(cfg, sd, path, basename); err != nil {
				res.Err = err
				return res, nil, err
			}
		}
	}

	units := collectRuntimeUsage(ctx, namespace, doc)
	return res, units, nil
}

// outputPath derives where a compiled document is written: commands,
// agents, and skills each land under their own configured output root.
func outputPath(cfg Config, doc ir.Document, basename string) (path string, kind string) {
	switch d := doc.(type) {
	case *ir.CommandDocument:
		dir := cfg.CommandsOut
		if d.Subfolder != "" {
			dir = filepath.Join(dir, d.Subfolder)
		}
		return filepath.Join(dir, basename+".md"), "command"

	case *ir.AgentDocument:
		dir := cfg.AgentsOut
		if d.Folder != "" {
			dir = filepath.Join(dir, d.Folder)
		}
		return filepath.Join(dir, basename+".md"), "agent"

	case *ir.SkillDocument:
		dir := cfg.SkillsOut
		if d.Folder != "" {
			dir = filepath.Join(dir, d.Folder)
		}
		return filepath.Join(dir, basename+".md"), "skill"

	default:
		panic("orchestrate: unreachable document variant")
	}
}

// RegisteredAgentName derives an agent's host-registered name from its
// output path relative to agentsOut: `/` separators become `:` (spec
// §4.1), and an agent at the root is named by basename alone.
func RegisteredAgentName(agentsOut, outPath string) string {
	rel, err := filepath.Rel(agentsOut, outPath)
	if err != nil {
		rel = filepath.Base(outPath)
	}
	rel = strings.TrimSuffix(rel, ".md")
	return strings.ReplaceAll(rel, string(filepath.Separator), ":")
}
