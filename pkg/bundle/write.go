package bundle

import (
	"os"
	"path/filepath"

	"github.com/ormasoftchile/gertx/pkg/gerr"
)

// Options configures one bundling pass: the CLI's `--runtime-out`,
// `--code-split`, and `--minify` flags.
type Options struct {
	OutDir     string
	CodeSplit  bool
	Minify     bool
	BundlerBin string
	DryRun     bool
}

// Result reports what Write produced, for the orchestrator's build report.
type Result struct {
	Files []string // paths written, relative to OutDir
}

// Write runs the bundler's single-entry or code-split mode over units and
// writes the resulting script(s) under opts.OutDir: `runtime.js` plus, in
// code-split mode, one `<namespace>.js` per runtime-dialect input. In
// dry-run mode no files are written; Result still reports what would have
// been.
func Write(opts Options, units []Unit) (Result, error) {
	if len(units) == 0 {
		return Result{}, nil
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return Result{}, gerr.New(gerr.Bundling, opts.OutDir, 0, "creating runtime output directory: %v", err)
		}
	}

	iv := Invoke{BundlerBin: opts.BundlerBin, Minify: opts.Minify, OutDir: opts.OutDir}

	if !opts.CodeSplit {
		dst := filepath.Join(opts.OutDir, "runtime.js")
		entry := GenerateSingleEntry(units)
		if opts.DryRun {
			return Result{Files: []string{"runtime.js"}}, nil
		}
		if err := iv.Run(entry, dst); err != nil {
			return Result{}, err
		}
		return Result{Files: []string{"runtime.js"}}, nil
	}

	var res Result
	res.Files = append(res.Files, "runtime.js")
	if !opts.DryRun {
		dst := filepath.Join(opts.OutDir, "runtime.js")
		if err := iv.Run(GenerateDispatcher(units), dst); err != nil {
			return Result{}, err
		}
	}
	for _, u := range units {
		name := u.Namespace + ".js"
		res.Files = append(res.Files, name)
		if opts.DryRun {
			continue
		}
		dst := filepath.Join(opts.OutDir, name)
		if err := iv.Run(GenerateNamespaceModule(u), dst); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
