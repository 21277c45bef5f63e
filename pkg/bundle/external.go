package bundle

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/gerr"
)

// Invoke hands a generated entry module off to an external JavaScript
// bundler for tree-shaking and minification rather than reimplementing
// either. The compiler's own contribution is only the synthetic source
// handed to bundlerBin; it never parses or transforms the user's
// TypeScript runtime functions itself.
type Invoke struct {
	BundlerBin string // e.g. "esbuild"; resolved via $PATH if relative
	Minify     bool
	OutDir     string
}

// Run writes src to a temporary entry file under outDir and invokes the
// configured bundler to produce dst. When BundlerBin cannot be resolved on
// $PATH, it falls back to FallbackMinify for the generated entry shim only
// (never for opaque user runtime source) so --minify stays meaningful in
// environments without a JS toolchain installed — the dev/test mode this
// repo's own tests run in (SPEC_FULL.md's "--minify flag wiring").
func (iv Invoke) Run(entrySrc string, dst string) error {
	bin := iv.BundlerBin
	if bin == "" {
		bin = "esbuild"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		out := entrySrc
		if iv.Minify {
			out = FallbackMinify(out)
		}
		return os.WriteFile(dst, []byte(out), 0o644)
	}

	tmpEntry := dst + ".entry.mjs"
	if err := os.WriteFile(tmpEntry, []byte(entrySrc), 0o644); err != nil {
		return gerr.New(gerr.Bundling, dst, 0, "writing bundler entry: %v", err)
	}
	defer os.Remove(tmpEntry)

	args := []string{tmpEntry, "--bundle", "--format=esm", "--platform=node", "--outfile=" + dst}
	if iv.Minify {
		args = append(args, "--minify")
	}
	cmd := exec.Command(resolved, args...)
	cmd.Dir = filepath.Dir(dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return gerr.New(gerr.Bundling, dst, 0, "external bundler failed: %v: %s", err, stderr.String())
	}
	return nil
}

var (
	lineCommentRe  = regexp.MustCompile(`(?m)^\s*//.*$`)
	blankRunRe     = regexp.MustCompile(`\n{2,}`)
	trailingSpaces = regexp.MustCompile(`(?m)[ \t]+$`)
)

// FallbackMinify is a deterministic whitespace/comment stripper used only
// when no external bundler binary is resolvable on $PATH. It is
// intentionally naive (line-comment, trailing-whitespace and blank-run
// stripping only): it
// operates exclusively on the compiler's own generated entry/dispatcher
// source, never on the user's runtime-function TypeScript, which this
// compiler does not parse.
func FallbackMinify(src string) string {
	s := lineCommentRe.ReplaceAllString(src, "")
	s = trailingSpaces.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s) + "\n"
}
