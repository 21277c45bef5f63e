// Package bundle implements the Runtime Bundler: it collects the companion
// TypeScript modules contributed by every runtime-dialect source file,
// generates a synthetic entry module (or, in code-split mode, a small
// dispatcher plus one module per namespace), and hands the result to an
// external JavaScript bundler for tree-shaking and minification. The
// compiler never re-implements bundling itself; the external bundler is
// treated as a black box invoked over os/exec.
package bundle

import (
	"fmt"
	"sort"
	"strings"
)

// Unit is one runtime-dialect source file's contribution to the bundle: the
// path of its companion module, the namespace derived from its basename,
// and the function names actually referenced from that file's emitted
// Markdown.
type Unit struct {
	Namespace  string
	ModulePath string // path to the TS module exporting the runtime functions
	Functions  []string
}

// Collector accumulates Units across a build, keyed by namespace so a
// second file contributing to the same namespace (unusual, but not
// forbidden) merges its function set rather than overwriting it.
type Collector struct {
	units map[string]*Unit
	order []string
}

func NewCollector() *Collector {
	return &Collector{units: make(map[string]*Unit)}
}

// Add records fn as used from the given namespace/module. Namespaces are
// kept in first-seen order so generated output is deterministic across
// otherwise-identical builds.
func (c *Collector) Add(namespace, modulePath, fn string) {
	u, ok := c.units[namespace]
	if !ok {
		u = &Unit{Namespace: namespace, ModulePath: modulePath}
		c.units[namespace] = u
		c.order = append(c.order, namespace)
	}
	for _, existing := range u.Functions {
		if existing == fn {
			return
		}
	}
	u.Functions = append(u.Functions, fn)
}

// Units returns the collected units in first-seen namespace order, with
// each unit's function list sorted for deterministic generated source.
func (c *Collector) Units() []Unit {
	out := make([]Unit, 0, len(c.order))
	for _, ns := range c.order {
		u := *c.units[ns]
		sort.Strings(u.Functions)
		out = append(out, u)
	}
	return out
}

// Empty reports whether any runtime-dialect file contributed a unit; the
// orchestrator skips the bundling pass entirely when true.
func (c *Collector) Empty() bool { return len(c.units) == 0 }

func importSpecifier(modulePath string) string {
	spec := modulePath
	if !strings.HasPrefix(spec, ".") && !strings.HasPrefix(spec, "/") {
		spec = "./" + spec
	}
	return strings.TrimSuffix(strings.TrimSuffix(spec, ".tsx"), ".ts")
}

func prefixedName(ns, fn string) string { return fmt.Sprintf("%s_%s", ns, fn) }
