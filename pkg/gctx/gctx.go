// Package gctx is the mutable Transform Context threaded explicitly through
// every subtransformer call, rather than placed in global state. It is
// created fresh per source file; only its VisitedPaths,
// ComponentExpansionStack and ComponentProps fields mutate during recursive
// traversal. ComponentExpansionStack is restored on unwind via the
// PushComponent/PopComponent helpers below; entries that MarkVisited adds to
// VisitedPaths are never removed.
package gctx

import (
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/extract"
	"github.com/ormasoftchile/gertx/pkg/gerr"
)

// Dialect distinguishes the two component dialects.
type Dialect string

const (
	Static  Dialect = "static"
	Runtime Dialect = "runtime"
)

// Context is the Transform Context. Create one per source file with New;
// never share an instance across files or goroutines.
type Context struct {
	File      *astview.File
	Path      string
	Namespace string // derived from basename, kebab/snake -> camelCase
	Dialect   Dialect

	Declared *extract.Declarations

	// ComponentExpansionStack is scoped via PushComponent/PopComponent so
	// every exit path (including error returns) restores it. VisitedPaths
	// only grows through MarkVisited and is not restored on unwind.
	VisitedPaths            map[string]bool
	ComponentExpansionStack []string

	// ComponentProps holds the call-site attributes of the local component
	// being expanded; nil outside an expansion. No transformer reads it, so
	// identifiers in the component body are not resolved against it.
	ComponentProps map[string]astview.Expr
}

// New builds a fresh Context for one source file.
func New(path string, namespace string, dialect Dialect, file *astview.File, decl *extract.Declarations) *Context {
	return &Context{
		File:         file,
		Path:         path,
		Namespace:    namespace,
		Dialect:      dialect,
		Declared:     decl,
		VisitedPaths: make(map[string]bool),
	}
}

// PushComponent pushes identifier onto the expansion stack; returns an
// error (without mutating the stack) if identifier is already present,
// catching a custom-component expansion cycle before it recurses forever.
func (c *Context) PushComponent(identifier string, line int) error {
	for _, id := range c.ComponentExpansionStack {
		if id == identifier {
			return gerr.New(gerr.Resolution, c.Path, line,
				"component expansion cycle detected: %q is already being expanded", identifier)
		}
	}
	c.ComponentExpansionStack = append(c.ComponentExpansionStack, identifier)
	return nil
}

// PopComponent pops the most recently pushed component identifier. Callers
// push/pop in a strict LIFO discipline via defer so the stack unwinds on
// every return path, including errors.
func (c *Context) PopComponent() {
	if n := len(c.ComponentExpansionStack); n > 0 {
		c.ComponentExpansionStack = c.ComponentExpansionStack[:n-1]
	}
}

// MarkVisited records that module resolution crossed into path.
func (c *Context) MarkVisited(path string) {
	c.VisitedPaths[path] = true
}

// Errorf builds a located TransformError attached to this context's file.
func (c *Context) Errorf(line int, format string, args ...any) error {
	return gerr.New(gerr.Transform, c.Path, line, format, args...)
}

// ErrorfElement builds a located TransformError naming the offending element.
func (c *Context) ErrorfElement(line int, element string, format string, args ...any) error {
	return gerr.NewElement(gerr.Transform, c.Path, line, element, format, args...)
}

// NamespaceFromBasename derives a runtime namespace identifier from a
// source file's basename (without extension), converting kebab-case or
// snake_case to camelCase.
func NamespaceFromBasename(basename string) string {
	parts := strings.FieldsFunc(basename, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(strings.ToLower(p[1:]))
	}
	return sb.String()
}
