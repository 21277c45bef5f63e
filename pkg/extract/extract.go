// Package extract implements the Declaration Extractor: a single pass over
// one source file's top-level statements that finds variable declarations,
// runtime-function wrappers, local components and imports, populating the
// data the Transform Context needs. Source-helper calls are not recorded
// here; IsSourceHelper recognizes them at the call site.
package extract

import (
	"bytes"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gerr"
)

// RuntimeVar is a `const v = useRuntimeVar<T>('NAME')` binding.
type RuntimeVar struct {
	ShellName string
	Type      string
}

// RuntimeFn is a `const F = runtimeFn(fn)` wrapper binding.
type RuntimeFn struct {
	WrapperIdent string
	FnName       string
}

// Declarations is everything the extractor found in one source file.
type Declarations struct {
	// Variables maps a static-dialect binding identifier to its shell
	// variable name: `const v = useVariable('NAME')` -> Variables["v"] = "NAME".
	Variables map[string]string

	// RuntimeVars maps a runtime-dialect binding identifier to its shell
	// variable name and captured type argument.
	RuntimeVars map[string]RuntimeVar

	// RuntimeFns maps the wrapper identifier to the wrapped function name.
	RuntimeFns map[string]RuntimeFn

	// LocalComponents maps a function identifier to its declaration, for
	// function declarations (in this file) that return JSX.
	LocalComponents map[string]*astview.FuncDecl

	// Imports maps a bound identifier to its module specifier, for
	// resolving local components across the import graph.
	Imports map[string]string
}

func newDeclarations() *Declarations {
	return &Declarations{
		Variables:       make(map[string]string),
		RuntimeVars:     make(map[string]RuntimeVar),
		RuntimeFns:      make(map[string]RuntimeFn),
		LocalComponents: make(map[string]*astview.FuncDecl),
		Imports:         make(map[string]string),
	}
}

// Extract scans file's top-level statements and returns its declarations,
// or a ResolutionError for a duplicate identifier / a TransformError for
// an unsupported destructuring binding.
func Extract(path string, file *astview.File) (*Declarations, error) {
	d := newDeclarations()

	registered := func(name string) bool {
		if _, ok := d.Variables[name]; ok {
			return true
		}
		if _, ok := d.RuntimeVars[name]; ok {
			return true
		}
		if _, ok := d.RuntimeFns[name]; ok {
			return true
		}
		if _, ok := d.LocalComponents[name]; ok {
			return true
		}
		return false
	}

	for _, stmt := range file.Statements {
		switch s := stmt.(type) {
		case *astview.Import:
			for _, n := range s.Names {
				d.Imports[n] = s.Specifier
			}

		case *astview.FuncDecl:
			if s.Body == nil {
				continue
			}
			name := s.Name
			if name == "" {
				continue // the file's default-exported root function, not a local component
			}
			if registered(name) {
				return nil, gerr.New(gerr.Resolution, path, s.Pos.Line, "duplicate declaration of %q", name)
			}
			d.LocalComponents[name] = s

		case *astview.ConstDecl:
			if s.Name == "" {
				return nil, gerr.New(gerr.Transform, path, s.Pos.Line,
					"destructuring of useVariable/useRuntimeVar bindings is not supported; bind to a single identifier instead")
			}
			call, ok := s.Init.(*astview.Call)
			if !ok {
				continue
			}
			callee, ok := call.Callee.(*astview.Ident)
			if !ok {
				continue
			}
			switch callee.Name {
			case "useVariable":
				shellName, err := firstStringArg(path, call)
				if err != nil {
					return nil, err
				}
				if registered(s.Name) {
					return nil, gerr.New(gerr.Resolution, path, s.Pos.Line, "duplicate declaration of %q", s.Name)
				}
				d.Variables[s.Name] = shellName

			case "useRuntimeVar":
				shellName, err := firstStringArg(path, call)
				if err != nil {
					return nil, err
				}
				if registered(s.Name) {
					return nil, gerr.New(gerr.Resolution, path, s.Pos.Line, "duplicate declaration of %q", s.Name)
				}
				d.RuntimeVars[s.Name] = RuntimeVar{ShellName: shellName, Type: call.TypeArg}

			case "runtimeFn":
				if len(call.Args) == 0 {
					return nil, gerr.New(gerr.Transform, path, s.Pos.Line, "runtimeFn(...) requires a function argument")
				}
				fnIdent, ok := call.Args[0].(*astview.Ident)
				if !ok {
					return nil, gerr.New(gerr.Transform, path, s.Pos.Line, "runtimeFn(...) argument must be a bare function identifier")
				}
				if registered(s.Name) {
					return nil, gerr.New(gerr.Resolution, path, s.Pos.Line, "duplicate declaration of %q", s.Name)
				}
				d.RuntimeFns[s.Name] = RuntimeFn{WrapperIdent: s.Name, FnName: fnIdent.Name}
			}
		}
	}

	return d, nil
}

func firstStringArg(path string, call *astview.Call) (string, error) {
	if len(call.Args) == 0 {
		return "", gerr.New(gerr.Transform, path, 0, "expected a string literal argument")
	}
	lit, ok := call.Args[0].(*astview.StringLit)
	if !ok {
		return "", gerr.New(gerr.Transform, path, 0, "expected a string literal as the first argument")
	}
	return lit.Value, nil
}

// IsRuntimeDialect reports whether a file is runtime dialect: it contains
// the identifier `useRuntimeVar` or `runtimeFn`, or a named import whose
// module specifier ends `/v3`.
func IsRuntimeDialect(file *astview.File) bool {
	if bytes.Contains(file.Source, []byte("useRuntimeVar")) || bytes.Contains(file.Source, []byte("runtimeFn")) {
		return true
	}
	for _, stmt := range file.Statements {
		if imp, ok := stmt.(*astview.Import); ok && strings.HasSuffix(imp.Specifier, "/v3") {
			return true
		}
	}
	return false
}

// IsSourceHelper reports whether name is one of the recognized source
// helper identifiers (`file`, `bash`, `value`, `env`); these are recognized
// by identifier at the call site, not by type.
func IsSourceHelper(name string) bool {
	switch name {
	case "file", "bash", "value", "env":
		return true
	}
	return false
}
