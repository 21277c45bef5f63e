package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// buildPathExpr compiles a string-literal or template-literal expression
// into an ir.PathExpr, resolving each `${ident}` / `${ident.path}`
// interpolation against declared variables.
func buildPathExpr(ctx *gctx.Context, e astview.Expr) (ir.PathExpr, error) {
	switch v := e.(type) {
	case *astview.StringLit:
		return ir.PathExpr{Segments: []string{v.Value}}, nil

	case *astview.TemplateLit:
		pe := ir.PathExpr{Segments: append([]string(nil), v.Parts...)}
		for _, sub := range v.Exprs {
			ref, err := resolvePathRef(ctx, sub)
			if err != nil {
				return ir.PathExpr{}, err
			}
			pe.Refs = append(pe.Refs, ref)
		}
		return pe, nil

	default:
		return ir.PathExpr{}, ctx.Errorf(0, "expected a string or template literal path")
	}
}

func resolvePathRef(ctx *gctx.Context, e astview.Expr) (ir.PathRef, error) {
	switch v := e.(type) {
	case *astview.Ident:
		if shellName, ok := ctx.Declared.Variables[v.Name]; ok {
			return ir.PathRef{ShellVar: shellName}, nil
		}
		if rv, ok := ctx.Declared.RuntimeVars[v.Name]; ok {
			return ir.PathRef{RuntimeVar: rv.ShellName}, nil
		}
		return ir.PathRef{}, ctx.Errorf(v.Pos.Line, "unknown identifier %q in path interpolation", v.Name)

	case *astview.PropAccess:
		root, ok := v.Root.(*astview.Ident)
		if !ok {
			return ir.PathRef{}, ctx.Errorf(v.Pos.Line, "path interpolation property access must be rooted at a variable reference")
		}
		rv, ok := ctx.Declared.RuntimeVars[root.Name]
		if !ok {
			return ir.PathRef{}, ctx.Errorf(v.Pos.Line, "unknown identifier %q in path interpolation", root.Name)
		}
		return ir.PathRef{RuntimeVar: rv.ShellName, Path: v.Path}, nil

	default:
		return ir.PathRef{}, ctx.Errorf(0, "unsupported path interpolation expression")
	}
}

// buildDataSource interprets an Assign `from` call expression into the
// closed DataSource union.
func buildDataSource(ctx *gctx.Context, e astview.Expr) (ir.DataSource, error) {
	call, ok := e.(*astview.Call)
	if !ok {
		return nil, ctx.ErrorfElement(0, "Assign", "from={...} must be a call to file(), bash(), value(), env(), or a registered runtime function")
	}
	callee, ok := call.Callee.(*astview.Ident)
	if !ok {
		return nil, ctx.ErrorfElement(0, "Assign", "unsupported from={...} expression")
	}

	if rf, ok := ctx.Declared.RuntimeFns[callee.Name]; ok {
		args, order, err := literalArgMap(ctx, firstArgOrEmpty(call))
		if err != nil {
			return nil, err
		}
		return &ir.RuntimeFnSource{Namespace: ctx.Namespace, Function: rf.FnName, Args: args, ArgOrder: order}, nil
	}

	switch callee.Name {
	case "file":
		if len(call.Args) == 0 {
			return nil, ctx.ErrorfElement(0, "Assign", "file(...) requires a path argument")
		}
		path, err := buildPathExpr(ctx, call.Args[0])
		if err != nil {
			return nil, err
		}
		optional := false
		if len(call.Args) > 1 {
			optional = boolOption(call.Args[1], "optional")
		}
		return &ir.FileSource{Path: path, Optional: optional}, nil

	case "bash":
		if len(call.Args) == 0 {
			return nil, ctx.ErrorfElement(0, "Assign", "bash(...) requires a command argument")
		}
		cmd, err := buildPathExpr(ctx, call.Args[0])
		if err != nil {
			return nil, err
		}
		return &ir.BashSource{Command: cmd}, nil

	case "value":
		if len(call.Args) == 0 {
			return nil, ctx.ErrorfElement(0, "Assign", "value(...) requires a literal argument")
		}
		lit, ok := call.Args[0].(*astview.StringLit)
		if !ok {
			return nil, ctx.ErrorfElement(0, "Assign", "value(...) argument must be a string literal")
		}
		raw := false
		if len(call.Args) > 1 {
			raw = boolOption(call.Args[1], "raw")
		}
		return &ir.ValueSource{Literal: lit.Value, Raw: raw}, nil

	case "env":
		if len(call.Args) == 0 {
			return nil, ctx.ErrorfElement(0, "Assign", "env(...) requires a variable name argument")
		}
		lit, ok := call.Args[0].(*astview.StringLit)
		if !ok {
			return nil, ctx.ErrorfElement(0, "Assign", "env(...) argument must be a string literal")
		}
		return &ir.EnvSource{Name: lit.Value}, nil

	default:
		return nil, ctx.ErrorfElement(0, "Assign", "unknown data source %q; expected file, bash, value, env, or a registered runtime function", callee.Name)
	}
}

func firstArgOrEmpty(call *astview.Call) astview.Expr {
	if len(call.Args) == 0 {
		return &astview.ObjectLit{}
	}
	return call.Args[0]
}

func boolOption(e astview.Expr, key string) bool {
	obj, ok := e.(*astview.ObjectLit)
	if !ok {
		return false
	}
	for i, k := range obj.Keys {
		if k == key {
			if b, ok := obj.Values[i].(*astview.BoolLit); ok {
				return b.Value
			}
		}
	}
	return false
}

// literalArgMap converts an object-literal expression into the literal-only
// argument map RuntimeCall/RuntimeFnSource require: string,
// number, boolean, and nested literal objects only.
func literalArgMap(ctx *gctx.Context, e astview.Expr) (map[string]ir.Literal, []string, error) {
	obj, ok := e.(*astview.ObjectLit)
	if !ok {
		return nil, nil, ctx.ErrorfElement(0, "Call", "args must be an object literal")
	}
	args := make(map[string]ir.Literal, len(obj.Keys))
	var order []string
	for i, k := range obj.Keys {
		lit, err := toLiteral(ctx, obj.Values[i])
		if err != nil {
			return nil, nil, err
		}
		args[k] = lit
		order = append(order, k)
	}
	return args, order, nil
}

// toLiteral converts an expression to a Literal, rejecting anything that
// isn't a compile-time literal — spec §4.8's "Runtime-variable substitution
// inside arg values is not supported in this revision" limitation.
func toLiteral(ctx *gctx.Context, e astview.Expr) (ir.Literal, error) {
	switch v := e.(type) {
	case *astview.StringLit:
		return ir.StringLiteral{Value: v.Value}, nil
	case *astview.NumberLit:
		return ir.NumberLiteral{Value: v.Value}, nil
	case *astview.BoolLit:
		return ir.BoolLiteral{Value: v.Value}, nil
	case *astview.TemplateLit:
		if len(v.Exprs) == 0 {
			return ir.StringLiteral{Value: v.Parts[0]}, nil
		}
		return nil, ctx.Errorf(v.Pos.Line,
			"call argument is not a literal; runtime-variable references inside call args are not supported — pass a literal value instead")
	case *astview.ObjectLit:
		keys := append([]string(nil), v.Keys...)
		vals := make(map[string]ir.Literal, len(keys))
		for i, k := range keys {
			lit, err := toLiteral(ctx, v.Values[i])
			if err != nil {
				return nil, err
			}
			vals[k] = lit
		}
		return ir.ObjectLiteral{Keys: keys, Values: vals}, nil
	default:
		return nil, ctx.Errorf(0,
			"call argument is not a literal; runtime-variable references inside call args are not supported — pass a literal value instead")
	}
}
