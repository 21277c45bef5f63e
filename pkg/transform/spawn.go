package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// transformSpawnAgent builds a SpawnAgent block. Input is
// either a structured object literal passed via the `input` attribute, or
// a literal prompt string built from the element's text children. Only
// Text children are joined: astview parses a `{...}` in the children as an
// expression child, which is dropped, so a brace placeholder written there
// does not reach the prompt.
func transformSpawnAgent(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	agent := attrString(el, "agent")
	if agent == "" {
		return nil, ctx.ErrorfElement(el.Pos.Line, "SpawnAgent", "SpawnAgent requires an agent attribute")
	}

	spawn := &ir.SpawnAgent{
		AgentName:   agent,
		Model:       attrString(el, "model"),
		Description: attrString(el, "description"),
	}

	if inputExpr, ok := attrExpr(el, "input"); ok {
		structured, err := buildStructuredInput(ctx, inputExpr)
		if err != nil {
			return nil, err
		}
		spawn.Input = structured
	} else {
		spawn.Input = &ir.LiteralPrompt{Text: normalizeMultiLine(inlineTextOf(el.Children))}
	}

	if outExpr, ok := attrExpr(el, "output"); ok {
		ref, err := runtimeVarRefOf(ctx, outExpr)
		if err != nil {
			return nil, err
		}
		spawn.Output = ref
	}

	return spawn, nil
}

func buildStructuredInput(ctx *gctx.Context, e astview.Expr) (*ir.StructuredInput, error) {
	obj, ok := e.(*astview.ObjectLit)
	if !ok {
		return nil, ctx.ErrorfElement(0, "SpawnAgent", "input={...} must be an object literal")
	}
	si := &ir.StructuredInput{Fields: make(map[string]ir.SpawnField, len(obj.Keys))}
	for i, k := range obj.Keys {
		field, err := buildSpawnField(ctx, obj.Values[i])
		if err != nil {
			return nil, err
		}
		si.Fields[k] = field
		si.Keys = append(si.Keys, k)
	}
	return si, nil
}

func buildSpawnField(ctx *gctx.Context, e astview.Expr) (ir.SpawnField, error) {
	switch v := e.(type) {
	case *astview.Ident:
		if rv, ok := ctx.Declared.RuntimeVars[v.Name]; ok {
			ref := &ir.RuntimeVarRef{VarName: rv.ShellName}
			return ir.SpawnField{VarRef: ref}, nil
		}
		return ir.SpawnField{}, ctx.Errorf(v.Pos.Line, "unknown identifier %q in SpawnAgent input", v.Name)

	case *astview.PropAccess:
		root, ok := v.Root.(*astview.Ident)
		if !ok {
			return ir.SpawnField{}, ctx.Errorf(v.Pos.Line, "unsupported SpawnAgent input expression")
		}
		rv, ok := ctx.Declared.RuntimeVars[root.Name]
		if !ok {
			return ir.SpawnField{}, ctx.Errorf(v.Pos.Line, "unknown identifier %q in SpawnAgent input", root.Name)
		}
		ref := &ir.RuntimeVarRef{VarName: rv.ShellName, Path: v.Path}
		return ir.SpawnField{VarRef: ref}, nil

	default:
		lit, err := toLiteral(ctx, e)
		if err != nil {
			return ir.SpawnField{}, err
		}
		return ir.SpawnField{Literal: &lit}, nil
	}
}

func runtimeVarRefOf(ctx *gctx.Context, e astview.Expr) (*ir.RuntimeVarRef, error) {
	switch v := e.(type) {
	case *astview.Ident:
		rv, ok := ctx.Declared.RuntimeVars[v.Name]
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unknown identifier %q (not a declared runtime variable)", v.Name)
		}
		return &ir.RuntimeVarRef{VarName: rv.ShellName}, nil
	case *astview.PropAccess:
		root, ok := v.Root.(*astview.Ident)
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unsupported output expression")
		}
		rv, ok := ctx.Declared.RuntimeVars[root.Name]
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unknown identifier %q (not a declared runtime variable)", root.Name)
		}
		return &ir.RuntimeVarRef{VarName: rv.ShellName, Path: v.Path}, nil
	default:
		return nil, ctx.Errorf(0, "unsupported output expression")
	}
}
