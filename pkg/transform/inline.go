package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// transformInlineElement handles the fixed inline-tag set:
// strong/b, em/i, code, a, br.
func transformInlineElement(ctx *gctx.Context, el *astview.Element) (ir.Inline, error) {
	switch el.Name {
	case "strong", "b":
		children, err := transformInlineChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Bold{Children: children}, nil

	case "em", "i":
		children, err := transformInlineChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Italic{Children: children}, nil

	case "code":
		text := inlineTextOf(el.Children)
		return &ir.InlineCode{Value: text}, nil

	case "a":
		href := attrString(el, "href")
		children, err := transformInlineChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Link{Target: href, Label: children}, nil

	case "br":
		return &ir.LineBreak{}, nil

	default:
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "unsupported inline element %q", el.Name)
	}
}

// transformInlineChildren converts a run of JSX children appearing inside
// an inline context (bold/italic/link) into Inline nodes, flattening
// nested elements and text.
func transformInlineChildren(ctx *gctx.Context, children []astview.JSXChild) ([]ir.Inline, error) {
	var out []ir.Inline
	for _, child := range children {
		switch c := child.(type) {
		case *astview.Text:
			if isWhitespaceOnly(c.Value) {
				continue
			}
			out = append(out, &ir.Text{Value: normalizeSingleLine(c.Value)})
		case *astview.ExprChild:
			inl, err := transformInlineExpr(ctx, c.Expr)
			if err != nil {
				return nil, err
			}
			if inl != nil {
				out = append(out, inl)
			}
		case *astview.ElementChild:
			inl, err := transformInlineElement(ctx, c.Element)
			if err != nil {
				return nil, err
			}
			out = append(out, inl)
		}
	}
	return out, nil
}

// transformInlineExpr handles a `{expr}` appearing in inline/paragraph
// position: a runtime-variable reference (runtime dialect only) or a bare
// string/number literal rendered as text.
func transformInlineExpr(ctx *gctx.Context, e astview.Expr) (ir.Inline, error) {
	switch v := e.(type) {
	case *astview.Ident:
		rv, ok := ctx.Declared.RuntimeVars[v.Name]
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unknown identifier %q in JSX expression (not a declared runtime variable)", v.Name)
		}
		return &ir.RuntimeVarRef{VarName: rv.ShellName}, nil

	case *astview.PropAccess:
		root, ok := v.Root.(*astview.Ident)
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unsupported property access in JSX expression")
		}
		rv, ok := ctx.Declared.RuntimeVars[root.Name]
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "unknown identifier %q in JSX expression (not a declared runtime variable)", root.Name)
		}
		return &ir.RuntimeVarRef{VarName: rv.ShellName, Path: v.Path}, nil

	case *astview.StringLit:
		return &ir.Text{Value: v.Value}, nil

	case *astview.NumberLit:
		return &ir.Text{Value: v.Raw}, nil

	default:
		return nil, ctx.Errorf(0, "unsupported JSX expression in inline position")
	}
}

func inlineTextOf(children []astview.JSXChild) string {
	var s string
	for _, c := range children {
		if t, ok := c.(*astview.Text); ok {
			s += t.Value
		}
	}
	return s
}

func attrString(el *astview.Element, name string) string {
	for _, a := range el.Attrs {
		if a.Name != name {
			continue
		}
		if a.Value == nil {
			return ""
		}
		if s, ok := a.Value.(*astview.StringLit); ok {
			return s.Value
		}
	}
	return ""
}

func attrExpr(el *astview.Element, name string) (astview.Expr, bool) {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// resolveShellVarAttr resolves an attribute meant to name a shell variable,
// e.g. var={v} where v was bound by const v = useVariable('NAME') (or
// useRuntimeVar<T>('NAME')), returning the underlying shell name ("NAME").
// It also accepts the inline forms var={useVariable('NAME')} and
// var={useRuntimeVar('NAME')} directly, and a bare string attribute.
func resolveShellVarAttr(ctx *gctx.Context, el *astview.Element, name string) (string, error) {
	expr, ok := attrExpr(el, name)
	if !ok {
		return "", ctx.ErrorfElement(el.Pos.Line, el.Name, "%s requires a %s attribute", el.Name, name)
	}
	switch v := expr.(type) {
	case *astview.StringLit:
		return v.Value, nil

	case *astview.Ident:
		if shellName, ok := ctx.Declared.Variables[v.Name]; ok {
			return shellName, nil
		}
		if rv, ok := ctx.Declared.RuntimeVars[v.Name]; ok {
			return rv.ShellName, nil
		}
		return "", ctx.ErrorfElement(v.Pos.Line, el.Name, "unknown identifier %q in %s attribute (not a declared variable)", v.Name, name)

	case *astview.Call:
		callee, ok := v.Callee.(*astview.Ident)
		if !ok || (callee.Name != "useVariable" && callee.Name != "useRuntimeVar") {
			return "", ctx.ErrorfElement(v.Pos.Line, el.Name, "unsupported call expression in %s attribute", name)
		}
		if len(v.Args) == 0 {
			return "", ctx.ErrorfElement(v.Pos.Line, el.Name, "%s() requires a shell-name argument", callee.Name)
		}
		lit, ok := v.Args[0].(*astview.StringLit)
		if !ok {
			return "", ctx.ErrorfElement(v.Pos.Line, el.Name, "%s() argument must be a string literal", callee.Name)
		}
		return lit.Value, nil

	default:
		return "", ctx.ErrorfElement(el.Pos.Line, el.Name, "unsupported %s attribute expression", name)
	}
}

func attrBool(el *astview.Element, name string) bool {
	for _, a := range el.Attrs {
		if a.Name != name {
			continue
		}
		if a.Value == nil {
			return true // bare boolean attribute
		}
		if b, ok := a.Value.(*astview.BoolLit); ok {
			return b.Value
		}
	}
	return false
}
