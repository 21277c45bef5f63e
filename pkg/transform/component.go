package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// expandComponent inlines a PascalCase custom component declared in the
// same file: its body is transformed in place, with no wrapping block
// introduced — the component boundary exists only in source, never in the
// emitted tree. The call-site attributes are stored in ctx.ComponentProps
// for the duration of the expansion; the body is not resolved against
// them. Cross-file component imports are not resolved anywhere in the
// pipeline: a PascalCase name that resolves only to an Import binding is
// reported as an error rather than silently skipped.
func expandComponent(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	decl, ok := ctx.Declared.LocalComponents[el.Name]
	if !ok {
		if _, imported := ctx.Declared.Imports[el.Name]; imported {
			return nil, ctx.ErrorfElement(el.Pos.Line, el.Name,
				"component %q is imported from another file; cross-file component resolution must happen before this file is transformed", el.Name)
		}
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "unknown component %q", el.Name)
	}
	if decl.Body == nil {
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "component %q does not return JSX", el.Name)
	}

	if err := ctx.PushComponent(el.Name, el.Pos.Line); err != nil {
		return nil, err
	}
	defer ctx.PopComponent()

	savedProps := ctx.ComponentProps
	ctx.ComponentProps = propsOf(el)
	defer func() { ctx.ComponentProps = savedProps }()

	if decl.Body.Name == "Fragment" {
		children, err := TransformBlockChildren(ctx, decl.Body.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Group{Children: children}, nil
	}
	return TransformElementToBlock(ctx, decl.Body)
}

func propsOf(el *astview.Element) map[string]astview.Expr {
	props := make(map[string]astview.Expr, len(el.Attrs))
	for _, a := range el.Attrs {
		if a.Value != nil {
			props[a.Name] = a.Value
		}
	}
	return props
}
