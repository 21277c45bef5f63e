package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

func transformRuntimeElement(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	switch el.Name {
	case "If":
		return transformIf(ctx, el)
	case "Else":
		return nil, ctx.ErrorfElement(el.Pos.Line, "Else", "Else must immediately follow an If element; found an orphaned Else")
	case "Loop":
		return transformLoop(ctx, el)
	case "Break":
		return &ir.Break{Message: attrString(el, "message")}, nil
	case "Return":
		return &ir.Return{Status: ir.StatusTag(attrString(el, "status")), Message: attrString(el, "message")}, nil
	case "AskUser":
		return transformAskUser(el), nil
	default:
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "unsupported runtime element %q", el.Name)
	}
}

func transformIf(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	condExpr, ok := attrExpr(el, "condition")
	if !ok {
		return nil, ctx.ErrorfElement(el.Pos.Line, "If", "If requires a condition attribute")
	}
	cond, err := compileCondition(ctx, condExpr)
	if err != nil {
		return nil, err
	}
	if err := selfTestCondition(ctx, el.Pos.Line, cond); err != nil {
		return nil, err
	}
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	return &ir.If{Condition: cond, Children: children}, nil
}

func transformLoop(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	maxStr := attrString(el, "max")
	max, ok := parseIntAttr(maxStr)
	if !ok || max <= 0 {
		return nil, ctx.ErrorfElement(el.Pos.Line, "Loop", "Loop requires a positive integer max attribute, got %q", maxStr)
	}
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	return &ir.Loop{Max: max, Counter: attrString(el, "counter"), Children: children}, nil
}

func transformAskUser(el *astview.Element) ir.Block {
	au := &ir.AskUser{
		Question: attrString(el, "question"),
		Output:   attrString(el, "output"),
	}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "Option" {
			continue
		}
		au.Options = append(au.Options, ir.AskUserOption{
			Label: attrString(ec.Element, "label"),
			Value: attrString(ec.Element, "value"),
		})
	}
	return au
}

// transformRuntimeCallTag handles `<NS.Call args={{...}} output={ctx} />`,
// the dedicated block-level form of a runtime-function call,
// distinct from using the same function as an Assign data source (§3.5):
// this form stands alone as its own block and its output binds a runtime
// variable directly rather than a shell variable.
func transformRuntimeCallTag(ctx *gctx.Context, el *astview.Element, ns, _ string) (ir.Block, error) {
	rf, ok := ctx.Declared.RuntimeFns[ns]
	if !ok {
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "%q is not a registered runtime function", ns)
	}
	argsExpr, _ := attrExpr(el, "args")
	if argsExpr == nil {
		argsExpr = &astview.ObjectLit{}
	}
	args, order, err := literalArgMap(ctx, argsExpr)
	if err != nil {
		return nil, err
	}
	output := ""
	if outExpr, ok := attrExpr(el, "output"); ok {
		ref, err := runtimeVarRefOf(ctx, outExpr)
		if err != nil {
			return nil, err
		}
		output = ref.VarName
	}
	return &ir.RuntimeCall{
		Namespace: ctx.Namespace,
		Function:  rf.FnName,
		Args:      args,
		ArgOrder:  order,
		Output:    output,
	}, nil
}
