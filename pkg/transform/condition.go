package transform

import (
	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// compileCondition parses the source-expression AST into the closed
// condition tree, recognizing `!`, `&&`, `||`, `===`, `!==`,
// `>`, `>=`, `<`, `<=`, parentheses, boolean/string/number literals and
// identifier/property-access chains rooted at a declared runtime variable.
// Anything else is rejected with a located TransformError naming the
// offending node.
func compileCondition(ctx *gctx.Context, e astview.Expr) (ir.Condition, error) {
	switch v := e.(type) {
	case *astview.Paren:
		return compileCondition(ctx, v.Inner)

	case *astview.Unary:
		if v.Op != "!" {
			return nil, ctx.Errorf(v.Pos.Line, "unsupported unary operator %q in condition", v.Op)
		}
		operand, err := compileCondition(ctx, v.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.Not{Operand: operand}, nil

	case *astview.Binary:
		left, err := compileCondition(ctx, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := compileCondition(ctx, v.Right)
		if err != nil {
			return nil, err
		}
		switch v.Op {
		case "&&":
			return &ir.And{Left: left, Right: right}, nil
		case "||":
			return &ir.Or{Left: left, Right: right}, nil
		case "===":
			return &ir.Compare{Op: ir.Eq, Left: left, Right: right}, nil
		case "!==":
			return &ir.Compare{Op: ir.Neq, Left: left, Right: right}, nil
		case ">":
			return &ir.Compare{Op: ir.Gt, Left: left, Right: right}, nil
		case ">=":
			return &ir.Compare{Op: ir.Gte, Left: left, Right: right}, nil
		case "<":
			return &ir.Compare{Op: ir.Lt, Left: left, Right: right}, nil
		case "<=":
			return &ir.Compare{Op: ir.Lte, Left: left, Right: right}, nil
		default:
			return nil, ctx.Errorf(v.Pos.Line, "unsupported operator %q in condition", v.Op)
		}

	case *astview.BoolLit:
		return &ir.BoolLit{Value: v.Value}, nil

	case *astview.StringLit:
		return &ir.StringLit{Value: v.Value}, nil

	case *astview.NumberLit:
		return &ir.NumberLit{Value: v.Value}, nil

	case *astview.Ident:
		return resolveConditionRef(ctx, v.Pos.Line, v.Name, nil)

	case *astview.PropAccess:
		root, ok := v.Root.(*astview.Ident)
		if !ok {
			return nil, ctx.Errorf(v.Pos.Line, "condition property access must be rooted at a variable reference")
		}
		return resolveConditionRef(ctx, v.Pos.Line, root.Name, v.Path)

	default:
		return nil, ctx.ErrorfElement(0, "If", "unsupported condition expression form")
	}
}

func resolveConditionRef(ctx *gctx.Context, line int, root string, path []string) (ir.Condition, error) {
	rv, ok := ctx.Declared.RuntimeVars[root]
	if !ok {
		return nil, ctx.Errorf(line, "unknown identifier %q in condition (not a declared runtime variable)", root)
	}
	return &ir.Ref{VarName: rv.ShellName, Path: path}, nil
}
