package transform

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// selfTestCondition round-trips a compiled condition tree through
// expr-lang: it renders the tree as an expr-lang expression over a
// synthetic environment and compiles it, catching a condition tree that is
// structurally ill-formed (mismatched operand arity, a comparison between
// incompatible literal kinds) before it ever reaches emission.
//
// This is not the condition compiler itself — the real output is jq-backed
// prose, which expr-lang knows nothing about — it is only a
// construction-time sanity check using expr.Compile(exprStr, expr.Env(env),
// expr.AsBool()) against a synthetic boolean environment.
func selfTestCondition(ctx *gctx.Context, line int, c ir.Condition) error {
	env := make(map[string]any)
	exprStr := renderExprLang(c, env)
	program, err := expr.Compile(exprStr, expr.Env(env), expr.AsBool())
	if err != nil {
		return ctx.Errorf(line, "condition failed internal consistency check: %v", err)
	}
	if _, err := expr.Run(program, env); err != nil {
		return ctx.Errorf(line, "condition failed internal consistency check: %v", err)
	}
	return nil
}

// refEnvName produces a valid expr-lang identifier for a condition Ref.
func refEnvName(r *ir.Ref) string {
	name := r.VarName
	if len(r.Path) > 0 {
		name += "_" + strings.Join(r.Path, "_")
	}
	return name
}

// renderExprLang renders c as an expr-lang boolean expression, registering
// each Ref it encounters in env with a plausible zero value.
func renderExprLang(c ir.Condition, env map[string]any) string {
	switch v := c.(type) {
	case *ir.Ref:
		name := refEnvName(v)
		if _, ok := env[name]; !ok {
			env[name] = false
		}
		return name
	case *ir.BoolLit:
		return fmt.Sprintf("%v", v.Value)
	case *ir.StringLit:
		return fmt.Sprintf("%q", v.Value)
	case *ir.NumberLit:
		return fmt.Sprintf("%v", v.Value)
	case *ir.Not:
		return "not (" + renderExprLangBool(v.Operand, env) + ")"
	case *ir.And:
		return "(" + renderExprLangBool(v.Left, env) + ") and (" + renderExprLangBool(v.Right, env) + ")"
	case *ir.Or:
		return "(" + renderExprLangBool(v.Left, env) + ") or (" + renderExprLangBool(v.Right, env) + ")"
	case *ir.Compare:
		op := map[ir.CmpOp]string{
			ir.Eq: "==", ir.Neq: "!=", ir.Gt: ">", ir.Gte: ">=", ir.Lt: "<", ir.Lte: "<=",
		}[v.Op]
		if op == ">" || op == ">=" || op == "<" || op == "<=" {
			forceNumeric(v.Left, env)
			forceNumeric(v.Right, env)
		}
		return "(" + renderExprLang(v.Left, env) + ") " + op + " (" + renderExprLang(v.Right, env) + ")"
	default:
		return "true"
	}
}

// renderExprLangBool renders c ensuring the top-level result is boolean;
// non-boolean leaves (bare Ref/literal in a logical position) are coerced
// by registering them as bool in env up front.
func renderExprLangBool(c ir.Condition, env map[string]any) string {
	if r, ok := c.(*ir.Ref); ok {
		env[refEnvName(r)] = false
	}
	return renderExprLang(c, env)
}

func forceNumeric(c ir.Condition, env map[string]any) {
	if r, ok := c.(*ir.Ref); ok {
		env[refEnvName(r)] = float64(0)
	}
}
