package emit

import (
	"fmt"
	"strconv"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// precedence levels, lowest binds loosest (standard boolean-algebra order:
// or < and < not < comparison/atom).
const (
	precOr = iota + 1
	precAnd
	precNot
	precAtom
)

var cmpSymbol = map[ir.CmpOp]string{
	ir.Eq: "==", ir.Neq: "!=", ir.Gt: ">", ir.Gte: ">=", ir.Lt: "<", ir.Lte: "<=",
}

// RenderCondition renders c as the prose fragment that follows `**If` /
// precedes the trailing `:**`: references become jq sub-expressions, and
// parentheses are emitted only where precedence otherwise would not
// preserve grouping.
func RenderCondition(c ir.Condition) string {
	return renderCond(c, 0)
}

func renderCond(c ir.Condition, minPrec int) string {
	s, prec := renderCondPrec(c)
	if prec < minPrec {
		return "(" + s + ")"
	}
	return s
}

func renderCondPrec(c ir.Condition) (string, int) {
	switch v := c.(type) {
	case *ir.Ref:
		return jqSubExpr(v.VarName, v.Path), precAtom
	case *ir.BoolLit:
		return strconv.FormatBool(v.Value), precAtom
	case *ir.StringLit:
		return fmt.Sprintf("%q", v.Value), precAtom
	case *ir.NumberLit:
		return strconv.FormatFloat(v.Value, 'g', -1, 64), precAtom
	case *ir.Not:
		return "not " + renderCond(v.Operand, precNot), precNot
	case *ir.And:
		return renderCond(v.Left, precAnd) + " and " + renderCond(v.Right, precAnd+1), precAnd
	case *ir.Or:
		return renderCond(v.Left, precOr) + " or " + renderCond(v.Right, precOr+1), precOr
	case *ir.Compare:
		op := cmpSymbol[v.Op]
		return renderCond(v.Left, precAtom) + " " + op + " " + renderCond(v.Right, precAtom), precAtom
	default:
		panic(fmt.Sprintf("emit: unreachable condition variant %T", c))
	}
}
