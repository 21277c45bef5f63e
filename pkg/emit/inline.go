package emit

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// RenderInline concatenates a sequence of inline nodes into Markdown.
func RenderInline(nodes []ir.Inline) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(renderOneInline(n))
	}
	return sb.String()
}

func renderOneInline(n ir.Inline) string {
	switch v := n.(type) {
	case *ir.Text:
		return v.Value
	case *ir.Bold:
		return "**" + RenderInline(v.Children) + "**"
	case *ir.Italic:
		return "_" + RenderInline(v.Children) + "_"
	case *ir.InlineCode:
		return "`" + v.Value + "`"
	case *ir.Link:
		return "[" + RenderInline(v.Label) + "](" + v.Target + ")"
	case *ir.LineBreak:
		return "  \n"
	case *ir.RuntimeVarRef:
		return jqSubExpr(v.VarName, v.Path)
	default:
		panic(fmt.Sprintf("emit: unreachable inline variant %T", n))
	}
}
