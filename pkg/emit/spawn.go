package emit

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// renderSpawnAgent renders a host Task(...) invocation (§4.9): four
// required keys in fixed order, double quotes escaped, multi-line prompts
// keep their newlines verbatim (brace placeholders are plain text by the
// time they reach here, so nothing further is done to them). A runtime
// output binding is noted on a trailing line.
func renderSpawnAgent(v *ir.SpawnAgent) string {
	lines := []string{
		"Task(",
		`  prompt="` + escapeTaskValue(spawnPromptText(v.Input)) + `",`,
		`  subagent_type="` + escapeTaskValue(v.AgentName) + `",`,
		`  model="` + escapeTaskValue(v.Model) + `",`,
		`  description="` + escapeTaskValue(v.Description) + `"`,
		")",
	}
	s := strings.Join(lines, "\n")
	if v.Output != nil {
		s += fmt.Sprintf("\n_(output -> $%s)_", v.Output.VarName)
	}
	return s
}

func escapeTaskValue(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func spawnPromptText(input ir.SpawnInput) string {
	switch v := input.(type) {
	case *ir.LiteralPrompt:
		return v.Text

	case *ir.StructuredInput:
		var lines []string
		for _, k := range v.Keys {
			lines = append(lines, k+": "+spawnFieldText(v.Fields[k]))
		}
		return strings.Join(lines, "\n")

	default:
		panic(fmt.Sprintf("emit: unreachable spawn input variant %T", input))
	}
}

func spawnFieldText(f ir.SpawnField) string {
	if f.VarRef != nil {
		return jqSubExpr(f.VarRef.VarName, f.VarRef.Path)
	}
	return renderLiteralText(*f.Literal)
}
