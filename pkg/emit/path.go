package emit

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// RenderPath renders a PathExpr per the compiler's smart-quoting rules: a
// literal segment is quoted whole only if it contains shell-sensitive
// characters (spaces, a literal `$`, or quote characters); a shell-variable
// reference is always quoted per-segment so the variable expands but the
// surrounding path text stays protected; a runtime-variable reference
// compiles to an unquoted jq sub-expression since it is already a command
// substitution. Globs in literal segments are left unquoted by design so
// the shell can expand them.
func RenderPath(pe ir.PathExpr) string {
	var sb strings.Builder
	for i, seg := range pe.Segments {
		if containsShellSensitive(seg) {
			sb.WriteString(`"` + seg + `"`)
		} else {
			sb.WriteString(seg)
		}
		if i < len(pe.Refs) {
			ref := pe.Refs[i]
			if ref.IsRuntime() {
				sb.WriteString(jqSubExpr(ref.RuntimeVar, ref.Path))
			} else {
				sb.WriteString(`"$` + ref.ShellVar + `"`)
			}
		}
	}
	return sb.String()
}

func containsShellSensitive(s string) bool {
	return strings.ContainsAny(s, " $\"'`")
}

// jqSubExpr renders `$(echo "$NAME" | jq -r '.a.b')`; an empty path renders
// the bare `.` filter.
func jqSubExpr(shellVar string, path []string) string {
	filter := "."
	if len(path) > 0 {
		filter = "." + strings.Join(path, ".")
	}
	return fmt.Sprintf(`$(echo "$%s" | jq -r '%s')`, shellVar, filter)
}
