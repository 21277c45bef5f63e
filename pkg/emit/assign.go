package emit

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// assignLine renders one Assign's shell line per its DataSource kind
// (§4.6): file/bash capture via command substitution, value as a quoted
// or raw literal, env as a bare variable reference, and a runtimeFn call
// through the companion bundle. A non-empty Comment is emitted as a
// preceding `#` line.
func assignLine(opts Options, a *ir.Assign) string {
	line := a.Var + "=" + dataSourceExpr(opts, a.From)
	if a.Comment == "" {
		return line
	}
	return "# " + a.Comment + "\n" + line
}

func dataSourceExpr(opts Options, src ir.DataSource) string {
	switch v := src.(type) {
	case *ir.FileSource:
		if v.Optional {
			return fmt.Sprintf("$(cat %s 2>/dev/null)", RenderPath(v.Path))
		}
		return fmt.Sprintf("$(cat %s)", RenderPath(v.Path))

	case *ir.BashSource:
		return fmt.Sprintf("$(%s)", RenderPath(v.Command))

	case *ir.ValueSource:
		if v.Raw {
			return v.Literal
		}
		return `"` + v.Literal + `"`

	case *ir.EnvSource:
		return "$" + v.Name

	case *ir.RuntimeFnSource:
		args := MarshalArgs(v.Args, v.ArgOrder)
		return fmt.Sprintf("$(node %s %s_%s '%s')", opts.runtimePath(), v.Namespace, v.Function, ShellSingleQuote(args))

	default:
		panic(fmt.Sprintf("emit: unreachable data source variant %T", src))
	}
}

// runtimeCallLine renders a block-level <F.Call> (§4.8): the node
// invocation, captured into the output variable when one was bound.
func runtimeCallLine(opts Options, rc *ir.RuntimeCall) string {
	call := fmt.Sprintf("node %s %s_%s '%s'", opts.runtimePath(), rc.Namespace, rc.Function, ShellSingleQuote(MarshalArgs(rc.Args, rc.ArgOrder)))
	if rc.Output == "" {
		return call
	}
	return fmt.Sprintf("%s=$(%s)", rc.Output, call)
}

// renderAssignGroup renders every contained Assign into a single fenced
// bash block in declaration order; a nil Items entry is the `<br/>`
// sentinel and becomes a blank line (§4.6).
func renderAssignGroup(opts Options, ag *ir.AssignGroup) string {
	var lines []string
	for _, item := range ag.Items {
		if item == nil {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, assignLine(opts, item))
	}
	return "```bash\n" + strings.Join(lines, "\n") + "\n```"
}
