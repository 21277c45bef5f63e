// Package emit renders the closed IR into Markdown text: a single emitter
// walks both static and runtime-dialect trees, since both dialects share
// one Block interface and Go can't split the switch by dialect at compile
// time; an AgentDocument's purity is instead checked by
// transform.ValidateAgentPurity when the document is built, before emission
// ever runs. Every switch over a Block/Inline/Condition/DataSource/
// Literal variant ends in a panic on an unhandled type — the idiomatic Go
// substitute for a tagged-union exhaustiveness check.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
	"github.com/ormasoftchile/gertx/pkg/transform"
)

// defaultRuntimePath is the companion-bundle path baked into RuntimeCall
// and runtimeFn Assign lines; Options overrides it.
const defaultRuntimePath = ".claude/runtime/runtime.js"

// Options carries emitter-wide configuration threaded through EmitBlocks.
type Options struct {
	RuntimePath string // defaults to defaultRuntimePath when empty
}

func (o Options) runtimePath() string {
	if o.RuntimePath == "" {
		return defaultRuntimePath
	}
	return o.RuntimePath
}

// listFrame is one entry in the emitter's list-nesting stack: each push
// records {ordered, index, depth}.
type listFrame struct {
	ordered bool
	index   int
	depth   int
}

// EmitBlocks renders an ordered block sequence, joined with a single blank
// line between top-level siblings (the default spacing rule); a Group's
// children are instead joined tightly via joinRendered(..., true).
func EmitBlocks(opts Options, blocks []ir.Block) string {
	return joinRendered(renderBlockList(opts, blocks, nil), false)
}

func joinRendered(parts []string, tight bool) string {
	var out []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	sep := "\n\n"
	if tight {
		sep = "\n"
	}
	return strings.Join(out, sep)
}

// renderBlockList renders each block in sequence, unwrapping a paired
// If/Else carrier from the dispatcher into two consecutive entries.
func renderBlockList(opts Options, blocks []ir.Block, stack []listFrame) []string {
	var out []string
	for _, b := range blocks {
		if ifNode, elseChildren, ok := transform.UnwrapIfElse(b); ok {
			out = append(out, renderIfElse(opts, ifNode, elseChildren, stack))
			continue
		}
		out = append(out, renderBlock(opts, b, stack))
	}
	return out
}

func renderBlock(opts Options, b ir.Block, stack []listFrame) string {
	switch v := b.(type) {
	case *ir.Heading:
		return strings.Repeat("#", v.Level) + " " + RenderInline(v.Children)

	case *ir.Paragraph:
		return RenderInline(v.Children)

	case *ir.List:
		return renderList(opts, v, stack)

	case *ir.CodeBlock:
		return "```" + v.Language + "\n" + v.Body + "\n```"

	case *ir.Blockquote:
		inner := joinRendered(renderBlockList(opts, v.Children, stack), false)
		return quoteLines(inner)

	case *ir.ThematicBreak:
		return "---"

	case *ir.Table:
		return renderTable(v)

	case *ir.XmlBlock:
		return renderXmlBlock(opts, v, stack)

	case *ir.Group:
		return joinRendered(renderBlockList(opts, v.Children, stack), true)

	case *ir.RawMarkdown:
		return v.Value

	case *ir.Indent:
		inner := joinRendered(renderBlockList(opts, v.Children, stack), false)
		return indentLines(inner, v.Level)

	case *ir.Assign:
		return "```bash\n" + assignLine(opts, v) + "\n```"

	case *ir.AssignGroup:
		return renderAssignGroup(opts, v)

	case *ir.OnStatus:
		children := joinRendered(renderBlockList(opts, v.Children, stack), false)
		return fmt.Sprintf("**On %s = %s:**\n\n%s", v.AgentOutputRef, v.Status, children)

	case *ir.Step:
		body := joinRendered(renderBlockList(opts, v.Body, stack), false)
		if v.Title == "" {
			return body
		}
		return fmt.Sprintf("**Step: %s**\n\n%s", v.Title, body)

	case *ir.ExecutionContext:
		var lines []string
		for _, p := range v.Paths {
			lines = append(lines, v.Prefix+p)
		}
		head := strings.Join(lines, "\n")
		children := joinRendered(renderBlockList(opts, v.Children, stack), false)
		if children == "" {
			return head
		}
		return head + "\n\n" + children

	case *ir.SuccessCriteria:
		return "**Success Criteria:**\n" + bulletList(v.Items)

	case *ir.OfferNext:
		var items []string
		for _, o := range v.Options {
			items = append(items, fmt.Sprintf("%s — %s", o.Label, o.Value))
		}
		return "**What's next?**\n" + bulletList(items)

	case *ir.ReadState:
		if v.Output != "" {
			return fmt.Sprintf("_(read %s.%s into %s)_", v.Handle.Name, v.Field, v.Output)
		}
		return fmt.Sprintf("_(read %s.%s)_", v.Handle.Name, v.Field)

	case *ir.WriteState:
		merge := ""
		if v.Merge {
			merge = ", merge"
		}
		return fmt.Sprintf("_(write %s.%s = %s%s)_", v.Handle.Name, v.Field, renderLiteralText(v.Value), merge)

	case *ir.SpawnAgent:
		return renderSpawnAgent(v)

	case *ir.RuntimeVarDecl:
		return ""

	case *ir.RuntimeCall:
		return "```bash\n" + runtimeCallLine(opts, v) + "\n```"

	case *ir.If:
		return renderIfElse(opts, v, nil, stack)

	case *ir.Else:
		children := joinRendered(renderBlockList(opts, v.Children, stack), false)
		return "**Otherwise:**\n\n" + children

	case *ir.Loop:
		head := fmt.Sprintf("**Repeat up to %d times**", v.Max)
		if v.Counter != "" {
			head = fmt.Sprintf("**Repeat up to %d times (counter: %s)**", v.Max, v.Counter)
		}
		body := joinRendered(renderBlockList(opts, v.Children, stack), false)
		return head + "\n\n" + body

	case *ir.Break:
		if v.Message != "" {
			return "**Break:** " + v.Message
		}
		return "**Break**"

	case *ir.Return:
		if v.Status == "" && v.Message == "" {
			return "**Return**"
		}
		head := "**Return**"
		if v.Status != "" {
			head = fmt.Sprintf("**Return %s**", v.Status)
		}
		if v.Message != "" {
			return head + ": " + v.Message
		}
		return head

	case *ir.AskUser:
		return renderAskUser(v)

	default:
		panic(fmt.Sprintf("emit: unreachable block variant %T", b))
	}
}

func renderIfElse(opts Options, ifNode *ir.If, elseChildren []ir.Block, stack []listFrame) string {
	cond := RenderCondition(ifNode.Condition)
	body := joinRendered(renderBlockList(opts, ifNode.Children, stack), false)
	s := fmt.Sprintf("**If %s:**\n\n%s", cond, body)
	if elseChildren == nil {
		return s
	}
	elseBody := joinRendered(renderBlockList(opts, elseChildren, stack), false)
	return s + "\n\n**Otherwise:**\n\n" + elseBody
}

func renderList(opts Options, l *ir.List, stack []listFrame) string {
	depth := 0
	if len(stack) > 0 {
		depth = stack[len(stack)-1].depth + 1
	}
	frame := listFrame{ordered: l.Ordered, depth: depth}
	start := l.Start
	if start == 0 {
		start = 1
	}
	frame.index = start
	childStack := append(append([]listFrame(nil), stack...), frame)

	var lines []string
	for _, item := range l.Items {
		prefix := strings.Repeat("  ", depth)
		var marker string
		if l.Ordered {
			marker = strconv.Itoa(frame.index) + ". "
			frame.index++
			childStack[len(childStack)-1] = frame
		} else {
			marker = "- "
		}
		body := joinRendered(renderBlockList(opts, item.Children, childStack), false)
		lines = append(lines, indentContinuation(prefix+marker+body, prefix+strings.Repeat(" ", len(marker))))
	}
	return strings.Join(lines, "\n")
}

// indentContinuation indents every line after the first in s by pad; the
// first line already carries its own prefix+marker.
func indentContinuation(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func indentLines(s string, level int) string {
	pad := strings.Repeat("  ", level)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}

func renderXmlBlock(opts Options, v *ir.XmlBlock, stack []listFrame) string {
	var sb strings.Builder
	sb.WriteString("<" + v.Name)
	for _, k := range v.AttrKeys {
		sb.WriteString(fmt.Sprintf(" %s=%q", k, v.Attrs[k]))
	}
	sb.WriteString(">\n")
	sb.WriteString(joinRendered(renderBlockList(opts, v.Children, stack), false))
	sb.WriteString("\n</" + v.Name + ">")
	return sb.String()
}

func renderTable(t *ir.Table) string {
	var sb strings.Builder
	writeRow := func(r ir.TableRow) {
		sb.WriteString("|")
		for _, cell := range r.Cells {
			sb.WriteString(" " + RenderInline(cell) + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(t.Header)
	sb.WriteString("|")
	for i := range t.Header.Cells {
		align := ColumnAlignOf(t.Aligns, i)
		sb.WriteString(" " + align + " |")
	}
	sb.WriteString("\n")
	for _, r := range t.Rows {
		writeRow(r)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ColumnAlignOf renders the separator cell for column i.
func ColumnAlignOf(aligns []ir.ColumnAlign, i int) string {
	if i >= len(aligns) {
		return "---"
	}
	switch aligns[i] {
	case ir.AlignLeft:
		return ":---"
	case ir.AlignCenter:
		return ":---:"
	case ir.AlignRight:
		return "---:"
	default:
		return "---"
	}
}

func renderLiteralText(l ir.Literal) string {
	switch v := l.(type) {
	case ir.StringLiteral:
		return v.Value
	case ir.NumberLiteral:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case ir.BoolLiteral:
		return strconv.FormatBool(v.Value)
	case ir.ObjectLiteral:
		return MarshalArgs(v.Values, v.Keys)
	default:
		panic(fmt.Sprintf("emit: unreachable literal variant %T", l))
	}
}

func renderAskUser(v *ir.AskUser) string {
	s := "**Ask user:** " + v.Question
	if len(v.Options) > 0 {
		var items []string
		for _, o := range v.Options {
			items = append(items, fmt.Sprintf("%s (%s)", o.Label, o.Value))
		}
		s += "\n" + bulletList(items)
	}
	return s
}
