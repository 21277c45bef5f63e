package emit

import (
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// Document renders any of the three document kinds into its final
// Markdown text: frontmatter, a blank line, then the emitted block
// sequence, with a trailing newline.
func Document(opts Options, doc ir.Document) string {
	switch d := doc.(type) {
	case *ir.CommandDocument:
		return join(CommandFrontmatter(d), EmitBlocks(opts, d.Blocks))
	case *ir.AgentDocument:
		return join(AgentFrontmatter(d), EmitBlocks(opts, d.Blocks))
	case *ir.SkillDocument:
		return join(SkillFrontmatter(d), EmitBlocks(opts, d.Blocks))
	default:
		panic("emit: unreachable document variant")
	}
}

func join(frontmatter, body string) string {
	var sb strings.Builder
	if frontmatter != "" {
		sb.WriteString(frontmatter)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	sb.WriteString("\n")
	return sb.String()
}
