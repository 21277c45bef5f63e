package emit

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// CommandFrontmatter renders a CommandDocument's header as a YAML block
// delimited by `---` lines via the external yaml.v3 library, converting
// camelCase header keys to kebab-case and preserving declaration order via
// an explicit yaml.Node mapping.
func CommandFrontmatter(doc *ir.CommandDocument) string {
	if len(doc.HeaderKeys) == 0 {
		return ""
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range doc.HeaderKeys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kebabCase(k)}
		valNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: doc.Header[k]}
		mapping.Content = append(mapping.Content, keyNode, valNode)
	}
	out, err := yaml.Marshal(mapping)
	if err != nil {
		panic("emit: command frontmatter: " + err.Error())
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(out)
	sb.WriteString("---\n")
	return sb.String()
}

func kebabCase(camel string) string {
	var sb strings.Builder
	for i, r := range camel {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// AgentFrontmatter hand-writes the agent header rather than going through
// yaml.v3: `tools` must render as one space-separated string, never a YAML
// array, and optional fields are omitted entirely rather than emitted
// empty.
func AgentFrontmatter(doc *ir.AgentDocument) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("name: " + doc.Name + "\n")
	sb.WriteString("description: " + doc.Description + "\n")
	if len(doc.Tools) > 0 {
		sb.WriteString("tools: " + strings.Join(doc.Tools, " ") + "\n")
	}
	if doc.Color != "" {
		sb.WriteString("color: " + doc.Color + "\n")
	}
	if doc.Input != nil {
		sb.WriteString("input: " + doc.Input.Name + "\n")
		if doc.Input.Type != "" {
			sb.WriteString("input-type: " + doc.Input.Type + "\n")
		}
	}
	if doc.Output != nil {
		sb.WriteString("output: " + doc.Output.Name + "\n")
		if doc.Output.Type != "" {
			sb.WriteString("output-type: " + doc.Output.Type + "\n")
		}
	}
	sb.WriteString("---\n")
	return sb.String()
}

// SkillFrontmatter mirrors AgentFrontmatter's hand-written shape: a Skill
// document's header is structurally the same kind of thing as an Agent's.
func SkillFrontmatter(doc *ir.SkillDocument) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("name: " + doc.Name + "\n")
	if doc.Description != "" {
		sb.WriteString("description: " + doc.Description + "\n")
	}
	sb.WriteString("---\n")
	return sb.String()
}
