package emit_test

import (
	"testing"

	"github.com/ormasoftchile/gertx/pkg/emit"
	"github.com/ormasoftchile/gertx/pkg/emit/verify"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// TestDocumentHeadingsRoundTripThroughGoldmark renders a Command document
// with a mix of heading levels, a fenced code block, and a list, then
// re-parses the rendered Markdown with goldmark (via pkg/emit/verify) and
// cross-checks the re-derived structure against the IR that produced it.
// This is the structural verification spec.md §8's exhaustiveness/testable
// properties calls for: re-deriving the tree, not just comparing strings.
func TestDocumentHeadingsRoundTripThroughGoldmark(t *testing.T) {
	headings := []ir.Heading{
		{Level: 1, Children: []ir.Inline{&ir.Text{Value: "Title"}}},
		{Level: 2, Children: []ir.Inline{&ir.Text{Value: "Section"}}},
	}
	doc := &ir.CommandDocument{
		Blocks: []ir.Block{
			&headings[0],
			&ir.Paragraph{Children: []ir.Inline{&ir.Text{Value: "Intro paragraph."}}},
			&headings[1],
			&ir.CodeBlock{Language: "bash", Body: "echo hi"},
			&ir.List{Items: []ir.ListItem{
				{Children: []ir.Block{&ir.Paragraph{Children: []ir.Inline{&ir.Text{Value: "one"}}}}},
				{Children: []ir.Block{&ir.Paragraph{Children: []ir.Inline{&ir.Text{Value: "two"}}}}},
			}},
		},
	}

	rendered := emit.Document(emit.Options{}, doc)

	if err := verify.MatchesHeadings(rendered, headings, emit.RenderInline); err != nil {
		t.Fatalf("goldmark structural verification failed: %v", err)
	}

	got, err := verify.Parse(rendered)
	if err != nil {
		t.Fatalf("verify.Parse: %v", err)
	}
	if len(got.CodeBlocks) != 1 || got.CodeBlocks[0].Language != "bash" {
		t.Fatalf("got code blocks %+v, want one bash block", got.CodeBlocks)
	}
	if got.ListCount != 1 {
		t.Fatalf("got list count %d, want 1", got.ListCount)
	}
}

// TestAgentDocumentHeadingsRoundTripThroughGoldmark exercises the same
// goldmark cross-check against an Agent document, whose frontmatter differs
// from a Command's but whose body still goes through the same goldmark
// structural verification.
func TestAgentDocumentHeadingsRoundTripThroughGoldmark(t *testing.T) {
	headings := []ir.Heading{
		{Level: 2, Children: []ir.Inline{&ir.Text{Value: "Responsibilities"}}},
	}
	doc := &ir.AgentDocument{
		Name:        "researcher",
		Description: "Research",
		Blocks: []ir.Block{
			&headings[0],
			&ir.Paragraph{Children: []ir.Inline{&ir.Text{Value: "Does research."}}},
		},
	}

	rendered := emit.Document(emit.Options{}, doc)

	if err := verify.MatchesHeadings(rendered, headings, emit.RenderInline); err != nil {
		t.Fatalf("goldmark structural verification failed: %v", err)
	}
}
