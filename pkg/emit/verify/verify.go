// Package verify re-parses an emitter's rendered Markdown with goldmark and
// cross-checks the re-derived structure against the IR that produced it,
// so structural tests re-derive the document tree instead of comparing
// strings. It is a test/diagnostic aid, not part of the compile pipeline.
package verify

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// Heading is one heading goldmark found in rendered Markdown.
type Heading struct {
	Level int
	Text  string
}

// CodeBlock is one fenced code block goldmark found.
type CodeBlock struct {
	Language string
}

// Structure is the shallow shape Verify extracts from rendered Markdown:
// enough to cross-check against the IR's own Heading/CodeBlock/List nodes
// without re-implementing a full Markdown AST comparison.
type Structure struct {
	Headings   []Heading
	CodeBlocks []CodeBlock
	ListCount  int
}

// Parse renders md through goldmark and extracts its shallow Structure. A
// leading `---` frontmatter block is skipped first, since goldmark would
// otherwise read it as a thematic break followed by a setext heading.
func Parse(md string) (Structure, error) {
	if strings.HasPrefix(md, "---\n") {
		if end := strings.Index(md[4:], "\n---\n"); end >= 0 {
			md = md[4+end+5:]
		}
	}
	source := []byte(md)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var s Structure
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, Heading{Level: v.Level, Text: string(v.Text(source))})
		case *ast.FencedCodeBlock:
			lang := ""
			if v.Info != nil {
				lang = string(v.Info.Text(source))
			}
			s.CodeBlocks = append(s.CodeBlocks, CodeBlock{Language: lang})
		case *ast.List:
			s.ListCount++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Structure{}, err
	}
	return s, nil
}

// MatchesHeadings reports whether rendered Markdown's headings (level +
// text) match the Heading IR nodes that produced them, in order. Callers
// supply the expected set directly from the IR the emitter rendered, since
// this package must not depend on pkg/transform/pkg/emit's internals.
func MatchesHeadings(md string, want []ir.Heading, renderInline func([]ir.Inline) string) error {
	got, err := Parse(md)
	if err != nil {
		return err
	}
	if len(got.Headings) != len(want) {
		return fmt.Errorf("heading count mismatch: rendered %d, IR has %d", len(got.Headings), len(want))
	}
	for i, h := range want {
		if got.Headings[i].Level != h.Level {
			return fmt.Errorf("heading %d: level mismatch: rendered %d, IR has %d", i, got.Headings[i].Level, h.Level)
		}
		if wantText := renderInline(h.Children); got.Headings[i].Text != wantText {
			return fmt.Errorf("heading %d: text mismatch: rendered %q, IR has %q", i, got.Headings[i].Text, wantText)
		}
	}
	return nil
}

// Bytes exposes the raw source for a caller that wants to run its own
// goldmark walk.
func Bytes(md string) []byte { return bytes.TrimSpace([]byte(md)) }
