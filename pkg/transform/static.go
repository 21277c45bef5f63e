package transform

import (
	"strconv"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

func transformStaticElement(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	switch {
	case headingLevels[el.Name] != 0:
		children, err := transformInlineChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Heading{Level: headingLevels[el.Name], Children: children}, nil

	case el.Name == "p":
		children, err := transformInlineChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Paragraph{Children: children}, nil

	case el.Name == "ul" || el.Name == "ol":
		return transformList(ctx, el)

	case el.Name == "pre":
		return transformCodeBlock(el), nil

	case el.Name == "blockquote":
		children, err := TransformBlockChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Blockquote{Children: children}, nil

	case el.Name == "hr":
		return &ir.ThematicBreak{}, nil

	case el.Name == "div":
		if attrString(el, "name") != "" {
			return transformXmlBlock(ctx, el)
		}
		children, err := TransformBlockChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Group{Children: children}, nil

	default:
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "unsupported static element %q", el.Name)
	}
}

func transformList(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	list := &ir.List{Ordered: el.Name == "ol"}
	if start := attrString(el, "start"); start != "" {
		if n, err := strconv.Atoi(start); err == nil {
			list.Start = n
		}
	}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "li" {
			continue
		}
		children, err := TransformBlockChildren(ctx, ec.Element.Children)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, ir.ListItem{Children: children})
	}
	return list, nil
}

// transformCodeBlock reads a `<pre><code className="language-xxx">...` pair
// verbatim: apart from trimming leading and trailing newlines, the body's
// bytes are kept as they are (no whitespace normalization inside it).
func transformCodeBlock(el *astview.Element) ir.Block {
	lang := ""
	body := ""
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "code" {
			continue
		}
		if cls := attrString(ec.Element, "className"); cls != "" {
			lang = strings.TrimPrefix(cls, "language-")
		}
		body = inlineTextOf(ec.Element.Children)
	}
	if body == "" {
		body = inlineTextOf(el.Children)
	}
	return &ir.CodeBlock{Language: lang, Body: strings.Trim(body, "\n")}
}
