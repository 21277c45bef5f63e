// Package transform implements the Transformer: the stage that walks one
// source file's AST façade (pkg/astview) and produces the closed
// intermediate representation (pkg/ir) an emitter later renders. Every
// subtransformer takes the shared *gctx.Context explicitly; none of them
// touch global state.
package transform

import (
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// staticTags routes to the static-block transformers.
var staticTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "ul": true, "ol": true, "pre": true, "blockquote": true,
	"hr": true, "div": true,
}

// frameworkTags route to the framework-block transformers.
var frameworkTags = map[string]bool{
	"XmlBlock": true, "SpawnAgent": true, "Table": true,
	"ExecutionContext": true, "SuccessCriteria": true, "OfferNext": true,
	"Assign": true, "AssignGroup": true, "OnStatus": true, "Step": true,
	"ReadState": true, "WriteState": true,
}

// runtimeTags route to the runtime-block transformers; these
// are only legal in a runtime-dialect document.
var runtimeTags = map[string]bool{
	"If": true, "Else": true, "Loop": true, "Break": true,
	"Return": true, "AskUser": true,
}

// inlineTags route to the inline transformers.
var inlineTags = map[string]bool{
	"strong": true, "b": true, "em": true, "i": true,
	"code": true, "a": true, "br": true,
}

// TransformBlockChildren is the top-level entry point for a sequence of
// JSX children appearing where block content is expected: a component
// body, a container element's children. It accumulates runs of inline
// content into Paragraph nodes, pairs an If immediately followed by an
// Else, and dispatches every other element to its block
// transformer.
func TransformBlockChildren(ctx *gctx.Context, children []astview.JSXChild) ([]ir.Block, error) {
	var blocks []ir.Block
	var para []ir.Inline

	flush := func() {
		if p := finishParagraph(para); p != nil {
			blocks = append(blocks, p)
		}
		para = nil
	}

	for i := 0; i < len(children); i++ {
		child := children[i]
		switch c := child.(type) {
		case *astview.Text:
			if isWhitespaceOnly(c.Value) {
				continue
			}
			para = append(para, &ir.Text{Value: normalizeSingleLine(c.Value)})

		case *astview.ExprChild:
			inl, err := transformInlineExpr(ctx, c.Expr)
			if err != nil {
				return nil, err
			}
			if inl != nil {
				para = append(para, inl)
			}

		case *astview.ElementChild:
			name := c.Element.Name
			if inlineTags[name] {
				inl, err := transformInlineElement(ctx, c.Element)
				if err != nil {
					return nil, err
				}
				para = append(para, inl)
				continue
			}

			flush()

			if name == "If" && ctx.Dialect == gctx.Runtime {
				block, consumed, err := transformIfElse(ctx, children, i)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, block)
				i += consumed
				continue
			}

			block, err := TransformElementToBlock(ctx, c.Element)
			if err != nil {
				return nil, err
			}
			if block != nil {
				blocks = append(blocks, block)
			}

		default:
			// unknown JSXChild kind; nothing else implements the interface
		}
	}

	flush()
	return blocks, nil
}

func finishParagraph(para []ir.Inline) ir.Block {
	if len(para) == 0 {
		return nil
	}
	return &ir.Paragraph{Children: para}
}

// TransformElementToBlock dispatches a single JSX element to its block
// transformer by name: static HTML-like tags,
// reserved framework names, reserved runtime names and `<NS.Call>` forms,
// and finally PascalCase custom-component expansion.
func TransformElementToBlock(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	name := el.Name

	if name == "Fragment" {
		children, err := TransformBlockChildren(ctx, el.Children)
		if err != nil {
			return nil, err
		}
		return &ir.Group{Children: children}, nil
	}

	if staticTags[name] {
		return transformStaticElement(ctx, el)
	}

	if frameworkTags[name] {
		return transformFrameworkElement(ctx, el)
	}

	if ctx.Dialect == gctx.Runtime {
		if runtimeTags[name] {
			return transformRuntimeElement(ctx, el)
		}
		if ns, fn, ok := splitCallTag(name); ok {
			return transformRuntimeCallTag(ctx, el, ns, fn)
		}
	}

	if isPascalCase(name) {
		return expandComponent(ctx, el)
	}

	return nil, ctx.ErrorfElement(el.Pos.Line, name, "unrecognized element %q", name)
}

// splitCallTag recognizes the dynamic `<NS.Call ...>` runtime-function-call
// form, where NS is a registered runtime-function wrapper
// identifier and the tag's second segment is literally "Call".
func splitCallTag(name string) (ns, suffix string, ok bool) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) != 2 || parts[1] != "Call" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func isPascalCase(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// transformIfElse consumes an `<If>` element at children[i] and, when the
// next non-whitespace sibling is an `<Else>`, folds it into the same node.
// It returns the combined block and the number of EXTRA sibling slots
// consumed (0 if no Else was paired).
func transformIfElse(ctx *gctx.Context, children []astview.JSXChild, i int) (ir.Block, int, error) {
	el := children[i].(*astview.ElementChild).Element
	ifBlock, err := transformRuntimeElement(ctx, el)
	if err != nil {
		return nil, 0, err
	}
	ifNode, ok := ifBlock.(*ir.If)
	if !ok {
		return ifBlock, 0, nil
	}

	j := i + 1
	for j < len(children) {
		if t, ok := children[j].(*astview.Text); ok && isWhitespaceOnly(t.Value) {
			j++
			continue
		}
		break
	}
	if j >= len(children) {
		return ifNode, 0, nil
	}
	ec, ok := children[j].(*astview.ElementChild)
	if !ok || ec.Element.Name != "Else" {
		return ifNode, 0, nil
	}
	elseChildren, err := TransformBlockChildren(ctx, ec.Element.Children)
	if err != nil {
		return nil, 0, err
	}
	return &wrappedIfElse{If: ifNode, ElseChildren: elseChildren}, j - i, nil
}

// wrappedIfElse is an internal carrier only used while folding a sibling
// Else into its If during TransformBlockChildren; the emitter (pkg/emit)
// never sees this type directly — UnwrapIfElse below unwraps it into the
// pair the emitter walks. Embedding *ir.If gives it ir.Block's unexported
// marker method, which a type outside package ir cannot declare itself.
type wrappedIfElse struct {
	*ir.If
	ElseChildren []ir.Block
}

// UnwrapIfElse exposes the If/Else pair produced by TransformBlockChildren
// to the emitter, which renders the two consecutively. b is the value
// TransformBlockChildren appended to its result slice; ok is false for any
// ordinary block, including a bare *ir.If with no paired Else.
func UnwrapIfElse(b ir.Block) (ifNode *ir.If, elseChildren []ir.Block, ok bool) {
	w, ok := b.(*wrappedIfElse)
	if !ok {
		return nil, nil, false
	}
	return w.If, w.ElseChildren, true
}
