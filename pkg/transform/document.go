package transform

import (
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/gerr"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// RootElement returns the JSX tree a source file's default export yields,
// whichever form it was written in (a bare `export default (<X/>)`, or a
// function declaration that returns one).
func RootElement(file *astview.File) (*astview.Element, error) {
	for _, stmt := range file.Statements {
		switch s := stmt.(type) {
		case *astview.DefaultJSX:
			if s.Body == nil {
				return nil, gerr.New(gerr.Transform, file.Path, s.Pos.Line, "file has no default-exported JSX document")
			}
			return s.Body, nil
		case *astview.FuncDecl:
			if s.IsDefault && s.Body != nil {
				return s.Body, nil
			}
		}
	}
	return nil, gerr.New(gerr.Transform, file.Path, 0, "file has no default-exported JSX document")
}

// BuildDocument transforms the root element of ctx's file into one of the
// three top-level document kinds, dispatching on the root tag
// name.
func BuildDocument(ctx *gctx.Context, root *astview.Element) (ir.Document, error) {
	switch root.Name {
	case "Command":
		return buildCommandDocument(ctx, root)
	case "Agent":
		return buildAgentDocument(ctx, root)
	case "Skill":
		return buildSkillDocument(ctx, root)
	default:
		return nil, ctx.ErrorfElement(root.Pos.Line, root.Name, "unrecognized root document element %q: expected Command, Agent, or Skill", root.Name)
	}
}

func buildCommandDocument(ctx *gctx.Context, root *astview.Element) (ir.Document, error) {
	doc := &ir.CommandDocument{Header: make(map[string]string)}
	for _, a := range root.Attrs {
		switch a.Name {
		case "subfolder":
			doc.Subfolder = attrString(root, "subfolder")
		default:
			if s, ok := a.Value.(*astview.StringLit); ok {
				doc.Header[a.Name] = s.Value
				doc.HeaderKeys = append(doc.HeaderKeys, a.Name)
			}
		}
	}
	for name, shell := range ctx.Declared.Variables {
		_ = name
		doc.Variables = append(doc.Variables, shell)
	}
	for _, rf := range ctx.Declared.RuntimeFns {
		doc.RuntimeFnRefs = append(doc.RuntimeFnRefs, ctx.Namespace+"_"+rf.FnName)
	}
	blocks, err := TransformBlockChildren(ctx, root.Children)
	if err != nil {
		return nil, err
	}
	doc.Blocks = blocks
	return doc, nil
}

func buildAgentDocument(ctx *gctx.Context, root *astview.Element) (ir.Document, error) {
	name := attrString(root, "name")
	if name == "" {
		return nil, ctx.ErrorfElement(root.Pos.Line, "Agent", "Agent requires a name attribute")
	}
	description := attrString(root, "description")
	if description == "" {
		return nil, ctx.ErrorfElement(root.Pos.Line, "Agent", "Agent requires a description attribute")
	}
	doc := &ir.AgentDocument{
		Name:        name,
		Description: description,
		Color:       attrString(root, "color"),
		Folder:      attrString(root, "folder"),
	}
	if tools := attrString(root, "tools"); tools != "" {
		doc.Tools = strings.Fields(tools)
	}
	if in := attrString(root, "input"); in != "" {
		doc.Input = &ir.TypedRef{Name: in, Type: attrString(root, "inputType")}
	}
	if out := attrString(root, "output"); out != "" {
		doc.Output = &ir.TypedRef{Name: out, Type: attrString(root, "outputType")}
	}
	blocks, err := TransformBlockChildren(ctx, root.Children)
	if err != nil {
		return nil, err
	}
	if err := ValidateAgentPurity(blocks); err != nil {
		return nil, ctx.ErrorfElement(root.Pos.Line, "Agent", "%s", err.Error())
	}
	doc.Blocks = blocks
	return doc, nil
}

func buildSkillDocument(ctx *gctx.Context, root *astview.Element) (ir.Document, error) {
	name := attrString(root, "name")
	if name == "" {
		return nil, ctx.ErrorfElement(root.Pos.Line, "Skill", "Skill requires a name attribute")
	}
	doc := &ir.SkillDocument{
		Name:        name,
		Description: attrString(root, "description"),
		Folder:      attrString(root, "folder"),
	}
	var docChildren []astview.JSXChild
	for _, child := range root.Children {
		ec, ok := child.(*astview.ElementChild)
		if ok && ec.Element.Name == "Resource" {
			doc.Resources = append(doc.Resources, ir.ResourceAttachment{Path: attrString(ec.Element, "path")})
			continue
		}
		docChildren = append(docChildren, child)
	}
	blocks, err := TransformBlockChildren(ctx, docChildren)
	if err != nil {
		return nil, err
	}
	doc.Blocks = blocks
	return doc, nil
}
