package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

func transformFrameworkElement(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	switch el.Name {
	case "XmlBlock":
		return transformXmlBlock(ctx, el)
	case "SpawnAgent":
		return transformSpawnAgent(ctx, el)
	case "Table":
		return transformTable(ctx, el)
	case "ExecutionContext":
		return transformExecutionContext(ctx, el)
	case "SuccessCriteria":
		return transformSuccessCriteria(el), nil
	case "OfferNext":
		return transformOfferNext(el), nil
	case "Assign":
		return transformAssign(ctx, el)
	case "AssignGroup":
		return transformAssignGroup(ctx, el)
	case "OnStatus":
		return transformOnStatus(ctx, el)
	case "Step":
		return transformStep(ctx, el)
	case "ReadState":
		return transformReadState(el), nil
	case "WriteState":
		return transformWriteState(ctx, el)
	default:
		return nil, ctx.ErrorfElement(el.Pos.Line, el.Name, "unsupported framework element %q", el.Name)
	}
}

var xmlBlockNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

func transformXmlBlock(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	name := attrString(el, "name")
	if name == "" || !xmlBlockNameRe.MatchString(name) || strings.HasPrefix(strings.ToLower(name), "xml") {
		return nil, ctx.ErrorfElement(el.Pos.Line, "XmlBlock", "invalid name %q: must match [A-Za-z_][A-Za-z0-9_.-]* and not begin with \"xml\"", name)
	}
	block := &ir.XmlBlock{Name: name, Attrs: make(map[string]string)}
	for _, a := range el.Attrs {
		if a.Name == "name" {
			continue
		}
		if s, ok := a.Value.(*astview.StringLit); ok {
			block.Attrs[a.Name] = s.Value
			block.AttrKeys = append(block.AttrKeys, a.Name)
		}
	}
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	block.Children = children
	return block, nil
}

func transformTable(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	table := &ir.Table{}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok {
			continue
		}
		switch ec.Element.Name {
		case "thead":
			rows, err := tableRows(ctx, ec.Element)
			if err != nil {
				return nil, err
			}
			if len(rows) > 0 {
				table.Header = rows[0]
			}
		case "tbody":
			rows, err := tableRows(ctx, ec.Element)
			if err != nil {
				return nil, err
			}
			table.Rows = append(table.Rows, rows...)
		}
	}
	if aligns := attrString(el, "aligns"); aligns != "" {
		for _, a := range strings.Split(aligns, ",") {
			table.Aligns = append(table.Aligns, ir.ColumnAlign(strings.TrimSpace(a)))
		}
	}
	return table, nil
}

func tableRows(ctx *gctx.Context, el *astview.Element) ([]ir.TableRow, error) {
	var rows []ir.TableRow
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "tr" {
			continue
		}
		var row ir.TableRow
		for _, cellChild := range ec.Element.Children {
			cec, ok := cellChild.(*astview.ElementChild)
			if !ok || (cec.Element.Name != "td" && cec.Element.Name != "th") {
				continue
			}
			cells, err := transformInlineChildren(ctx, cec.Element.Children)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, cells)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func transformExecutionContext(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	ec := &ir.ExecutionContext{Prefix: "@"}
	if p := attrString(el, "prefix"); p != "" {
		ec.Prefix = p
	}
	for _, a := range el.Attrs {
		if a.Name != "paths" {
			continue
		}
		if lit, ok := a.Value.(*astview.StringLit); ok {
			ec.Paths = append(ec.Paths, lit.Value)
		}
	}
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	ec.Children = children
	return ec, nil
}

func transformSuccessCriteria(el *astview.Element) ir.Block {
	sc := &ir.SuccessCriteria{}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "li" {
			continue
		}
		sc.Items = append(sc.Items, inlineTextOf(ec.Element.Children))
	}
	return sc
}

func transformOfferNext(el *astview.Element) ir.Block {
	on := &ir.OfferNext{}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok || ec.Element.Name != "Option" {
			continue
		}
		on.Options = append(on.Options, ir.OfferNextOption{
			Label: attrString(ec.Element, "label"),
			Value: attrString(ec.Element, "value"),
		})
	}
	return on
}

func transformAssign(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	varName, err := resolveShellVarAttr(ctx, el, "var")
	if err != nil {
		return nil, err
	}
	fromExpr, ok := attrExpr(el, "from")
	if !ok {
		return nil, ctx.ErrorfElement(el.Pos.Line, "Assign", "Assign requires a from attribute")
	}
	src, err := buildDataSource(ctx, fromExpr)
	if err != nil {
		return nil, err
	}
	return &ir.Assign{
		Var:     varName,
		From:    src,
		Comment: attrString(el, "comment"),
	}, nil
}

func transformAssignGroup(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	group := &ir.AssignGroup{}
	for _, child := range el.Children {
		ec, ok := child.(*astview.ElementChild)
		if !ok {
			continue
		}
		switch ec.Element.Name {
		case "Assign":
			b, err := transformAssign(ctx, ec.Element)
			if err != nil {
				return nil, err
			}
			group.Items = append(group.Items, b.(*ir.Assign))
		case "br":
			group.Items = append(group.Items, nil)
		}
	}
	return group, nil
}

func transformOnStatus(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	ref := attrString(el, "agent")
	status := ir.StatusTag(attrString(el, "status"))
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	return &ir.OnStatus{AgentOutputRef: ref, Status: status, Children: children}, nil
}

func transformStep(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	children, err := TransformBlockChildren(ctx, el.Children)
	if err != nil {
		return nil, err
	}
	return &ir.Step{Title: attrString(el, "title"), Body: children}, nil
}

func transformReadState(el *astview.Element) ir.Block {
	return &ir.ReadState{
		Handle: ir.StateHandle{Name: attrString(el, "state")},
		Field:  attrString(el, "field"),
		Output: attrString(el, "output"),
	}
}

func transformWriteState(ctx *gctx.Context, el *astview.Element) (ir.Block, error) {
	valueExpr, ok := attrExpr(el, "value")
	if !ok {
		return nil, ctx.ErrorfElement(el.Pos.Line, "WriteState", "WriteState requires a value attribute")
	}
	lit, err := toLiteral(ctx, valueExpr)
	if err != nil {
		return nil, err
	}
	return &ir.WriteState{
		Handle: ir.StateHandle{Name: attrString(el, "state")},
		Field:  attrString(el, "field"),
		Value:  lit,
		Merge:  attrBool(el, "merge"),
	}, nil
}

// parseIntAttr is used by runtimeflow.go for Loop's max attribute.
func parseIntAttr(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
