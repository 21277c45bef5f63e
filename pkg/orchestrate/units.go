package orchestrate

import (
	"github.com/ormasoftchile/gertx/pkg/bundle"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
	"github.com/ormasoftchile/gertx/pkg/transform"
)

// collectRuntimeUsage walks doc's block tree and records every runtime
// function actually invoked (via a RuntimeCall block or a RuntimeFnSource
// Assign). The companion module path is taken from the import of the first
// wrapped runtime function found in ctx's extracted import graph, and all
// recorded functions share that one path. Static-dialect documents and
// agent/skill documents contribute nothing.
func collectRuntimeUsage(ctx *gctx.Context, namespace string, doc ir.Document) []bundle.Unit {
	cmd, ok := doc.(*ir.CommandDocument)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var fns []string
	record := func(fn string) {
		if seen[fn] {
			return
		}
		seen[fn] = true
		fns = append(fns, fn)
	}
	walkBlocks(cmd.Blocks, record)
	if len(fns) == 0 {
		return nil
	}
	modulePath := ""
	for _, rf := range ctx.Declared.RuntimeFns {
		if p, ok := ctx.Declared.Imports[rf.FnName]; ok {
			modulePath = p
			break
		}
	}
	return []bundle.Unit{{Namespace: namespace, ModulePath: modulePath, Functions: fns}}
}

func walkBlocks(blocks []ir.Block, record func(string)) {
	for _, b := range blocks {
		walkBlock(b, record)
	}
}

func walkBlock(b ir.Block, record func(string)) {
	if ifNode, elseChildren, ok := transform.UnwrapIfElse(b); ok {
		walkBlocks(ifNode.Children, record)
		walkBlocks(elseChildren, record)
		return
	}
	switch v := b.(type) {
	case *ir.RuntimeCall:
		record(v.Function)
	case *ir.Assign:
		if rf, ok := v.From.(*ir.RuntimeFnSource); ok {
			record(rf.Function)
		}
	case *ir.AssignGroup:
		for _, a := range v.Items {
			if a == nil {
				continue
			}
			walkBlock(a, record)
		}
	case *ir.Blockquote:
		walkBlocks(v.Children, record)
	case *ir.Group:
		walkBlocks(v.Children, record)
	case *ir.Indent:
		walkBlocks(v.Children, record)
	case *ir.XmlBlock:
		walkBlocks(v.Children, record)
	case *ir.OnStatus:
		walkBlocks(v.Children, record)
	case *ir.Step:
		walkBlocks(v.Body, record)
	case *ir.ExecutionContext:
		walkBlocks(v.Children, record)
	case *ir.If:
		walkBlocks(v.Children, record)
	case *ir.Else:
		walkBlocks(v.Children, record)
	case *ir.Loop:
		walkBlocks(v.Children, record)
	case *ir.List:
		for _, item := range v.Items {
			walkBlocks(item.Children, record)
		}
	}
}
