package transform

import (
	"fmt"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// ValidateAgentPurity walks a transformed block sequence and reports an
// error naming the first runtime-only variant found: an Agent document
// must not transitively contain any runtime-only block variant. It must
// run on the transformer's own output (before wrappedIfElse is unwrapped
// for emission) since that carrier itself signals a runtime-only If/Else
// pair.
func ValidateAgentPurity(blocks []ir.Block) error {
	for _, b := range blocks {
		if err := checkPureBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func checkPureBlock(b ir.Block) error {
	switch v := b.(type) {
	case *ir.RuntimeVarDecl:
		return fmt.Errorf("runtime variable declaration %q is not allowed in an Agent document", v.VarName)
	case *ir.RuntimeCall:
		return fmt.Errorf("runtime call %q is not allowed in an Agent document", v.Function)
	case *ir.If, *ir.Else, *wrappedIfElse:
		return fmt.Errorf("If/Else control flow is not allowed in an Agent document")
	case *ir.Loop:
		return fmt.Errorf("Loop is not allowed in an Agent document")
	case *ir.Break:
		return fmt.Errorf("Break is not allowed in an Agent document")
	case *ir.Return:
		return fmt.Errorf("Return is not allowed in an Agent document")
	case *ir.AskUser:
		return fmt.Errorf("AskUser is not allowed in an Agent document")

	case *ir.Blockquote:
		return ValidateAgentPurity(v.Children)
	case *ir.Group:
		return ValidateAgentPurity(v.Children)
	case *ir.Indent:
		return ValidateAgentPurity(v.Children)
	case *ir.XmlBlock:
		return ValidateAgentPurity(v.Children)
	case *ir.OnStatus:
		return ValidateAgentPurity(v.Children)
	case *ir.Step:
		return ValidateAgentPurity(v.Body)
	case *ir.ExecutionContext:
		return ValidateAgentPurity(v.Children)
	case *ir.List:
		for _, item := range v.Items {
			if err := ValidateAgentPurity(item.Children); err != nil {
				return err
			}
		}
	}
	return nil
}
