package emit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

// MarshalArgs renders args (in ArgOrder) as a compact JSON object, the form
// RuntimeCall/RuntimeFnSource embed in a single-quoted shell argument.
func MarshalArgs(args map[string]ir.Literal, order []string) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range order {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonString(k))
		sb.WriteByte(':')
		sb.WriteString(marshalLiteral(args[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func marshalLiteral(l ir.Literal) string {
	switch v := l.(type) {
	case ir.StringLiteral:
		return jsonString(v.Value)
	case ir.NumberLiteral:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case ir.BoolLiteral:
		return strconv.FormatBool(v.Value)
	case ir.ObjectLiteral:
		return MarshalArgs(v.Values, v.Keys)
	default:
		panic(fmt.Sprintf("emit: unreachable literal variant %T", l))
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ShellSingleQuote escapes a string that will be embedded inside a
// single-quoted shell argument using the standard `'\''` close-escape-open
// sequence.
func ShellSingleQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
