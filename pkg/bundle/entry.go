package bundle

import (
	"fmt"
	"strings"
)

// GenerateSingleEntry builds the synthetic entry module for single-entry
// mode: every namespace's runtime module is re-exported under
// `ns_fn`-prefixed names, wrapped by a tiny command-line front end that
// reads argv[1] (function name) and argv[2] (JSON args), invokes the
// matching function, and prints the JSON result.
func GenerateSingleEntry(units []Unit) string {
	var sb strings.Builder
	sb.WriteString("// generated by gertx -- do not edit by hand\n")
	for _, u := range units {
		for _, fn := range u.Functions {
			fmt.Fprintf(&sb, "import { %s as %s } from %q;\n", fn, prefixedName(u.Namespace, fn), importSpecifier(u.ModulePath))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dispatchTableSource(units))
	sb.WriteString("\n")
	sb.WriteString(cliFrontEndSource())
	return sb.String()
}

// dispatchTableSource renders the `const table = { ns_fn: ns_fn, ... };`
// lookup table of the single-entry module; GenerateDispatcher in
// codesplit.go writes its own table.
func dispatchTableSource(units []Unit) string {
	var sb strings.Builder
	sb.WriteString("const table = {\n")
	for _, u := range units {
		for _, fn := range u.Functions {
			name := prefixedName(u.Namespace, fn)
			fmt.Fprintf(&sb, "  %s,\n", name)
		}
	}
	sb.WriteString("};\n")
	return sb.String()
}

// cliFrontEndSource is the single-entry module's command-line front end:
// parse argv, look up the function, invoke, print. The code-split
// dispatcher writes its own.
func cliFrontEndSource() string {
	return `async function main() {
  const name = process.argv[2];
  const argsJson = process.argv[3] ?? "{}";
  const fn = table[name];
  if (typeof fn !== "function") {
    process.stderr.write("gertx runtime: unknown function " + name + "\n");
    process.exit(1);
  }
  const args = JSON.parse(argsJson);
  const result = await fn(args);
  process.stdout.write(JSON.stringify(result));
}

main().catch((err) => {
  process.stderr.write(String(err && err.stack ? err.stack : err) + "\n");
  process.exit(1);
});
`
}
