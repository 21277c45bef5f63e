package bundle

import (
	"fmt"
	"strings"
)

// GenerateDispatcher builds the code-split dispatcher: it parses argv[1] as
// `<namespace>_<fn>`, dynamically imports that
// namespace's generated module on demand, and calls `<fn>(args)`. Unlike
// the single-entry mode, namespace modules are not statically imported
// here, so each namespace bundles independently with no shared-import
// deduplication across namespaces (by construction, per spec).
func GenerateDispatcher(units []Unit) string {
	var sb strings.Builder
	sb.WriteString("// generated by gertx -- do not edit by hand\n")
	sb.WriteString("const namespaces = {\n")
	for _, u := range units {
		fmt.Fprintf(&sb, "  %s: () => import(\"./%s.js\"),\n", u.Namespace, u.Namespace)
	}
	sb.WriteString("};\n\n")
	sb.WriteString(`async function main() {
  const qualified = process.argv[2] ?? "";
  const argsJson = process.argv[3] ?? "{}";
  const sep = qualified.indexOf("_");
  if (sep < 0) {
    process.stderr.write("gertx runtime: expected <namespace>_<fn>, got " + qualified + "\n");
    process.exit(1);
  }
  const ns = qualified.slice(0, sep);
  const fn = qualified.slice(sep + 1);
  const load = namespaces[ns];
  if (!load) {
    process.stderr.write("gertx runtime: unknown namespace " + ns + "\n");
    process.exit(1);
  }
  const mod = await load();
  const target = mod[fn];
  if (typeof target !== "function") {
    process.stderr.write("gertx runtime: unknown function " + qualified + "\n");
    process.exit(1);
  }
  const args = JSON.parse(argsJson);
  const result = await target(args);
  process.stdout.write(JSON.stringify(result));
}

main().catch((err) => {
  process.stderr.write(String(err && err.stack ? err.stack : err) + "\n");
  process.exit(1);
});
`)
	return sb.String()
}

// GenerateNamespaceModule re-exports one namespace's functions from its
// companion TS module under their bare (unprefixed) names, since the
// dispatcher addresses a loaded namespace module by `fn`, not `ns_fn`.
func GenerateNamespaceModule(u Unit) string {
	var sb strings.Builder
	sb.WriteString("// generated by gertx -- do not edit by hand\n")
	for _, fn := range u.Functions {
		fmt.Fprintf(&sb, "export { %s } from %q;\n", fn, importSpecifier(u.ModulePath))
	}
	return sb.String()
}
