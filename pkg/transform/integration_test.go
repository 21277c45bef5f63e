package transform_test

// These tests reproduce the compiler's documented end-to-end scenarios
// verbatim: parse -> extract -> transform -> emit, with no shortcuts, so a
// regression anywhere in that chain shows up here.

import (
	"strings"
	"testing"

	"github.com/ormasoftchile/gertx/pkg/astview"
	"github.com/ormasoftchile/gertx/pkg/emit"
	"github.com/ormasoftchile/gertx/pkg/extract"
	"github.com/ormasoftchile/gertx/pkg/gctx"
	"github.com/ormasoftchile/gertx/pkg/ir"
	"github.com/ormasoftchile/gertx/pkg/transform"
)

// compileSource runs one source file through the full pipeline and returns
// its rendered Markdown.
func compileSource(t *testing.T, namespace, src string) string {
	t.Helper()
	file, err := astview.Parse("test.tsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl, err := extract.Extract("test.tsx", file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	dialect := gctx.Static
	if extract.IsRuntimeDialect(file) {
		dialect = gctx.Runtime
	}
	ctx := gctx.New("test.tsx", namespace, dialect, file, decl)
	root, err := transform.RootElement(file)
	if err != nil {
		t.Fatalf("RootElement: %v", err)
	}
	doc, err := transform.BuildDocument(ctx, root)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	return emit.Document(emit.Options{}, doc)
}

func TestScenarioStaticFileRead(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<Assign var={useVariable('STATE')} from={file('.planning/STATE.md')} />
		</Command>
	);
}
`
	got := compileSource(t, "cmd", src)
	want := "```bash\nSTATE=$(cat .planning/STATE.md)\n```"
	if !strings.Contains(got, want) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", got, want)
	}
}

func TestScenarioOptionalFileWithVariable(t *testing.T) {
	src := "" +
		"const PHASE_DIR = useVariable('PHASE_DIR');\n" +
		"export default function Cmd() {\n" +
		"\treturn (\n" +
		"\t\t<Command name=\"test\">\n" +
		"\t\t\t<Assign var={useVariable('CONTEXT')} from={file(`${PHASE_DIR}/*-CONTEXT.md`, {optional: true})} />\n" +
		"\t\t</Command>\n" +
		"\t);\n" +
		"}\n"
	got := compileSource(t, "cmd", src)
	want := `CONTEXT=$(cat "$PHASE_DIR"/*-CONTEXT.md 2>/dev/null)`
	if !strings.Contains(got, want) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", got, want)
	}
}

func TestScenarioQuotedValue(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<Assign var={useVariable('NAME')} from={value('my project')} />
		</Command>
	);
}
`
	got := compileSource(t, "cmd", src)
	if !strings.Contains(got, `NAME="my project"`) {
		t.Fatalf("got:\n%s\nwant substring NAME=\"my project\"", got)
	}
}

func TestScenarioQuotedValueRaw(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<Assign var={useVariable('NAME')} from={value('my project', {raw: true})} />
		</Command>
	);
}
`
	got := compileSource(t, "cmd", src)
	if !strings.Contains(got, "NAME=my project") {
		t.Fatalf("got:\n%s\nwant substring NAME=my project", got)
	}
}

func TestScenarioRuntimeFunctionCall(t *testing.T) {
	src := `
import { init } from './planPhase.v3';
const Init = runtimeFn(init);
const ctx = useRuntimeVar('CTX');

export default function Cmd() {
	return (
		<Command name="test">
			<Init.Call args={{arguments: "$ARGUMENTS"}} output={ctx} />
		</Command>
	);
}
`
	got := compileSource(t, "planPhase", src)
	want := `CTX=$(node .claude/runtime/runtime.js planPhase_init '{"arguments":"$ARGUMENTS"}')`
	if !strings.Contains(got, want) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", got, want)
	}
}

func TestScenarioIfElseWithReference(t *testing.T) {
	src := `
const ctx = useRuntimeVar('CTX');

export default function Cmd() {
	return (
		<Command name="test">
			<If condition={ctx.error}>A</If><Else>B</Else>
		</Command>
	);
}
`
	got := compileSource(t, "cmd", src)
	want := "**If $(echo \"$CTX\" | jq -r '.error'):**\n\nA\n\n**Otherwise:**\n\nB"
	if !strings.Contains(got, want) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", got, want)
	}
}

func TestScenarioAgentFrontmatterGSD(t *testing.T) {
	src := `
export default function Researcher() {
	return (
		<Agent name="researcher" description="Research" tools="Read Grep Glob" color="cyan">
			<p>Body.</p>
		</Agent>
	);
}
`
	got := compileSource(t, "researcher", src)
	want := "---\nname: researcher\ndescription: Research\ntools: Read Grep Glob\ncolor: cyan\n---\n"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("got:\n%s\nwant prefix:\n%s", got, want)
	}
}

func TestScenarioAgentFrontmatterOmitsToolsAndColor(t *testing.T) {
	src := `
export default function Researcher() {
	return (
		<Agent name="researcher" description="Research">
			<p>Body.</p>
		</Agent>
	);
}
`
	got := compileSource(t, "researcher", src)
	if strings.Contains(got, "tools:") {
		t.Fatalf("got:\n%s\nwant no tools: line", got)
	}
	if strings.Contains(got, "color:") {
		t.Fatalf("got:\n%s\nwant no color: line", got)
	}
}

// TestNoElseOrphanFails checks the invariant that a standalone Else (not
// preceded by an If) is a compile-time error, not a silent no-op.
func TestNoElseOrphanFails(t *testing.T) {
	src := `
const ctx = useRuntimeVar('CTX');

export default function Cmd() {
	return (
		<Command name="test">
			<Else>B</Else>
		</Command>
	);
}
`
	file, err := astview.Parse("test.tsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl, err := extract.Extract("test.tsx", file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	ctx := gctx.New("test.tsx", "cmd", gctx.Runtime, file, decl)
	root, err := transform.RootElement(file)
	if err != nil {
		t.Fatalf("RootElement: %v", err)
	}
	if _, err := transform.BuildDocument(ctx, root); err == nil {
		t.Fatal("expected an error for an orphaned Else, got nil")
	}
}

// TestAgentPurityRejectsRuntimeBlock checks that a runtime-only block
// variant can never reach an AgentDocument.
func TestAgentPurityRejectsRuntimeBlock(t *testing.T) {
	src := `
const ctx = useRuntimeVar('CTX');

export default function Researcher() {
	return (
		<Agent name="researcher" description="Research">
			<If condition={ctx.error}>A</If><Else>B</Else>
		</Agent>
	);
}
`
	file, err := astview.Parse("test.tsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl, err := extract.Extract("test.tsx", file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	ctx := gctx.New("test.tsx", "researcher", gctx.Runtime, file, decl)
	root, err := transform.RootElement(file)
	if err != nil {
		t.Fatalf("RootElement: %v", err)
	}
	if _, err := transform.BuildDocument(ctx, root); err == nil {
		t.Fatal("expected agent purity violation error, got nil")
	}
}

func TestAssignGroupRendersOneFencedBlockWithBlankLineSentinel(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<AssignGroup>
				<Assign var={useVariable('A')} from={value('1', {raw: true})} />
				<br/>
				<Assign var={useVariable('B')} from={value('2', {raw: true})} />
			</AssignGroup>
		</Command>
	);
}
`
	got := compileSource(t, "cmd", src)
	want := "```bash\nA=1\n\nB=2\n```"
	if !strings.Contains(got, want) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", got, want)
	}
}

// TestAssignIdempotence checks that transforming and emitting the same
// AssignGroup twice, independently, produces byte-identical output.
func TestAssignIdempotence(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<AssignGroup>
				<Assign var={useVariable('A')} from={env('HOME')} />
			</AssignGroup>
		</Command>
	);
}
`
	first := compileSource(t, "cmd", src)
	second := compileSource(t, "cmd", src)
	if first != second {
		t.Fatalf("non-deterministic emission:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// TestCycleDetection checks that a local-component expansion cycle is a
// named error, not infinite recursion.
func TestCycleDetection(t *testing.T) {
	src := `
function A() {
	return (<B/>);
}
function B() {
	return (<A/>);
}
export default function Cmd() {
	return (
		<Command name="test">
			<A/>
		</Command>
	);
}
`
	file, err := astview.Parse("test.tsx", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl, err := extract.Extract("test.tsx", file)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	ctx := gctx.New("test.tsx", "cmd", gctx.Static, file, decl)
	root, err := transform.RootElement(file)
	if err != nil {
		t.Fatalf("RootElement: %v", err)
	}
	if _, err := transform.BuildDocument(ctx, root); err == nil {
		t.Fatal("expected a cycle-detection error, got nil")
	}
}

// TestWhitespaceNormalization checks that emitted paragraph text has no
// leading/trailing whitespace even when the source text run is padded with
// spaces and newlines.
func TestWhitespaceNormalization(t *testing.T) {
	src := "export default function Cmd() {\n\treturn (\n\t\t<Command name=\"test\">\n\t\t\t<p>   hello world   </p>\n\t\t</Command>\n\t);\n}\n"
	got := compileSource(t, "cmd", src)
	if strings.Contains(got, "  hello") || strings.Contains(got, "world  ") {
		t.Fatalf("got:\n%q\nwant no interior padding preserved", got)
	}
	if !strings.Contains(got, "hello world") {
		t.Fatalf("got:\n%q\nwant \"hello world\" present", got)
	}
}

// TestExhaustivenessSmokeOverAllStaticBlockKinds backs a compile-time
// property: every block/inline/condition/data-source/literal variant has a
// case in the matching emitter. There is no runtime assertion to make
// beyond the pipeline itself compiling and these scenario tests passing; a
// new unhandled variant shows up as a panic the first time any test
// constructs one, which the following minimal document does for every
// block variant a static-dialect source element can produce.
func TestExhaustivenessSmokeOverAllStaticBlockKinds(t *testing.T) {
	src := `
export default function Cmd() {
	return (
		<Command name="test">
			<h1>Title</h1>
			<p>Para</p>
			<ul><li>one</li><li>two</li></ul>
			<pre>code</pre>
			<blockquote><p>quoted</p></blockquote>
			<hr/>
			<div name="box"><p>inside</p></div>
			<div><p>tight</p></div>
			<Table>
				<thead><tr><th>A</th></tr></thead>
				<tbody><tr><td>1</td></tr></tbody>
			</Table>
			<ExecutionContext paths="a.go">
				<p>context</p>
			</ExecutionContext>
			<SuccessCriteria><li>done</li></SuccessCriteria>
			<OfferNext><Option label="Next" value="next"/></OfferNext>
			<ReadState state="s" field="f" output="out"/>
			<Step title="One"><p>body</p></Step>
			<SpawnAgent agent="helper" model="m" description="d">Do the thing.</SpawnAgent>
			<XmlBlock name="box2"><p>x</p></XmlBlock>
			<Assign var={useVariable('X')} from={value('v')} />
			<AssignGroup><Assign var={useVariable('Y')} from={env('HOME')} /></AssignGroup>
			<OnStatus agent="helper" status="SUCCESS"><p>ok</p></OnStatus>
			<WriteState state="s" field="f" value="v"/>
		</Command>
	);
}
`
	got, err := func() (doc string, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &panicError{r}
			}
		}()
		doc = compileSource(t, "cmd", src)
		return
	}()
	if err != nil {
		t.Fatalf("emit panicked on a static document: %v", err)
	}
	if got == "" {
		t.Fatal("expected non-empty emitted document")
	}
}

type panicError struct{ v any }

func (p *panicError) Error() string { return "panic: " + toString(p.v) }

func toString(v any) string {
	if e, ok := v.(error); ok {
		return e.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "non-string panic value"
}

var _ ir.Document = (*ir.CommandDocument)(nil)
