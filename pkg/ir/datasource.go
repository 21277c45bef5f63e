package ir

// DataSource is the closed tagged union backing Assign.From.
type DataSource interface{ dataSource() }

// FileSource reads file contents: `VAR=$(cat path)`.
type FileSource struct {
	Path     PathExpr
	Optional bool
}

func (*FileSource) dataSource() {}

// BashSource runs a command and captures stdout: `VAR=$(cmd)`.
type BashSource struct {
	Command PathExpr
}

func (*BashSource) dataSource() {}

// ValueSource is a literal string, quoted unless Raw is set.
type ValueSource struct {
	Literal string
	Raw     bool
}

func (*ValueSource) dataSource() {}

// EnvSource reads an environment variable: `VAR=$NAME`.
type EnvSource struct {
	Name string
}

func (*EnvSource) dataSource() {}

// RuntimeFnSource invokes an extracted runtime function via the companion
// bundle: `VAR=$(node <runtime-path> <ns>_<fn> '<json>')`.
type RuntimeFnSource struct {
	Namespace string
	Function  string
	Args      map[string]Literal
	ArgOrder  []string // preserves declaration order for deterministic JSON
}

func (*RuntimeFnSource) dataSource() {}

// PathExpr is a template-literal-derived path or command string: a
// sequence of literal segments interleaved with resolved references.
type PathExpr struct {
	// Segments and Refs interleave exactly like TemplateLit: len(Segments)
	// == len(Refs)+1.
	Segments []string
	Refs     []PathRef
}

// PathRef is one `${...}` interpolation resolved at transform time.
type PathRef struct {
	// ShellVar is set when the reference resolves to a known shell
	// (static-dialect) variable: compiles to `$NAME`.
	ShellVar string
	// RuntimeVar + Path are set when the reference resolves to a runtime
	// variable's property access: compiles to a jq sub-expression.
	RuntimeVar string
	Path       []string
}

func (r PathRef) IsRuntime() bool { return r.RuntimeVar != "" }

// Literal is the closed set of JSON-serializable literal values accepted
// as RuntimeCall/RuntimeFnSource argument values.
type Literal interface{ literalValue() }

type StringLiteral struct{ Value string }

func (StringLiteral) literalValue() {}

type NumberLiteral struct{ Value float64 }

func (NumberLiteral) literalValue() {}

type BoolLiteral struct{ Value bool }

func (BoolLiteral) literalValue() {}

// ObjectLiteral is a nested literal object; Keys preserves declaration
// order for deterministic JSON emission.
type ObjectLiteral struct {
	Keys   []string
	Values map[string]Literal
}

func (ObjectLiteral) literalValue() {}

// SpawnInput is the closed union backing SpawnAgent.Input.
type SpawnInput interface{ spawnInput() }

// LiteralPrompt is a bare prompt string, with brace placeholders preserved
// verbatim.
type LiteralPrompt struct{ Text string }

func (*LiteralPrompt) spawnInput() {}

// StructuredInput maps property names to one of: a literal string, a
// JSON-serializable literal, or a runtime-variable reference.
type StructuredInput struct {
	Keys   []string
	Fields map[string]SpawnField
}

func (*StructuredInput) spawnInput() {}

// SpawnField is one value in a StructuredInput: exactly one of its
// pointers is non-nil.
type SpawnField struct {
	Literal *Literal
	VarRef  *RuntimeVarRef
}
