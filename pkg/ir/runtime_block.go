package ir

// RuntimeVarDecl records a runtime-variable declaration and its opaque
// type. The emitter renders it as an empty string, so neither the name nor
// the type appears in the document. The shell-level assignment itself
// happens via RuntimeCall or Assign{From: RuntimeFnSource}.
type RuntimeVarDecl struct {
	VarName string
	Type    string // opaque, captured verbatim from the TS type argument
}

func (*RuntimeVarDecl) blockNode() {}

// RuntimeCall is `<F.Call args={{...}} output={ctx} />`.
type RuntimeCall struct {
	Namespace string
	Function  string
	Args      map[string]Literal
	ArgOrder  []string
	Output    string // runtime variable name, "" if unbound
}

func (*RuntimeCall) blockNode() {}

type If struct {
	Condition Condition
	Children  []Block
}

func (*If) blockNode() {}

// Else must appear only as the sibling immediately following an If (spec
// §3.7); the dispatcher enforces pairing at construction time and attaches
// the Else to its If rather than representing the pairing in the type.
type Else struct{ Children []Block }

func (*Else) blockNode() {}

type Loop struct {
	Max      int // positive integer literal
	Counter  string
	Children []Block
}

func (*Loop) blockNode() {}

type Break struct{ Message string }

func (*Break) blockNode() {}

type Return struct {
	Status  StatusTag
	Message string
}

func (*Return) blockNode() {}

type AskUserOption struct {
	Label string
	Value string
}

type AskUser struct {
	Question string
	Options  []AskUserOption
	Output   string
}

func (*AskUser) blockNode() {}
