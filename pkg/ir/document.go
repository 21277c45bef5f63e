package ir

// Document is the closed set of top-level document kinds.
type Document interface{ documentNode() }

// CommandDocument carries free-form header metadata plus declared
// variable/runtime-function names for bookkeeping (e.g. bundler
// namespace-function discovery).
type CommandDocument struct {
	Header        map[string]string
	HeaderKeys    []string // declaration order, frontmatter key order
	Variables     []string
	RuntimeFnRefs []string // "<namespace>_<fn>" calls actually used
	Blocks        []Block
	Subfolder     string // from header, used only for output path policy
}

func (*CommandDocument) documentNode() {}

// TypedRef is an optional typed input/output reference on an AgentDocument
// header.
type TypedRef struct {
	Name string
	Type string
}

type AgentDocument struct {
	Name        string
	Description string
	Tools       []string // rendered as a single space-separated string
	Color       string
	Input       *TypedRef
	Output      *TypedRef
	Blocks      []Block
	Folder      string // from props, not emitted into the header
}

func (*AgentDocument) documentNode() {}

// ResourceAttachment is a skill's auxiliary file carried alongside the
// compiled Markdown (the expansion's supplemented feature — see
// SPEC_FULL.md "SkillDocument auxiliary file attachments").
type ResourceAttachment struct {
	Path string
}

type SkillDocument struct {
	Name        string
	Description string
	Blocks      []Block
	Folder      string
	Resources   []ResourceAttachment
}

func (*SkillDocument) documentNode() {}
