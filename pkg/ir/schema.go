package ir

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Snapshot is a JSON-serializable shallow projection of a Document, used
// only for schema generation/validation fixtures, not the compile pipeline
// itself, which works on the live Block/Inline interface tree. It mirrors a
// Document as a plain wire struct rather than the runtime interface type,
// so jsonschema reflection has something concrete to walk.
type Snapshot struct {
	Kind        string   `json:"kind" jsonschema:"required,enum=command,enum=agent,enum=skill"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Color       string   `json:"color,omitempty"`
	BlockCount  int      `json:"blockCount" jsonschema:"minimum=0"`
}

// Snapshot projects doc into its JSON-serializable shape.
func (doc *AgentDocument) Snapshot() Snapshot {
	return Snapshot{Kind: "agent", Name: doc.Name, Description: doc.Description, Tools: doc.Tools, Color: doc.Color, BlockCount: len(doc.Blocks)}
}

func (doc *CommandDocument) SnapshotOf() Snapshot {
	return Snapshot{Kind: "command", BlockCount: len(doc.Blocks)}
}

func (doc *SkillDocument) SnapshotOf() Snapshot {
	return Snapshot{Kind: "skill", Name: doc.Name, Description: doc.Description, BlockCount: len(doc.Blocks)}
}

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from
// Snapshot using invopop/jsonschema, the same reflector configuration the
// teacher's pkg/schema/export.go uses for its Runbook/ToolDefinition
// schemas.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Snapshot{})
	s.ID = "https://github.com/ormasoftchile/gertx/schemas/document-v1.json"
	s.Title = "gertx compiled document snapshot"
	s.Description = "Shallow schema for a compiled CommandDocument/AgentDocument/SkillDocument, used to validate fixture golden files"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document schema: %w", err)
	}
	return data, nil
}
