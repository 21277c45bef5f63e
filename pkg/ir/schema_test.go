package ir_test

import (
	"encoding/json"
	"testing"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ormasoftchile/gertx/pkg/ir"
)

func compileSchema(t *testing.T) *sjsonschema.Schema {
	t.Helper()
	schemaJSON, err := ir.GenerateJSONSchema()
	if err != nil {
		t.Fatalf("GenerateJSONSchema: %v", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource("document-v1.json", schemaDoc); err != nil {
		t.Fatalf("add schema resource: %v", err)
	}
	sch, err := c.Compile("document-v1.json")
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return sch
}

func TestSnapshotSchemaValidatesAgentFixture(t *testing.T) {
	sch := compileSchema(t)
	agent := &ir.AgentDocument{Name: "researcher", Description: "Research", Tools: []string{"Read", "Grep"}, Color: "cyan"}
	snap := agent.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if err := sch.Validate(doc); err != nil {
		t.Fatalf("fixture should validate: %v", err)
	}
}

func TestSnapshotSchemaRejectsUnknownKind(t *testing.T) {
	sch := compileSchema(t)
	bad := map[string]any{"kind": "bogus", "blockCount": 0}
	if err := sch.Validate(bad); err == nil {
		t.Fatal("expected validation error for unknown kind")
	}
}
