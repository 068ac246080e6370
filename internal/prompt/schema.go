package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const minQualificationReplySchema = `{
  "type": "object",
  "required": ["result", "justification", "evidence_found"],
  "properties": {
    "result": {"type": "string", "enum": ["PASS", "FAIL"]},
    "justification": {"type": "string"},
    "evidence_found": {"type": "string"}
  }
}`

const formalReplySchema = `{
  "type": "object",
  "required": ["raw_score", "evidence", "justification"],
  "properties": {
    "raw_score": {"type": "number"},
    "evidence": {"type": "string"},
    "justification": {"type": "string"}
  }
}`

var (
	minQualificationSchema = mustCompileSchema(minQualificationReplySchema, "min_qualification_reply.json")
	formalSchema           = mustCompileSchema(formalReplySchema, "formal_assessment_reply.json")
)

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("failed to parse %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateMinQualificationReply checks a model reply against the pass/fail reply shape.
// It returns nil for a conforming reply.
func ValidateMinQualificationReply(content string) error {
	return validate(minQualificationSchema, content)
}

// ValidateFormalReply checks a model reply against the scoring reply shape.
func ValidateFormalReply(content string) error {
	return validate(formalSchema, content)
}

func validate(schema *jsonschema.Schema, content string) error {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return fmt.Errorf("reply is not JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("reply does not match schema: %w", err)
	}
	return nil
}
