package extraction

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed payload.schema.json
var payloadSchemaJSON []byte

// SchemaIssue is one advisory finding from the payload shape check.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

var (
	payloadSchemaOnce sync.Once
	payloadSchema     *openapi3.Schema
	payloadSchemaErr  error
)

func loadPayloadSchema() (*openapi3.Schema, error) {
	payloadSchemaOnce.Do(func() {
		schema := &openapi3.Schema{}
		if err := schema.UnmarshalJSON(payloadSchemaJSON); err != nil {
			payloadSchemaErr = fmt.Errorf("extraction: parse payload schema: %w", err)
			return
		}
		payloadSchema = schema
	})
	return payloadSchema, payloadSchemaErr
}

// CheckPayload validates a raw extraction payload against the expected shape
// and returns advisory issues. The check never gates normalization: the
// normalizer tolerates every shape defect reported here, so callers use the
// result for diagnostics only. Only the embedded schema failing to load is
// an error.
func CheckPayload(raw []byte) ([]SchemaIssue, error) {
	schema, err := loadPayloadSchema()
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return []SchemaIssue{{Message: fmt.Sprintf("payload is not valid JSON: %v", err)}}, nil
	}

	err = schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]SchemaIssue, 0, len(multi))
		for _, item := range multi {
			issues = append(issues, issueFromSchemaError(item))
		}
		return issues, nil
	}
	return []SchemaIssue{issueFromSchemaError(err)}, nil
}

func issueFromSchemaError(err error) SchemaIssue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		issue := SchemaIssue{Message: schemaErr.Reason}
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			issue.Path = "/" + strings.Join(pointer, "/")
		}
		if issue.Message == "" {
			issue.Message = schemaErr.Error()
		}
		return issue
	}
	return SchemaIssue{Message: err.Error()}
}
