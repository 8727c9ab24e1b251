package openapi

import (
	"fmt"

	"github.com/gaborage/swaggelize/service"
)

// requestBody resolves an operation's input views into a request body
// reference: a single view references its schema directly, several views
// compose a relation schema.
func (a *Assembler) requestBody(op *service.Operation) (map[string]any, error) {
	switch len(op.Input) {
	case 0:
		return nil, nil
	case 1:
		name := op.Input[0].SchemaName()
		if _, ok := a.schemas[name]; !ok {
			return nil, fmt.Errorf("unknown schema %s referenced as input of %s %s", name, op.Method, op.Path)
		}
		return jsonContent(name), nil
	default:
		name, err := composeRelation(op.Input, a.models, a.schemas, true)
		if err != nil {
			return nil, err
		}
		return jsonContent(name), nil
	}
}

// jsonContent wraps a schema reference in the application/json content
// envelope shared by request bodies and schema-bearing responses.
func jsonContent(schemaName string) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{
					"$ref": "#/components/schemas/" + schemaName,
				},
			},
		},
	}
}
