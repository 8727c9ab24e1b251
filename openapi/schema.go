package openapi

import (
	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// Schemas is the component schema registry, keyed by component name
// ("UserList", "UserPostRelationItem", ...).
type Schemas map[string]map[string]any

// Shared error-response schema names.
const (
	Response400Schema = "Response400Schema"
	Response409Schema = "Response409Schema"
)

// SchemaName is the component name of one (model, view) projection.
func SchemaName(modelName, view string) string {
	return service.Capitalize(modelName) + service.Capitalize(view)
}

// Synthesize builds one schema per (model, view) pair. The view set is the
// single source of field inclusion: a field appears in a view's schema
// exactly when its annotation lists that view. The list view produces an
// array-of-object schema, every other view a plain object schema.
func Synthesize(models []*model.Model, views []string) Schemas {
	schemas := make(Schemas)
	for _, m := range models {
		for _, view := range views {
			schemas[SchemaName(m.Name, view)] = viewSchema(m, view)
		}
	}
	schemas[Response400Schema] = errorDetailSchema()
	schemas[Response409Schema] = errorDetailSchema()
	return schemas
}

func viewSchema(m *model.Model, view string) map[string]any {
	properties := map[string]any{}
	var required []any
	for i := range m.Fields {
		field := &m.Fields[i]
		if !field.HasView(view) {
			continue
		}
		prop := model.TypeOf(field.StorageType).Map()
		prop["description"] = field.Description
		properties[field.Name] = prop
		if field.Required {
			required = append(required, field.Name)
		}
	}

	object := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		object["required"] = required
	}

	if view == "list" {
		return map[string]any{
			"type":  "array",
			"items": object,
		}
	}
	return object
}

// errorDetailSchema is the shared body of 400 and 409 responses: a list of
// field/message pairs.
func errorDetailSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"details": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"field": map[string]any{
							"type":        "string",
							"description": "Name of the field",
						},
						"message": map[string]any{
							"type":        "string",
							"description": "Message on validation",
						},
					},
				},
			},
		},
	}
}

// properties returns the property map of a schema, reaching through the
// items wrapper for array (list view) schemas.
func properties(schema map[string]any) map[string]any {
	if schema["type"] == "array" {
		if items, ok := schema["items"].(map[string]any); ok {
			if props, ok := items["properties"].(map[string]any); ok {
				return props
			}
		}
		return nil
	}
	props, _ := schema["properties"].(map[string]any)
	return props
}
