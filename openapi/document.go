package openapi

// Definition is the document envelope passed through verbatim from
// external configuration.
type Definition struct {
	OpenAPI string
	Info    map[string]any
	Servers []any
}

// Document is the terminal artifact of a compiler run, shaped for JSON
// serialization.
type Document map[string]any

// AssembleDocument merges the synthesized components and accumulated path
// fragments into the final OpenAPI document.
func AssembleDocument(def Definition, parameters map[string]any, schemas Schemas, paths map[string]any) Document {
	schemaComponents := make(map[string]any, len(schemas))
	for name, schema := range schemas {
		schemaComponents[name] = schema
	}
	if paths == nil {
		paths = map[string]any{}
	}
	return Document{
		"openapi": def.OpenAPI,
		"info":    def.Info,
		"servers": def.Servers,
		"components": map[string]any{
			"parameters": parameters,
			"schemas":    schemaComponents,
		},
		"paths": paths,
	}
}
