// Package openapi synthesizes the components and path objects of the final
// document: view schemas, composite relation schemas, parameters, request
// bodies and response sets.
package openapi

// deepCopy clones a schema value. Schemas behave as immutable values:
// every composition clones before mutating, so no composite ever aliases
// the base per-view schema it was derived from.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func cloneSchema(schema map[string]any) map[string]any {
	return deepCopy(schema).(map[string]any)
}
