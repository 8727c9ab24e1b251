package openapi

import (
	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// Assembler turns normalized operations into OpenAPI path objects,
// attaching parameters, request bodies and the full response set. It owns
// the schema registry for the duration of a run: composing relation or
// custom schemas registers them as a side effect.
type Assembler struct {
	models  []*model.Model
	schemas Schemas
	log     logger.Logger
}

// NewAssembler wires an assembler over the extracted models and the
// synthesized base schemas.
func NewAssembler(models []*model.Model, schemas Schemas, log logger.Logger) *Assembler {
	return &Assembler{models: models, schemas: schemas, log: log}
}

// Schemas exposes the registry including every composite and custom schema
// registered while assembling.
func (a *Assembler) Schemas() Schemas {
	return a.schemas
}

// Paths assembles one service's operations into a paths fragment:
// path -> method -> operation object. Only emission keys appear in the
// result; operation bookkeeping (views, creation flags, filter lists)
// stays behind in the typed records.
func (a *Assembler) Paths(ops []service.Operation) (map[string]any, error) {
	paths := map[string]any{}
	for i := range ops {
		op := &ops[i]

		object := map[string]any{
			"summary":     op.Summary,
			"description": op.Description,
			"tags":        toAnySlice(op.Tags),
		}
		if refs := a.parameterRefs(op); len(refs) > 0 {
			object["parameters"] = refs
		}

		body, err := a.requestBody(op)
		if err != nil {
			return nil, err
		}
		if body != nil {
			object["requestBody"] = body
		}

		responses, err := a.responses(op)
		if err != nil {
			return nil, err
		}
		object["responses"] = responses

		item, ok := paths[op.Path].(map[string]any)
		if !ok {
			item = map[string]any{}
			paths[op.Path] = item
		}
		item[op.Method] = object
	}
	return paths, nil
}

// MergePaths folds a per-service fragment into the accumulated paths map.
// Operations merge per method under their shared path entry.
func MergePaths(dst, fragment map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for path, value := range fragment {
		incoming, ok := value.(map[string]any)
		if !ok {
			continue
		}
		existing, ok := dst[path].(map[string]any)
		if !ok {
			dst[path] = incoming
			continue
		}
		for method, op := range incoming {
			existing[method] = op
		}
	}
	return dst
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
