package openapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// responses builds the full response set of one operation: the
// method-dependent success and error responses first, the caller's
// overrides applied last.
func (a *Assembler) responses(op *service.Operation) (map[string]any, error) {
	responses := map[string]any{}

	outName, hasOutput, err := a.outputSchema(op)
	if err != nil {
		return nil, err
	}

	switch {
	case !hasOutput || op.Method == "delete":
		responses["204"] = map[string]any{"description": "No content"}
		a.attachNotFound(responses, op)
	case op.Method == "get":
		responses["200"] = okResponse(outName, op.Summary)
		a.attachNotFound(responses, op)
	case op.Method == "post":
		if op.IsCreation {
			responses["201"] = createdResponse(outName, op)
		} else {
			responses["200"] = okResponse(outName, op.Summary)
		}
		a.attachBodyErrors(responses, op)
	case op.Method == "put" || op.Method == "patch":
		responses["200"] = okResponse(outName, op.Summary)
		a.attachNotFound(responses, op)
		a.attachBodyErrors(responses, op)
	default:
		responses["200"] = okResponse(outName, op.Summary)
		a.attachNotFound(responses, op)
	}

	responses["401"] = map[string]any{"description": "Unauthorized"}
	responses["403"] = map[string]any{"description": "Forbidden"}
	responses["500"] = map[string]any{"description": "Internal server error"}

	applyOverrides(responses, op.Overrides)
	return responses, nil
}

// outputSchema resolves the operation's output list to one schema name:
// a single view directly, several views through relation composition, and
// custom entries through a Custom<Name> schema derived from (a copy of)
// whatever base applies.
func (a *Assembler) outputSchema(op *service.Operation) (string, bool, error) {
	var refs []service.ViewRef
	var customs []map[string]any
	for _, entry := range op.Output {
		if entry.IsCustom() {
			customs = append(customs, entry.Custom)
		} else {
			refs = append(refs, entry.Ref)
		}
	}
	if len(refs) == 0 && len(customs) == 0 {
		return "", false, nil
	}

	var base string
	switch len(refs) {
	case 0:
	case 1:
		base = refs[0].SchemaName()
		if _, ok := a.schemas[base]; !ok {
			return "", false, fmt.Errorf("unknown schema %s referenced as output of %s %s", base, op.Method, op.Path)
		}
	default:
		name, err := composeRelation(refs, a.models, a.schemas, false)
		if err != nil {
			return "", false, err
		}
		base = name
	}

	if len(customs) == 0 {
		return base, true, nil
	}
	return a.customSchema(op, base, customs), true, nil
}

// customSchema registers the Custom<Name> schema for an operation whose
// output declares inline shapes, and returns its name.
func (a *Assembler) customSchema(op *service.Operation, base string, customs []map[string]any) string {
	name := "Custom" + base
	if base == "" {
		name = "Custom" + op.CustomName
	}
	if _, exists := a.schemas[name]; exists {
		return name
	}

	var schema map[string]any
	if base != "" {
		schema = cloneSchema(a.schemas[base])
		target := properties(schema)
		for _, custom := range customs {
			merged := false
			if props, ok := custom["properties"].(map[string]any); ok && target != nil {
				for key, value := range props {
					target[key] = transformShape(value)
				}
				merged = true
			}
			if !merged {
				a.log.Warn().Str("operation", op.CustomName).Msg("custom output without properties cannot extend a base schema")
			}
		}
	} else if len(customs) == 1 {
		shape, _ := transformShape(customs[0]).(map[string]any)
		schema = shape
	} else {
		merged := map[string]any{}
		for _, custom := range customs {
			if props, ok := custom["properties"].(map[string]any); ok {
				for key, value := range props {
					merged[key] = transformShape(value)
				}
			}
		}
		schema = map[string]any{"type": "object", "properties": merged}
	}
	if schema == nil {
		schema = map[string]any{"type": "object", "properties": map[string]any{}}
	}

	a.schemas[name] = schema
	return name
}

// transformShape sanitizes a declared custom shape into OpenAPI schema
// keys, keeping only type, format, description and the nested
// properties/items structure.
func transformShape(value any) any {
	shape, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := map[string]any{}
	for _, key := range []string{"type", "format", "description"} {
		if v, ok := shape[key]; ok {
			out[key] = v
		}
	}
	if props, ok := shape["properties"].(map[string]any); ok {
		transformed := make(map[string]any, len(props))
		for key, v := range props {
			transformed[key] = transformShape(v)
		}
		out["properties"] = transformed
	}
	if items, ok := shape["items"]; ok {
		out["items"] = transformShape(items)
	}
	return out
}

func okResponse(schemaName, summary string) map[string]any {
	resp := map[string]any{"description": summary}
	for key, value := range jsonContent(schemaName) {
		resp[key] = value
	}
	return resp
}

func createdResponse(schemaName string, op *service.Operation) map[string]any {
	description := fmt.Sprintf("%s created successfully", service.Capitalize(op.Model))
	if op.Model == "" {
		description = fmt.Sprintf("%s successfully", op.Summary)
	}
	resp := map[string]any{
		"description": description,
	}
	for key, value := range jsonContent(schemaName) {
		resp[key] = value
	}
	return resp
}

func (a *Assembler) attachNotFound(responses map[string]any, op *service.Operation) {
	if !op.HasParams() {
		return
	}
	statics := make([]string, 0, len(op.Params))
	for _, param := range op.Params {
		statics = append(statics, param.Static)
	}
	responses["404"] = map[string]any{
		"description": fmt.Sprintf("%s not found", strings.Join(statics, ", ")),
	}
}

// attachBodyErrors derives 400 from the model's field validators and 409
// from its unique constraints. The referenced model is the primary output
// view's model, falling back to the operation's owner.
func (a *Assembler) attachBodyErrors(responses map[string]any, op *service.Operation) {
	modelName := op.Model
	for _, entry := range op.Output {
		if !entry.IsCustom() {
			modelName = entry.Ref.Model
			break
		}
	}
	m := model.FindByName(a.models, modelName)

	responses["400"] = errorResponse(
		"Bad request (VALIDATION_ERROR)",
		Response400Schema,
		"ValidationError",
		model.ValidationDetails(m),
	)
	responses["409"] = errorResponse(
		"Unique constraint errors",
		Response409Schema,
		"UniqueConstraintError",
		model.UniqueDetails(m),
	)
}

func errorResponse(description, schemaName, errName string, details []model.ErrorDetail) map[string]any {
	errors := make([]any, 0, len(details))
	for _, d := range details {
		errors = append(errors, map[string]any{"field": d.Field, "message": d.Message})
	}
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{
					"$ref": "#/components/schemas/" + schemaName,
				},
				"example": map[string]any{
					"name":   errName,
					"errors": errors,
				},
			},
		},
	}
}

// applyOverrides adjusts the assembled responses last: omitted status
// codes are deleted outright, custom entries overwrite descriptions only.
func applyOverrides(responses map[string]any, overrides *service.ResponseOverrides) {
	if overrides == nil {
		return
	}
	for _, status := range overrides.Omit {
		delete(responses, strconv.Itoa(status))
	}
	for _, custom := range overrides.Custom {
		if resp, ok := responses[strconv.Itoa(custom.Status)].(map[string]any); ok {
			resp["description"] = custom.Message
		}
	}
}
