package openapi

import (
	"fmt"
	"strings"

	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// Parameters builds the shared components.parameters map from every
// operation of every service: one component per distinct (static segment,
// parameter name) pair, plus one query component per filterable field.
func (a *Assembler) Parameters(ops []service.Operation) map[string]any {
	components := map[string]any{}
	for i := range ops {
		op := &ops[i]
		for _, param := range op.Params {
			name := param.ComponentName()
			if _, seen := components[name]; seen {
				continue
			}
			components[name] = map[string]any{
				"name":        param.Name,
				"in":          "path",
				"schema":      map[string]any{"type": "string"},
				"required":    true,
				"description": fmt.Sprintf("%s %s", param.Static, param.Name),
			}
		}
		for _, component := range a.filterParams(op) {
			components[component.name] = component.definition
		}
	}
	return components
}

type filterParam struct {
	name       string
	definition map[string]any
}

// filterParams renders an operation's filterable fields as optional query
// parameters, typed from the owning model's field declarations. Fields the
// model does not declare are skipped.
func (a *Assembler) filterParams(op *service.Operation) []filterParam {
	if len(op.FilterableFields) == 0 {
		return nil
	}
	m := model.FindByName(a.models, op.Model)
	if m == nil {
		a.log.Warn().Str("model", op.Model).Msg("filterable fields reference unknown model")
		return nil
	}

	var params []filterParam
	for _, name := range op.FilterableFields {
		field := findField(m, name)
		if field == nil {
			a.log.Warn().Str("model", op.Model).Str("field", name).Msg("filterable field not declared on model")
			continue
		}
		params = append(params, filterParam{
			name: filterComponentName(op.Model, name),
			definition: map[string]any{
				"name":        name,
				"in":          "query",
				"schema":      model.TypeOf(field.StorageType).Map(),
				"required":    false,
				"description": field.Description,
			},
		})
	}
	return params
}

func filterComponentName(modelName, field string) string {
	return service.Capitalize(modelName) + service.Capitalize(field) + "Filter"
}

// parameterRefs lists the $ref entries of one operation: its path
// parameters followed by its filter parameters.
func (a *Assembler) parameterRefs(op *service.Operation) []any {
	var refs []any
	for _, param := range op.Params {
		refs = append(refs, map[string]any{
			"$ref": "#/components/parameters/" + param.ComponentName(),
		})
	}
	for _, component := range a.filterParams(op) {
		refs = append(refs, map[string]any{
			"$ref": "#/components/parameters/" + component.name,
		})
	}
	return refs
}

func findField(m *model.Model, name string) *model.Field {
	for i := range m.Fields {
		if strings.EqualFold(m.Fields[i].Name, name) {
			return &m.Fields[i]
		}
	}
	return nil
}
