package service

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaborage/swaggelize/logger"
)

// descriptorBody is the raw YAML shape under the descriptor's single
// top-level model key.
type descriptorBody struct {
	CollectionOperations map[string]operationSpec `yaml:"collectionOperations"`
	ItemOperations       map[string]operationSpec `yaml:"itemOperations"`
}

type operationSpec struct {
	Method           string             `yaml:"method" validate:"omitempty,httpmethod"`
	Path             string             `yaml:"path"`
	OpenAPIContext   openapiContext     `yaml:"openapi_context"`
	Input            []string           `yaml:"input" validate:"dive,viewref"`
	Output           []OutputEntry      `yaml:"output"`
	FilterableFields []string           `yaml:"filterableFields"`
	Tags             string             `yaml:"tags"`
	IsCreation       *bool              `yaml:"isCreation"`
	Responses        *ResponseOverrides `yaml:"responses"`
}

type openapiContext struct {
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
}

// Parse decodes one service descriptor and resolves every declared
// operation to a concrete path, consulting the route table when none is
// given. Operations whose path cannot be resolved are skipped, not fatal.
func Parse(content []byte, table RouteTable, prefix string, log logger.Logger) (*Service, error) {
	var doc map[string]descriptorBody
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode service descriptor: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("service descriptor must declare exactly one model, found %d", len(doc))
	}

	var model string
	var body descriptorBody
	for key, value := range doc {
		model, body = key, value
	}

	p := &parser{model: model, table: table, prefix: prefix, log: log}
	svc := &Service{Model: model}
	collection, err := p.operations(body.CollectionOperations, true)
	if err != nil {
		return nil, err
	}
	item, err := p.operations(body.ItemOperations, false)
	if err != nil {
		return nil, err
	}
	svc.Operations = append(collection, item...)
	return svc, nil
}

type parser struct {
	model  string
	table  RouteTable
	prefix string
	log    logger.Logger
}

func (p *parser) operations(specs map[string]operationSpec, collection bool) ([]Operation, error) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	var ops []Operation
	for _, name := range names {
		spec := specs[name]
		if err := validateSpec(name, &spec); err != nil {
			return nil, err
		}
		op, ok, err := p.operation(name, &spec, collection)
		if err != nil {
			return nil, err
		}
		if ok {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (p *parser) operation(name string, spec *operationSpec, collection bool) (Operation, bool, error) {
	method := spec.Method
	if method == "" {
		method = name
	}
	method = strings.ToLower(method)

	path := spec.Path
	if path == "" {
		resolved, ok := p.table.DefaultPath(p.model, p.prefix, collection)
		if !ok {
			// No URL means the operation cannot be represented.
			p.log.Debug().Str("model", p.model).Str("operation", name).Msg("operation skipped, no matching route")
			return Operation{}, false, nil
		}
		path = resolved
	}
	path = NormalizePath(StripPrefix(path, p.prefix))

	op := Operation{
		Path:             path,
		Method:           method,
		Model:            p.model,
		IsCollection:     collection,
		Summary:          spec.OpenAPIContext.Summary,
		Description:      spec.OpenAPIContext.Description,
		Output:           spec.Output,
		FilterableFields: spec.FilterableFields,
		Overrides:        spec.Responses,
		CustomName:       Pascalize(name),
		Params:           PathParams(path),
	}

	if spec.Tags != "" {
		op.Tags = []string{spec.Tags}
	} else {
		op.Tags = []string{p.model}
	}

	for _, raw := range spec.Input {
		ref, err := ParseViewRef(raw)
		if err != nil {
			return Operation{}, false, err
		}
		op.Input = append(op.Input, ref)
	}

	if method == "post" {
		if spec.IsCreation != nil {
			op.IsCreation = *spec.IsCreation
		} else {
			op.IsCreation = name == "post"
		}
	}
	return op, true, nil
}
