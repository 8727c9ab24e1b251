// Package service parses per-model service descriptors and resolves their
// operations against the live route table, producing normalized Operation
// records for the document assembler.
package service

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ViewRef points at one (model, view) projection, serialized as
// "model:view" in descriptors.
type ViewRef struct {
	Model string
	View  string
}

// ParseViewRef decodes the "model:view" lexical form.
func ParseViewRef(s string) (ViewRef, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ViewRef{}, fmt.Errorf("invalid view reference %q, expected model:view", s)
	}
	return ViewRef{Model: parts[0], View: parts[1]}, nil
}

func (v ViewRef) String() string {
	return v.Model + ":" + v.View
}

// SchemaName is the component name of the schema this reference resolves
// to, e.g. user:item -> UserItem.
func (v ViewRef) SchemaName() string {
	return Capitalize(v.Model) + Capitalize(v.View)
}

// OutputEntry is one entry of an operation's output list: either a view
// reference or a custom inline shape declared as an object.
type OutputEntry struct {
	Ref    ViewRef
	Custom map[string]any
}

// IsCustom reports whether the entry declares an inline shape instead of
// referencing a view schema.
func (o OutputEntry) IsCustom() bool {
	return o.Custom != nil
}

// UnmarshalYAML accepts either a scalar view reference or a mapping.
func (o *OutputEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		ref, err := ParseViewRef(raw)
		if err != nil {
			return err
		}
		o.Ref = ref
		return nil
	case yaml.MappingNode:
		return node.Decode(&o.Custom)
	default:
		return fmt.Errorf("output entry must be a view reference or an object")
	}
}

// ResponseOverrides adjusts the standard response set of one operation.
type ResponseOverrides struct {
	Omit   []int            `yaml:"omit" validate:"dive,gte=100,lte=599"`
	Custom []CustomResponse `yaml:"custom" validate:"dive"`
}

// CustomResponse overwrites the description of one status code.
type CustomResponse struct {
	Status  int    `yaml:"status" validate:"gte=100,lte=599"`
	Message string `yaml:"message"`
}

// PathParam is one path parameter occurrence: the singularized static
// segment preceding it plus the parameter name.
type PathParam struct {
	Static string
	Name   string
}

// ComponentName is the shared parameter component this occurrence maps to,
// e.g. {Static: "User", Name: "id"} -> UserId.
func (p PathParam) ComponentName() string {
	return p.Static + Capitalize(p.Name)
}

// Operation is one HTTP verb bound to one resolved path.
type Operation struct {
	Path             string
	Method           string
	Model            string
	IsCollection     bool
	Summary          string
	Description      string
	Tags             []string
	Input            []ViewRef
	Output           []OutputEntry
	FilterableFields []string
	Overrides        *ResponseOverrides
	IsCreation       bool
	CustomName       string
	Params           []PathParam
}

// HasParams reports whether the operation's path carries parameters.
func (op *Operation) HasParams() bool {
	return len(op.Params) > 0
}

// Service is the parsed form of one descriptor: every operation of one
// model, paths resolved and parameters extracted.
type Service struct {
	Model      string
	Operations []Operation
}

// Capitalize upper-cases the first letter, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Pascalize converts a snake_case operation name to PascalCase, used to
// name custom schemas after the operation that declared them.
func Pascalize(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		parts[i] = Capitalize(part)
	}
	return strings.Join(parts, "")
}
