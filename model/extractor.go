package model

import (
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"github.com/gaborage/swaggelize/logger"
)

// Extractor turns model-definition source text into Model records by
// pattern-matching the syntax tree: `<ref>.define(name, fields, options?)`
// calls for entities and `X.hasOne/hasMany/belongsToMany(...)` calls for
// relations. Formatting of the source is irrelevant; only node shape counts.
type Extractor struct {
	log logger.Logger
}

// NewExtractor returns an extractor that reports skipped constructs on log.
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{log: log}
}

var relationKinds = map[string]string{
	"hasOne":        RelationToOne,
	"hasMany":       RelationToMany,
	"belongsToMany": RelationManyToMany,
}

// Extract parses one source file and returns the models it defines, in
// declaration order. A file with no define call yields an empty slice.
// Only a syntactically unparseable file is an error.
func (e *Extractor) Extract(filename string, src []byte) ([]*Model, error) {
	program, err := parser.ParseFile(nil, filename, string(src), 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	text := string(src)
	var models []*Model
	var relations []Relation
	var throughString []Relation

	prevEnd := 0
	for _, stmt := range program.Body {
		start := int(stmt.Idx0()) - 1
		gap := sliceGap(text, prevEnd, start)
		prevEnd = int(stmt.Idx1()) - 1

		for _, call := range statementCalls(stmt) {
			if name, fields, options, ok := defineCall(call); ok {
				models = append(models, e.extractModel(text, name, fields, options))
				continue
			}
			rel, isThrough, ok := e.relationCall(call, gap)
			if !ok {
				continue
			}
			if isThrough {
				throughString = append(throughString, rel)
			} else {
				relations = append(relations, rel)
			}
		}
	}

	if len(models) == 0 && len(relations) == 0 && len(throughString) == 0 {
		e.log.Debug().Str("file", filename).Msg("no model definition found")
	}

	// Relation statements bind to every model defined in the same file;
	// the reconciler sorts out cross-file visibility later.
	for _, m := range models {
		m.Relations = append(m.Relations, relations...)
	}

	models = append(models, joinModels(throughString)...)
	return models, nil
}

// statementCalls yields the call expressions reachable from one top-level
// statement: bare calls, assignment right-hand sides and const/var
// initializers. Model files declare everything at the top level.
func statementCalls(stmt ast.Statement) []*ast.CallExpression {
	var calls []*ast.CallExpression
	add := func(expr ast.Expression) {
		switch node := expr.(type) {
		case *ast.CallExpression:
			calls = append(calls, node)
		case *ast.AssignExpression:
			if call, ok := node.Right.(*ast.CallExpression); ok {
				calls = append(calls, call)
			}
		}
	}

	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		add(node.Expression)
	case *ast.VariableStatement:
		for _, binding := range node.List {
			add(binding.Initializer)
		}
	case *ast.LexicalDeclaration:
		for _, binding := range node.List {
			add(binding.Initializer)
		}
	}
	return calls
}

// defineCall matches `<ref>.define("<name>", {...}, {...}?)`.
func defineCall(call *ast.CallExpression) (name string, fields, options *ast.ObjectLiteral, ok bool) {
	dot, isDot := call.Callee.(*ast.DotExpression)
	if !isDot || dot.Identifier.Name.String() != "define" {
		return "", nil, nil, false
	}
	if len(call.ArgumentList) < 2 {
		return "", nil, nil, false
	}
	lit, isString := call.ArgumentList[0].(*ast.StringLiteral)
	if !isString || lit.Value.String() == "" {
		return "", nil, nil, false
	}
	obj, isObject := call.ArgumentList[1].(*ast.ObjectLiteral)
	if !isObject {
		return "", nil, nil, false
	}
	if len(call.ArgumentList) > 2 {
		options, _ = call.ArgumentList[2].(*ast.ObjectLiteral)
	}
	return lit.Value.String(), obj, options, true
}

func (e *Extractor) extractModel(src, name string, fields, options *ast.ObjectLiteral) *Model {
	m := &Model{Name: name}

	prevEnd := int(fields.LeftBrace)
	for _, prop := range objectProps(fields) {
		gap := sliceGap(src, prevEnd, prop.start)
		prevEnd = prop.end

		ann, ok := ParseAnnotation(lastComment(gap))
		if !ok {
			// Unannotated fields are invisible to every view.
			e.log.Debug().Str("model", name).Str("field", prop.key).Msg("field skipped, no annotation")
			continue
		}
		m.Fields = append(m.Fields, buildField(prop, ann))
	}

	if options != nil {
		if opts := objectValue(options); opts["timestamps"] == true {
			m.Fields = append(m.Fields, timestampFields()...)
		}
	}
	return m
}

func buildField(prop astProp, ann Annotation) Field {
	field := Field{
		Name:        prop.key,
		Description: ann.Description,
		Views:       ann.Methods,
		Nullable:    true,
	}

	spec, ok := prop.value.(*ast.ObjectLiteral)
	if !ok {
		// Shorthand declaration: the value is the storage type itself.
		field.StorageType = typeString(prop.value)
		return field
	}

	var primaryKey, hasValidate bool
	var validate *ast.ObjectLiteral
	for _, p := range objectProps(spec) {
		switch p.key {
		case "type":
			field.StorageType = typeString(p.value)
		case "allowNull":
			if v, ok := literalValue(p.value); ok {
				field.Nullable = v != false
			}
		case "primaryKey":
			if v, ok := literalValue(p.value); ok && v == true {
				primaryKey = true
			}
		case "unique":
			field.Unique = uniqueConstraint(p.value)
		case "defaultValue":
			if v, ok := literalValue(p.value); ok {
				field.HasDefault = true
				field.Default = v
			}
		case "validate":
			if obj, ok := p.value.(*ast.ObjectLiteral); ok {
				hasValidate = true
				validate = obj
			}
		}
	}

	if hasValidate {
		field.Validators = validators(validate)
	}
	field.Required = !field.Nullable && !primaryKey && !field.HasDefault

	// A defaulted field is always satisfiable without client input, so it
	// carries no required/validate contract.
	if field.HasDefault {
		field.Validators = nil
	}
	return field
}

func uniqueConstraint(expr ast.Expression) *Unique {
	v, ok := literalValue(expr)
	if !ok {
		return nil
	}
	switch value := v.(type) {
	case bool:
		if value {
			return &Unique{}
		}
		return nil
	case map[string]any:
		u := &Unique{}
		if name, ok := value["name"].(string); ok {
			u.Name = name
		}
		if msg, ok := value["msg"].(string); ok {
			u.Message = msg
		}
		return u
	default:
		return nil
	}
}

// validators decodes the nested validation object preserving rule order,
// so synthesized error examples are stable across runs.
func validators(obj *ast.ObjectLiteral) []Validator {
	var out []Validator
	for _, p := range objectProps(obj) {
		v := Validator{Rule: p.key}
		raw, ok := literalValue(p.value)
		if !ok {
			out = append(out, v)
			continue
		}
		switch value := raw.(type) {
		case map[string]any:
			if msg, ok := value["msg"].(string); ok {
				v.Message = msg
			}
			if args, ok := value["args"].([]any); ok {
				v.Args = args
			}
		case bool:
			// e.g. isEmail: true, nothing to carry
		default:
			v.Args = []any{value}
		}
		out = append(out, v)
	}
	return out
}

func timestampFields() []Field {
	views := []string{"item", "list"}
	return []Field{
		{
			Name:        "createdAt",
			StorageType: "DataTypes.DATE",
			Description: "Date when the record was created",
			Views:       views,
			Nullable:    false,
		},
		{
			Name:        "updatedAt",
			StorageType: "DataTypes.DATE",
			Description: "Date when the record was last updated",
			Views:       views,
			Nullable:    false,
		},
	}
}

// relationCall matches `X.hasOne(Y, opts?)` and friends. The second return
// distinguishes a belongsToMany through a string reference, which feeds
// join-entity synthesis instead of the defining model's relation list.
func (e *Extractor) relationCall(call *ast.CallExpression, gap string) (Relation, bool, bool) {
	dot, ok := call.Callee.(*ast.DotExpression)
	if !ok {
		return Relation{}, false, false
	}
	kind, ok := relationKinds[dot.Identifier.Name.String()]
	if !ok {
		return Relation{}, false, false
	}
	source, ok := dot.Left.(*ast.Identifier)
	if !ok {
		return Relation{}, false, false
	}
	if len(call.ArgumentList) == 0 {
		return Relation{}, false, false
	}
	target, ok := call.ArgumentList[0].(*ast.Identifier)
	if !ok {
		return Relation{}, false, false
	}

	rel := Relation{
		Kind:   kind,
		Source: source.Name.String(),
		Target: target.Name.String(),
	}

	var options map[string]any
	if len(call.ArgumentList) > 1 {
		if obj, ok := call.ArgumentList[1].(*ast.ObjectLiteral); ok {
			options = objectValue(obj)
		}
	}

	throughString := false
	switch through := options["through"].(type) {
	case string:
		rel.Through = through
		throughString = kind == RelationManyToMany
	case map[string]any:
		if name, ok := through["model"].(string); ok {
			rel.Through = name
		}
	}

	rel.ForeignKey = foreignKey(options)
	if rel.ForeignKey == "" {
		rel.ForeignKey = strings.ToLower(rel.Source) + "Id"
	}

	if ann, ok := ParseAnnotation(lastComment(gap)); ok {
		rel.Alias = ann.Relations
	}
	return rel, throughString, true
}

// foreignKey searches relation options for an explicit foreignKey name at
// any nesting depth (it may sit inside a through block).
func foreignKey(options map[string]any) string {
	for key, value := range options {
		if key == "foreignKey" {
			if name, ok := value.(string); ok {
				return name
			}
		}
		if nested, ok := value.(map[string]any); ok {
			if name := foreignKey(nested); name != "" {
				return name
			}
		}
	}
	return ""
}

// joinModels synthesizes one join entity per distinct through name found
// in string-through belongsToMany calls, carrying a foreign-key field per
// participating side.
func joinModels(relations []Relation) []*Model {
	var order []string
	grouped := make(map[string][]Relation)
	for _, rel := range relations {
		if _, seen := grouped[rel.Through]; !seen {
			order = append(order, rel.Through)
		}
		grouped[rel.Through] = append(grouped[rel.Through], rel)
	}

	models := make([]*Model, 0, len(order))
	for _, through := range order {
		m := &Model{Name: through, IsJoinEntity: true, Relations: grouped[through]}
		for _, rel := range grouped[through] {
			m.Fields = append(m.Fields, Field{
				Name:        strings.ToLower(rel.Source) + "Id",
				StorageType: "DataTypes.INTEGER",
				Description: fmt.Sprintf("%s ID", rel.Source),
				Views:       []string{"list", "item", "put", "post"},
				Nullable:    true,
			})
		}
		models = append(models, m)
	}
	return models
}

func sliceGap(src string, from, to int) string {
	if from < 0 || to > len(src) || from >= to {
		return ""
	}
	return src[from:to]
}

// lastComment extracts the text of the comment closest to the node the gap
// precedes: the last block comment or the last contiguous run of line
// comments, whichever comes later.
func lastComment(gap string) string {
	var last string
	var lineRun []string

	i := 0
	for i < len(gap)-1 {
		switch {
		case gap[i] == '/' && gap[i+1] == '*':
			end := strings.Index(gap[i+2:], "*/")
			if end < 0 {
				return gap[i+2:]
			}
			last = gap[i+2 : i+2+end]
			lineRun = nil
			i += end + 4
		case gap[i] == '/' && gap[i+1] == '/':
			nl := strings.IndexByte(gap[i:], '\n')
			if nl < 0 {
				lineRun = append(lineRun, gap[i+2:])
				i = len(gap)
			} else {
				lineRun = append(lineRun, gap[i+2:i+nl])
				i += nl + 1
			}
		default:
			i++
		}
	}

	if len(lineRun) > 0 {
		return strings.Join(lineRun, "\n")
	}
	return last
}
