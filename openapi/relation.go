package openapi

import (
	"fmt"
	"strings"

	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

// UnresolvedAliasError is raised when a nested list projection has no
// association alias to use as its embedding property key. No key can be
// derived otherwise, so composition cannot continue.
type UnresolvedAliasError struct {
	Parent  string
	Related string
}

func (e *UnresolvedAliasError) Error() string {
	return fmt.Sprintf("no association alias found between %s and %s, annotate the relation with relations: <alias>", e.Parent, e.Related)
}

// composeRelation builds (or reuses) the composite schema embedding every
// secondary view's schema inside the first view's schema, and returns its
// component name. The parent schema is cloned before mutation; the base
// per-view schemas are never touched.
func composeRelation(refs []service.ViewRef, models []*model.Model, schemas Schemas, isBody bool) (string, error) {
	parent := refs[0]
	parentSchema, ok := schemas[parent.SchemaName()]
	if !ok {
		return "", fmt.Errorf("unknown schema %s referenced in relation output", parent.SchemaName())
	}

	name := service.Capitalize(parent.Model)
	for _, ref := range refs[1:] {
		name += service.Capitalize(ref.Model)
	}
	switch {
	case parent.View == "list":
		name += "RelationList"
	case isBody:
		name += "RelationPost"
	default:
		name += "RelationItem"
	}

	if _, exists := schemas[name]; exists {
		return name, nil
	}

	composite := cloneSchema(parentSchema)
	target := properties(composite)
	if target == nil {
		return "", fmt.Errorf("schema %s has no properties to compose into", parent.SchemaName())
	}

	for _, ref := range refs[1:] {
		related, ok := schemas[ref.SchemaName()]
		if !ok {
			return "", fmt.Errorf("unknown schema %s referenced in relation output", ref.SchemaName())
		}

		key := strings.ToLower(ref.Model)
		if ref.View == "list" {
			alias, err := associationAlias(models, ref.Model, parent.Model)
			if err != nil {
				return "", err
			}
			key = alias
		}
		target[key] = deepCopy(related)
	}

	schemas[name] = composite
	return name, nil
}

// associationAlias finds, on the related model, the relation pointing at
// the parent and returns its declared alias. Lookup prefers a relation
// whose target is the parent, falling back to one whose source is; a
// self-referential relation therefore resolves on the first probe.
func associationAlias(models []*model.Model, relatedName, parentName string) (string, error) {
	related := model.FindByName(models, relatedName)
	if related == nil {
		return "", fmt.Errorf("unknown model %s referenced in relation output", relatedName)
	}

	var found *model.Relation
	for i := range related.Relations {
		if strings.EqualFold(related.Relations[i].Target, parentName) {
			found = &related.Relations[i]
			break
		}
	}
	if found == nil {
		for i := range related.Relations {
			if strings.EqualFold(related.Relations[i].Source, parentName) {
				found = &related.Relations[i]
				break
			}
		}
	}
	if found == nil || found.Alias == "" {
		return "", &UnresolvedAliasError{Parent: parentName, Related: relatedName}
	}
	return found.Alias, nil
}
