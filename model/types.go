// Package model extracts entity definitions from Sequelize-style model
// sources: fields, relations, validation rules and the view annotations
// that drive schema projection.
package model

import "strings"

// Relation kinds, mapped from the association call that declared them.
const (
	RelationToOne      = "to-one"       // hasOne
	RelationToMany     = "to-many"      // hasMany
	RelationManyToMany = "many-to-many" // belongsToMany
)

// Model is one named entity extracted from a definition source file.
// Relations may grow after extraction when many-to-many facts discovered
// through a join entity are propagated back by Reconcile.
type Model struct {
	Name         string
	Fields       []Field
	Relations    []Relation
	IsJoinEntity bool
}

// Field is a single model attribute together with the metadata needed to
// project it into view schemas and error catalogues.
type Field struct {
	Name        string
	StorageType string
	Nullable    bool
	Description string
	Views       []string
	Required    bool
	Unique      *Unique
	HasDefault  bool
	Default     any
	Validators  []Validator
}

// Unique captures a unique constraint. Message is already resolved: either
// the declared msg or the generated fallback for a bare `unique: true`.
type Unique struct {
	Name    string
	Message string
}

// Validator is one named validation rule attached to a field, in
// declaration order.
type Validator struct {
	Rule    string
	Message string
	Args    []any
}

// Relation is one association fact between two models.
type Relation struct {
	Kind       string
	Source     string
	Target     string
	ForeignKey string
	Through    string
	Alias      string
}

// HasView reports whether the field is exposed on the given view.
func (f *Field) HasView(view string) bool {
	for _, v := range f.Views {
		if v == view {
			return true
		}
	}
	return false
}

// Equal reports full fact equality, used for duplicate suppression when
// relations are propagated across models.
func (r Relation) Equal(other Relation) bool {
	return r == other
}

// FindByName resolves a model by case-insensitive name lookup. Definition
// sources are inconsistent about casing ("user" vs "User"), so every
// cross-reference goes through here.
func FindByName(models []*Model, name string) *Model {
	for _, m := range models {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// Views returns the union of all views any field of any model is exposed
// on, in first-seen order.
func Views(models []*Model) []string {
	var views []string
	seen := make(map[string]bool)
	for _, m := range models {
		for i := range m.Fields {
			for _, v := range m.Fields[i].Views {
				if !seen[v] {
					seen[v] = true
					views = append(views, v)
				}
			}
		}
	}
	return views
}
