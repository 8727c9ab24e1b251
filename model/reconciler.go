package model

import "fmt"

// UnresolvedRelationError is raised when a join entity references a model
// name no definition file declared. Dropping the relation silently would
// desynchronize schema composition, so this aborts the run.
type UnresolvedRelationError struct {
	Join   string
	Source string
	Target string
}

func (e *UnresolvedRelationError) Error() string {
	return fmt.Sprintf("join entity %s: relation endpoints %s/%s cannot be resolved to known models", e.Join, e.Source, e.Target)
}

// Reconcile propagates many-to-many relation facts discovered through join
// entities onto both endpoint models, so the relation is visible from
// either side. Endpoint names resolve case-insensitively; facts already
// present are not duplicated.
func Reconcile(models []*Model) error {
	for _, join := range models {
		if !join.IsJoinEntity || len(join.Relations) < 2 {
			continue
		}
		for _, rel := range join.Relations {
			source := FindByName(models, rel.Source)
			target := FindByName(models, rel.Target)
			if source == nil || target == nil {
				return &UnresolvedRelationError{Join: join.Name, Source: rel.Source, Target: rel.Target}
			}
			appendRelation(source, rel)
			appendRelation(target, rel)
		}
	}
	return nil
}

func appendRelation(m *Model, rel Relation) {
	for _, existing := range m.Relations {
		if existing.Equal(rel) {
			return
		}
	}
	m.Relations = append(m.Relations, rel)
}
