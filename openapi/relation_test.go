package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

func postModel() *model.Model {
	return &model.Model{
		Name: "post",
		Fields: []model.Field{
			{Name: "id", StorageType: "DataTypes.INTEGER", Description: "Id of the post", Views: []string{"item", "list"}},
			{Name: "title", StorageType: "DataTypes.STRING", Description: "Title of the post", Views: []string{"item", "list", "post"}},
		},
		Relations: []model.Relation{
			{Kind: model.RelationToMany, Source: "User", Target: "Post", ForeignKey: "userId", Alias: "posts"},
		},
	}
}

func relationFixture(t *testing.T) ([]*model.Model, Schemas) {
	t.Helper()
	models := []*model.Model{userModel(), postModel()}
	schemas := Synthesize(models, []string{"item", "list", "post"})
	return models, schemas
}

func refs(raw ...string) []service.ViewRef {
	out := make([]service.ViewRef, 0, len(raw))
	for _, r := range raw {
		ref, err := service.ParseViewRef(r)
		if err != nil {
			panic(err)
		}
		out = append(out, ref)
	}
	return out
}

func TestComposeRelationItem(t *testing.T) {
	models, schemas := relationFixture(t)

	name, err := composeRelation(refs("user:item", "post:item"), models, schemas, false)
	require.NoError(t, err)
	assert.Equal(t, "UserPostRelationItem", name)

	composite := schemas[name]
	require.NotNil(t, composite)
	props := properties(composite)
	assert.Contains(t, props, "email", "parent fields are preserved")

	// A non-list secondary embeds under the lowercased model name.
	embedded, ok := props["post"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", embedded["type"])
	assert.Contains(t, properties(embedded), "title")
}

func TestComposeRelationPostSuffixForBodies(t *testing.T) {
	models, schemas := relationFixture(t)

	name, err := composeRelation(refs("user:post", "post:post"), models, schemas, true)
	require.NoError(t, err)
	assert.Equal(t, "UserPostRelationPost", name)
}

func TestComposeRelationListEmbedsUnderAlias(t *testing.T) {
	models, schemas := relationFixture(t)

	name, err := composeRelation(refs("user:item", "post:list"), models, schemas, false)
	require.NoError(t, err)
	assert.Equal(t, "UserPostRelationItem", name)

	props := properties(schemas[name])
	embedded, ok := props["posts"].(map[string]any)
	require.True(t, ok, "list projections embed under the association alias")
	assert.Equal(t, "array", embedded["type"])
}

func TestComposeRelationParentListSuffix(t *testing.T) {
	models, schemas := relationFixture(t)

	name, err := composeRelation(refs("user:list", "post:list"), models, schemas, false)
	require.NoError(t, err)
	assert.Equal(t, "UserPostRelationList", name)
}

func TestComposeRelationDoesNotMutateBaseSchemas(t *testing.T) {
	models, schemas := relationFixture(t)

	userBefore := cloneSchema(schemas["UserItem"])
	postBefore := cloneSchema(schemas["PostList"])

	_, err := composeRelation(refs("user:item", "post:list"), models, schemas, false)
	require.NoError(t, err)

	assert.Equal(t, userBefore, schemas["UserItem"])
	assert.Equal(t, postBefore, schemas["PostList"])
}

func TestComposeRelationReusesExistingComposite(t *testing.T) {
	models, schemas := relationFixture(t)

	first, err := composeRelation(refs("user:item", "post:item"), models, schemas, false)
	require.NoError(t, err)
	composite := schemas[first]

	second, err := composeRelation(refs("user:item", "post:item"), models, schemas, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, composite, schemas[second], "re-composition must not rebuild the schema")
}

func TestComposeRelationMissingAliasFails(t *testing.T) {
	comment := &model.Model{
		Name: "comment",
		Fields: []model.Field{
			{Name: "body", StorageType: "DataTypes.TEXT", Views: []string{"item", "list"}},
		},
		Relations: []model.Relation{
			{Kind: model.RelationToMany, Source: "User", Target: "Comment", ForeignKey: "userId"},
		},
	}
	models := []*model.Model{userModel(), comment}
	schemas := Synthesize(models, []string{"item", "list"})

	_, err := composeRelation(refs("user:item", "comment:list"), models, schemas, false)
	require.Error(t, err)

	var unresolved *UnresolvedAliasError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "user", unresolved.Parent)
	assert.Equal(t, "comment", unresolved.Related)
}

func TestComposeRelationUnknownSchema(t *testing.T) {
	models, schemas := relationFixture(t)

	_, err := composeRelation(refs("ghost:item", "post:item"), models, schemas, false)
	assert.Error(t, err)
}

func TestAssociationAliasPrefersTargetMatch(t *testing.T) {
	related := &model.Model{
		Name: "post",
		Relations: []model.Relation{
			{Kind: model.RelationToMany, Source: "Post", Target: "Tag", Alias: "tags"},
			{Kind: model.RelationToMany, Source: "User", Target: "Post", ForeignKey: "userId", Alias: "fromSource"},
			{Kind: model.RelationToMany, Source: "Post", Target: "User", Alias: "author"},
		},
	}
	models := []*model.Model{userModel(), related}

	alias, err := associationAlias(models, "post", "user")
	require.NoError(t, err)
	assert.Equal(t, "author", alias, "a relation targeting the parent wins over one sourced from it")
}

func TestAssociationAliasFallsBackToSourceMatch(t *testing.T) {
	models := []*model.Model{userModel(), postModel()}

	alias, err := associationAlias(models, "post", "user")
	require.NoError(t, err)
	assert.Equal(t, "posts", alias)
}

func TestAssociationAliasSelfReferential(t *testing.T) {
	category := &model.Model{
		Name: "category",
		Relations: []model.Relation{
			{Kind: model.RelationToMany, Source: "Category", Target: "Category", Alias: "children"},
		},
	}

	alias, err := associationAlias([]*model.Model{category}, "category", "category")
	require.NoError(t, err)
	assert.Equal(t, "children", alias)
}
