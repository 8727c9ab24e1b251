package openapi

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/model"
	"github.com/gaborage/swaggelize/service"
)

func testLogger() logger.Logger {
	return logger.NewWithOutput("disabled", false, io.Discard)
}

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	models := []*model.Model{userModel(), postModel()}
	schemas := Synthesize(models, []string{"item", "list", "post", "put"})
	return NewAssembler(models, schemas, testLogger())
}

func itemParams() []service.PathParam {
	return []service.PathParam{{Static: "User", Name: "id"}}
}

func output(raw ...string) []service.OutputEntry {
	entries := make([]service.OutputEntry, 0, len(raw))
	for _, r := range refs(raw...) {
		entries = append(entries, service.OutputEntry{Ref: r})
	}
	return entries
}

func TestResponsesGetItem(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}", Method: "get", Model: "user",
		Summary: "Get one user",
		Output:  output("user:item"),
		Params:  itemParams(),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)

	ok, found := responses["200"].(map[string]any)
	require.True(t, found)
	assert.Equal(t, "Get one user", ok["description"])

	notFound, found := responses["404"].(map[string]any)
	require.True(t, found)
	assert.Equal(t, "User not found", notFound["description"])

	assert.Contains(t, responses, "401")
	assert.Contains(t, responses, "403")
	assert.Contains(t, responses, "500")
	assert.NotContains(t, responses, "400", "get operations carry no body errors")
	assert.NotContains(t, responses, "201")
}

func TestResponsesGetCollectionHasNoNotFound(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users", Method: "get", Model: "user",
		IsCollection: true,
		Output:       output("user:list"),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.NotContains(t, responses, "404", "a parameterless path cannot miss")
}

func TestResponsesPostCreation(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users", Method: "post", Model: "user",
		IsCollection: true, IsCreation: true,
		Input:  refs("user:post"),
		Output: output("user:item"),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)

	created, found := responses["201"].(map[string]any)
	require.True(t, found)
	assert.Equal(t, "User created successfully", created["description"])
	assert.NotContains(t, responses, "200")

	badRequest, found := responses["400"].(map[string]any)
	require.True(t, found)
	example := exampleOf(t, badRequest)
	assert.Equal(t, "ValidationError", example["name"])
	errors, _ := example["errors"].([]any)
	require.Len(t, errors, 1)
	assert.Equal(t,
		map[string]any{"field": "email", "message": "Must be a valid email"},
		errors[0])

	conflict, found := responses["409"].(map[string]any)
	require.True(t, found)
	example = exampleOf(t, conflict)
	assert.Equal(t, "UniqueConstraintError", example["name"])
	errors, _ = example["errors"].([]any)
	require.Len(t, errors, 1)
	assert.Equal(t,
		map[string]any{"field": "email", "message": "Email already in use"},
		errors[0])
}

func TestResponsesPostNonCreation(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/activate", Method: "post", Model: "user",
		Output: output("user:item"),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.Contains(t, responses, "200")
	assert.NotContains(t, responses, "201")
}

func TestResponsesPutCarriesNotFoundAndBodyErrors(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}", Method: "put", Model: "user",
		Input:  refs("user:put"),
		Output: output("user:item"),
		Params: itemParams(),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.Contains(t, responses, "200")
	assert.Contains(t, responses, "404")
	assert.Contains(t, responses, "400")
	assert.Contains(t, responses, "409")
}

func TestResponsesDelete(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}", Method: "delete", Model: "user",
		Params: itemParams(),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)

	noContent, found := responses["204"].(map[string]any)
	require.True(t, found)
	assert.Equal(t, "No content", noContent["description"])
	assert.Contains(t, responses, "404")
	assert.NotContains(t, responses, "200")
}

func TestResponsesNoOutputYields204(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{Path: "/users/ping", Method: "get", Model: "user"}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.Contains(t, responses, "204")
	assert.NotContains(t, responses, "200")
}

func TestResponsesNotFoundJoinsStatics(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}/posts/{postId}", Method: "get", Model: "post",
		Output: output("post:item"),
		Params: []service.PathParam{
			{Static: "User", Name: "id"},
			{Static: "Post", Name: "postId"},
		},
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	notFound := responses["404"].(map[string]any)
	assert.Equal(t, "User, Post not found", notFound["description"])
}

func TestResponsesOverridesApplyLast(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}", Method: "delete", Model: "user",
		Params: itemParams(),
		Overrides: &service.ResponseOverrides{
			Omit: []int{401, 403},
			Custom: []service.CustomResponse{
				{Status: 204, Message: "User removed"},
				{Status: 418, Message: "never materializes"},
			},
		},
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.NotContains(t, responses, "401")
	assert.NotContains(t, responses, "403")
	assert.Equal(t, "User removed", responses["204"].(map[string]any)["description"])
	assert.NotContains(t, responses, "418", "custom entries adjust existing responses only")
}

func TestResponsesBodyErrorsFollowOutputModel(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}/posts", Method: "post", Model: "user",
		Output: output("post:item"),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	example := exampleOf(t, responses["400"].(map[string]any))
	errors, _ := example["errors"].([]any)
	assert.Empty(t, errors, "post model declares no validators, so the example is empty")
}

func TestResponsesUnknownOutputSchema(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/ghosts", Method: "get", Model: "ghost",
		Output: output("ghost:item"),
	}

	_, err := a.responses(op)
	assert.Error(t, err)
}

func TestCustomOutputExtendsBaseSchema(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/users/{id}", Method: "get", Model: "user",
		CustomName: "Get",
		Output: append(output("user:item"), service.OutputEntry{Custom: map[string]any{
			"properties": map[string]any{
				"score": map[string]any{"type": "integer", "x-internal": "dropped"},
			},
		}}),
		Params: itemParams(),
	}

	responses, err := a.responses(op)
	require.NoError(t, err)

	resp := responses["200"].(map[string]any)
	schema := schemaRefOf(t, resp)
	assert.Equal(t, "#/components/schemas/CustomUserItem", schema)

	custom := a.Schemas()["CustomUserItem"]
	require.NotNil(t, custom)
	props := properties(custom)
	assert.Contains(t, props, "email", "base properties survive")
	score, ok := props["score"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", score["type"])
	assert.NotContains(t, score, "x-internal", "unknown keys are stripped from custom shapes")

	// The base schema itself is untouched.
	assert.NotContains(t, properties(a.Schemas()["UserItem"]), "score")
}

func TestCustomOutputWithoutBase(t *testing.T) {
	a := testAssembler(t)
	op := &service.Operation{
		Path: "/stats", Method: "get", Model: "user",
		CustomName: "Stats",
		Output: []service.OutputEntry{{Custom: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"total": map[string]any{"type": "integer"},
			},
		}}},
	}

	responses, err := a.responses(op)
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/CustomStats", schemaRefOf(t, responses["200"].(map[string]any)))

	custom := a.Schemas()["CustomStats"]
	require.NotNil(t, custom)
	assert.Contains(t, properties(custom), "total")
}

func exampleOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	content := resp["content"].(map[string]any)
	media := content["application/json"].(map[string]any)
	example, ok := media["example"].(map[string]any)
	require.True(t, ok)
	return example
}

func schemaRefOf(t *testing.T, resp map[string]any) string {
	t.Helper()
	content := resp["content"].(map[string]any)
	media := content["application/json"].(map[string]any)
	schema := media["schema"].(map[string]any)
	ref, _ := schema["$ref"].(string)
	return ref
}
