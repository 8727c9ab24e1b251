package service

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEchoSnapshotsRoutes(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/api/users", handler)
	e.GET("/api/users/:id", handler)
	e.POST("/api/users", handler)

	table := FromEcho(e)
	require.Len(t, table, 3)
	assert.Contains(t, table, Route{Method: http.MethodGet, Path: "/api/users"})
	assert.Contains(t, table, Route{Method: http.MethodGet, Path: "/api/users/:id"})
}

func TestDefaultPathCollectionAndItem(t *testing.T) {
	table := RouteTable{
		{Method: "GET", Path: "/api/users"},
		{Method: "GET", Path: "/api/users/:id"},
		{Method: "GET", Path: "/api/posts/:id/comments"},
	}

	path, ok := table.DefaultPath("user", "/api", true)
	require.True(t, ok)
	assert.Equal(t, "/api/users", path)

	path, ok = table.DefaultPath("user", "/api", false)
	require.True(t, ok)
	assert.Equal(t, "/api/users/:id", path)
}

func TestDefaultPathSingularSegment(t *testing.T) {
	table := RouteTable{{Method: "GET", Path: "/api/profile/:id"}}

	path, ok := table.DefaultPath("profile", "/api", false)
	require.True(t, ok)
	assert.Equal(t, "/api/profile/:id", path)
}

func TestDefaultPathVersionSegment(t *testing.T) {
	table := RouteTable{{Method: "GET", Path: "/api/v1/users"}}

	path, ok := table.DefaultPath("user", "/api", true)
	require.True(t, ok)
	assert.Equal(t, "/api/v1/users", path)
}

func TestDefaultPathModelStartingWithVIsNotAVersion(t *testing.T) {
	table := RouteTable{{Method: "GET", Path: "/api/vendors"}}

	path, ok := table.DefaultPath("vendor", "/api", true)
	require.True(t, ok)
	assert.Equal(t, "/api/vendors", path)
}

func TestDefaultPathEmptyPrefix(t *testing.T) {
	table := RouteTable{{Method: "GET", Path: "/users/:id"}}

	path, ok := table.DefaultPath("user", "", false)
	require.True(t, ok)
	assert.Equal(t, "/users/:id", path)
}

func TestDefaultPathNoMatch(t *testing.T) {
	table := RouteTable{
		{Method: "GET", Path: "/api/users/:id/posts"},
		{Method: "GET", Path: "/health"},
	}

	_, ok := table.DefaultPath("user", "/api", false)
	assert.False(t, ok, "an item route must be followed by exactly one parameter segment")

	_, ok = table.DefaultPath("comment", "/api", true)
	assert.False(t, ok)
}

func TestDefaultPathFirstMatchWins(t *testing.T) {
	table := RouteTable{
		{Method: "GET", Path: "/api/users"},
		{Method: "HEAD", Path: "/api/users"},
	}

	path, ok := table.DefaultPath("user", "/api", true)
	require.True(t, ok)
	assert.Equal(t, "/api/users", path)
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "users", Pluralize("user"))
	assert.Equal(t, "categories", Pluralize("category"))
	assert.Equal(t, "posts", Pluralize("post"))
}

func TestPathParams(t *testing.T) {
	params := PathParams("/users/{id}/posts/{postId}")
	require.Len(t, params, 2)
	assert.Equal(t, PathParam{Static: "User", Name: "id"}, params[0])
	assert.Equal(t, PathParam{Static: "Post", Name: "postId"}, params[1])
}

func TestPathParamsColonSyntax(t *testing.T) {
	params := PathParams("/users/:id")
	require.Len(t, params, 1)
	assert.Equal(t, "UserId", params[0].ComponentName())
}

func TestPathParamsSkipsUnanchoredParameters(t *testing.T) {
	assert.Empty(t, PathParams("/{id}"), "a parameter with no preceding static segment cannot be named")
	assert.Len(t, PathParams("/users/{a}/{b}"), 1, "back-to-back parameters keep only the anchored one")
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/users/{id}", NormalizePath("/users/:id"))
	assert.Equal(t, "/users/{id}", NormalizePath("/users/{id}"))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "/users", StripPrefix("/api/users", "/api"))
	assert.Equal(t, "/users", StripPrefix("/users", ""))
	assert.Equal(t, "/", StripPrefix("/api", "/api"))
}
