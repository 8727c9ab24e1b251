package service

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Route is one registered HTTP route.
type Route struct {
	Method string
	Path   string
}

// RouteTable is the ordered list of live routes, consulted to resolve a
// default path when an operation declares none.
type RouteTable []Route

// FromEcho snapshots the routes currently registered on an echo instance.
func FromEcho(e *echo.Echo) RouteTable {
	routes := e.Routes()
	table := make(RouteTable, 0, len(routes))
	for _, r := range routes {
		table = append(table, Route{Method: r.Method, Path: r.Path})
	}
	return table
}

// DefaultPath searches the table for the canonical route of a model:
// <prefix>[/v*]/<singular-or-plural> for collections, the same followed by
// exactly one parameter segment for items. The first match wins.
func (t RouteTable) DefaultPath(model, prefix string, collection bool) (string, bool) {
	singular := strings.ToLower(model)
	plural := Pluralize(singular)
	prefixSegment := strings.Trim(prefix, "/")

	for _, route := range t {
		segments := splitPath(route.Path)
		modelIndex := 0
		if prefixSegment != "" {
			if len(segments) == 0 || segments[0] != prefixSegment {
				continue
			}
			modelIndex = 1
		}
		if len(segments) > modelIndex && strings.HasPrefix(segments[modelIndex], "v") &&
			segments[modelIndex] != singular && segments[modelIndex] != plural {
			modelIndex++
		}
		if modelIndex >= len(segments) {
			continue
		}
		if segments[modelIndex] != singular && segments[modelIndex] != plural {
			continue
		}

		if collection && modelIndex == len(segments)-1 {
			return route.Path, true
		}
		if !collection && modelIndex == len(segments)-2 && isParamSegment(segments[modelIndex+1]) {
			return route.Path, true
		}
	}
	return "", false
}

// Pluralize applies the naming convention used to match route segments:
// trailing y becomes ies, everything else gains an s.
func Pluralize(singular string) string {
	if strings.HasSuffix(singular, "y") {
		return singular[:len(singular)-1] + "ies"
	}
	return singular + "s"
}

// PathParams scans a path template for parameter segments (:id or {id})
// and pairs each with its singularized preceding static segment. Parameters
// with no preceding static segment cannot be named and are skipped.
func PathParams(path string) []PathParam {
	segments := splitPath(path)
	var params []PathParam
	for i, segment := range segments {
		name, ok := paramName(segment)
		if !ok || i == 0 {
			continue
		}
		static, ok := paramName(segments[i-1])
		if ok {
			continue // two parameters in a row, no static anchor
		}
		static = strings.TrimSuffix(segments[i-1], "s")
		params = append(params, PathParam{Static: Capitalize(static), Name: name})
	}
	return params
}

// NormalizePath rewrites :param segments into the {param} template form.
func NormalizePath(path string) string {
	segments := splitPath(path)
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

// StripPrefix removes the global route prefix from a path.
func StripPrefix(path, prefix string) string {
	if prefix == "" || prefix == "/" {
		return path
	}
	prefix = "/" + strings.Trim(prefix, "/")
	trimmed := strings.TrimPrefix(path, prefix)
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func isParamSegment(segment string) bool {
	_, ok := paramName(segment)
	return ok
}

func paramName(segment string) (string, bool) {
	if strings.HasPrefix(segment, ":") {
		return segment[1:], true
	}
	if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}
