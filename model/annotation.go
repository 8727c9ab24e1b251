package model

import "strings"

// AnnotationTag marks a comment as carrying generator metadata.
const AnnotationTag = "@swag"

// Annotation is the structured metadata decoded from a field or relation
// comment.
type Annotation struct {
	Description string
	Methods     []string
	Relations   string
}

// ParseAnnotation decodes an annotation comment of the form
//
//	@swag
//	description: Id of the user
//	methods: item, list, post
//	relations: posts
//
// from a raw comment body (leading asterisks and slashes already vary by
// comment style and are tolerated). The boolean is false when the comment
// carries no recognized tag; a tagged comment with unusable lines yields
// an empty annotation rather than an error.
func ParseAnnotation(comment string) (Annotation, bool) {
	if !strings.Contains(comment, AnnotationTag) {
		return Annotation{}, false
	}

	var ann Annotation
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*/ \t")
		switch {
		case strings.HasPrefix(line, "description:"):
			ann.Description = strings.TrimSpace(strings.TrimPrefix(line, "description:"))
		case strings.HasPrefix(line, "methods:"):
			ann.Methods = splitList(strings.TrimPrefix(line, "methods:"))
		case strings.HasPrefix(line, "relations:"):
			ann.Relations = strings.TrimSpace(strings.TrimPrefix(line, "relations:"))
		}
	}
	return ann, true
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
