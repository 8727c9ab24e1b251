package model

import (
	"github.com/dop251/goja/ast"
)

// astProp is an object-literal entry with its source position preserved so
// leading comments can be recovered from the gap before the key.
type astProp struct {
	key   string
	value ast.Expression
	start int
	end   int
}

// objectProps flattens an object literal into ordered key/value entries.
// Computed keys, spreads and shorthand entries carry no extractable facts
// and are skipped.
func objectProps(obj *ast.ObjectLiteral) []astProp {
	props := make([]astProp, 0, len(obj.Value))
	for _, p := range obj.Value {
		keyed, ok := p.(*ast.PropertyKeyed)
		if !ok || keyed.Computed {
			continue
		}
		key, ok := propertyKey(keyed.Key)
		if !ok {
			continue
		}
		props = append(props, astProp{
			key:   key,
			value: keyed.Value,
			start: int(keyed.Idx0()) - 1,
			end:   int(keyed.Idx1()) - 1,
		})
	}
	return props
}

func propertyKey(expr ast.Expression) (string, bool) {
	switch key := expr.(type) {
	case *ast.StringLiteral:
		return key.Value.String(), true
	case *ast.Identifier:
		return key.Name.String(), true
	default:
		return "", false
	}
}

// literalValue decodes an expression into a plain Go value, mirroring the
// handful of node shapes model definitions actually use. Anything else
// (function calls, arrows, templates) decodes to nil/false.
func literalValue(expr ast.Expression) (any, bool) {
	switch node := expr.(type) {
	case *ast.StringLiteral:
		return node.Value.String(), true
	case *ast.NumberLiteral:
		return node.Value, true
	case *ast.BooleanLiteral:
		return node.Value, true
	case *ast.NullLiteral:
		return nil, true
	case *ast.Identifier:
		return node.Name.String(), true
	case *ast.DotExpression:
		return typeString(node), true
	case *ast.ObjectLiteral:
		return objectValue(node), true
	case *ast.ArrayLiteral:
		items := make([]any, 0, len(node.Value))
		for _, el := range node.Value {
			if v, ok := literalValue(el); ok {
				items = append(items, v)
			}
		}
		return items, true
	default:
		return nil, false
	}
}

func objectValue(obj *ast.ObjectLiteral) map[string]any {
	out := make(map[string]any, len(obj.Value))
	for _, p := range objectProps(obj) {
		if v, ok := literalValue(p.value); ok {
			out[p.key] = v
		}
	}
	return out
}

// typeString renders the storage type expression of a field: a member
// expression like DataTypes.STRING, a bare identifier, or a call such as
// DataTypes.ENUM("a", "b") whose callee carries the type token.
func typeString(expr ast.Expression) string {
	switch node := expr.(type) {
	case *ast.DotExpression:
		left := ""
		if id, ok := node.Left.(*ast.Identifier); ok {
			left = id.Name.String() + "."
		}
		return left + node.Identifier.Name.String()
	case *ast.Identifier:
		return node.Name.String()
	case *ast.StringLiteral:
		return node.Value.String()
	case *ast.CallExpression:
		return typeString(node.Callee)
	default:
		return ""
	}
}
