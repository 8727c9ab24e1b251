package model

import "regexp"

// PropertyType is the OpenAPI rendering of a storage type.
type PropertyType struct {
	Type   string
	Format string
}

// Map renders the type as OpenAPI schema keys.
func (p PropertyType) Map() map[string]any {
	m := map[string]any{"type": p.Type}
	if p.Format != "" {
		m["format"] = p.Format
	}
	return m
}

var storageTypes = map[string]PropertyType{
	"STRING":   {Type: "string"},
	"TEXT":     {Type: "string"},
	"INTEGER":  {Type: "integer", Format: "int32"},
	"BIGINT":   {Type: "integer", Format: "int64"},
	"FLOAT":    {Type: "number", Format: "float"},
	"DOUBLE":   {Type: "number", Format: "double"},
	"DECIMAL":  {Type: "string"}, // decimals travel as strings to keep precision
	"BOOLEAN":  {Type: "boolean"},
	"DATE":     {Type: "string", Format: "date-time"},
	"DATEONLY": {Type: "string", Format: "date"},
	"TIME":     {Type: "string"},
	"UUID":     {Type: "string", Format: "uuid"},
	"JSON":     {Type: "object"},
	"JSONB":    {Type: "object"},
	"ENUM":     {Type: "string"},
	"ARRAY":    {Type: "array"},
	"BLOB":     {Type: "string", Format: "binary"},
	"GEOMETRY": {Type: "object"},
	"RANGE":    {Type: "array"},
}

var storageTypeToken = regexp.MustCompile(`(?:DataTypes\.)?([A-Z]+)`)

// TypeOf translates a declared storage type token ("DataTypes.STRING",
// "INTEGER", "DataTypes.ENUM('a','b')") into its OpenAPI type and format.
// Unknown tokens degrade to a plain string.
func TypeOf(storageType string) PropertyType {
	match := storageTypeToken.FindStringSubmatch(storageType)
	if match == nil {
		return PropertyType{Type: "string"}
	}
	if pt, ok := storageTypes[match[1]]; ok {
		return pt
	}
	return PropertyType{Type: "string"}
}
