package model

import (
	"fmt"
	"strings"
)

// ErrorDetail is one field-level entry of a 400/409 error example.
type ErrorDetail struct {
	Field   string
	Message string
}

// defaultValidatorMessages holds the fallback message per validation rule,
// used when the rule declares no msg of its own. Rules whose fallback
// interpolates arguments are handled in Detail.
var defaultValidatorMessages = map[string]string{
	"notNull":        "Validation failed",
	"notEmpty":       "Validation failed",
	"isDecimal":      "Validation failed",
	"min":            "Validation failed",
	"max":            "Validation failed",
	"isEmail":        "Must be a valid email",
	"isUrl":          "Must be a valid URL",
	"isIP":           "Must be a valid IP address",
	"isIPv4":         "Must be a valid IPv4 address",
	"isIPv6":         "Must be a valid IPv6 address",
	"isAlpha":        "Must contain only letters",
	"isAlphanumeric": "Must contain only letters and numbers",
	"isNumeric":      "Must contain only numbers",
	"isLowercase":    "Must be lowercase",
	"isUppercase":    "Must be uppercase",
	"isDate":         "Must be a valid date",
	"isCreditCard":   "Must be a valid credit card number",
	"isUUID":         "Must be a valid UUID",
	"custom":         "Validation failed",
}

// KnownValidator reports whether the rule participates in 400 error
// synthesis. Unknown rules are carried through extraction but ignored.
func KnownValidator(rule string) bool {
	if _, ok := defaultValidatorMessages[rule]; ok {
		return true
	}
	switch rule {
	case "len", "equals", "contains", "notContains", "isIn", "notIn", "isAfter", "isBefore":
		return true
	}
	return false
}

// Detail renders the validator as a field/message error entry. A declared
// msg always wins; otherwise the rule's fallback message is used, with
// arguments interpolated where the rule has them.
func (v Validator) Detail(field string) ErrorDetail {
	if v.Message != "" {
		return ErrorDetail{Field: field, Message: v.Message}
	}

	var msg string
	switch v.Rule {
	case "len":
		if len(v.Args) >= 2 {
			msg = fmt.Sprintf("Must be between %v and %v characters", v.Args[0], v.Args[1])
		}
	case "equals":
		msg = argMessage("Must equal %v", v.Args)
	case "contains":
		msg = argMessage("Must contain %v", v.Args)
	case "notContains":
		msg = argMessage("Must not contain %v", v.Args)
	case "isIn":
		msg = listMessage("Must be one of: %s", v.Args)
	case "notIn":
		msg = listMessage("Must not be one of: %s", v.Args)
	case "isAfter":
		msg = argMessage("Must be after %v", v.Args)
	case "isBefore":
		msg = argMessage("Must be before %v", v.Args)
	default:
		msg = defaultValidatorMessages[v.Rule]
	}
	if msg == "" {
		msg = "Validation failed"
	}
	return ErrorDetail{Field: field, Message: msg}
}

func argMessage(format string, args []any) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprintf(format, args[0])
}

func listMessage(format string, args []any) string {
	if len(args) == 0 {
		return ""
	}
	values, ok := args[0].([]any)
	if !ok {
		return fmt.Sprintf(format, fmt.Sprint(args[0]))
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return fmt.Sprintf(format, strings.Join(parts, ", "))
}

// ValidationDetails collects the full set of renderable validation errors
// declared by a model's fields, in declaration order.
func ValidationDetails(m *Model) []ErrorDetail {
	var details []ErrorDetail
	if m == nil {
		return details
	}
	for i := range m.Fields {
		field := &m.Fields[i]
		for _, v := range field.Validators {
			if KnownValidator(v.Rule) {
				details = append(details, v.Detail(field.Name))
			}
		}
	}
	return details
}

// UniqueDetails collects the unique-constraint violations a model can
// report, one per constrained field.
func UniqueDetails(m *Model) []ErrorDetail {
	var details []ErrorDetail
	if m == nil {
		return details
	}
	for i := range m.Fields {
		field := &m.Fields[i]
		if field.Unique == nil {
			continue
		}
		msg := field.Unique.Message
		if msg == "" {
			msg = fmt.Sprintf("Constraint violations on %s", field.Name)
		}
		details = append(details, ErrorDetail{Field: field.Name, Message: msg})
	}
	return details
}
