// Package llm - shape.go builds the "return only this JSON" part of prompts.
package llm

import (
	"fmt"
	"strings"
)

// OutputShape documents the JSON object a sub-task expects back
type OutputShape struct {
	Name   string       // Shape name (e.g., "StructuredResume")
	Fields []ShapeField // Expected output fields
}

// ShapeField defines a single field in the extraction output
type ShapeField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "string[]", "[{...}]"
	Description string // Description for the LLM
	Required    bool
}

// Instruction renders the shape and the JSON-only instruction block
func (s OutputShape) Instruction() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Return ONLY one JSON object for %s matching this exact structure:\n{\n", s.Name))
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no prose, no markdown, no code fences.\n")
	return sb.String()
}
