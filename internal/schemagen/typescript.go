package schemagen

import (
	"fmt"
	"strings"
)

const tsBanner = `/* eslint-disable */
/**
 * This file was automatically generated%s
 * DO NOT MODIFY IT BY HAND. Run 'schemagen types' to regenerate.
 */
`

// TypeScriptFileName maps "event.schema.json" to "event.ts".
func TypeScriptFileName(schemaFile string) string {
	return strings.TrimSuffix(schemaFile, SchemaSuffix) + ".ts"
}

// TypeScript renders one exported interface per schema.
func TypeScript(s *Schema, schemaFile string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, tsBanner, " from "+schemaFile)
	b.WriteString("\n")

	if s.Description != "" {
		writeJSDoc(&b, "", s.Description)
	}
	fmt.Fprintf(&b, "export interface %s {\n", s.Title)

	for _, p := range s.Properties {
		if p.Description != "" {
			writeJSDoc(&b, "  ", p.Description)
		}

		optional := ""
		if !s.IsRequired(p.Name) {
			optional = "?"
		}

		typ := tsType(p.BaseType())
		if p.Nullable() {
			typ += " | null"
		}

		fmt.Fprintf(&b, "  %s%s: %s;\n", p.Name, optional, typ)
	}

	b.WriteString("}\n")

	return []byte(b.String())
}

// TypeScriptIndex is the barrel file re-exporting every generated module.
func TypeScriptIndex(files []File) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, tsBanner, ".")
	b.WriteString("\n")

	for _, f := range files {
		fmt.Fprintf(&b, "export * from './%s';\n", f.BaseName())
	}

	return []byte(b.String())
}

func tsType(base string) string {
	switch base {
	case TypeString:
		return "string"
	case TypeNumber, TypeInteger:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

func writeJSDoc(b *strings.Builder, indent, text string) {
	fmt.Fprintf(b, "%s/**\n", indent)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(b, "%s * %s\n", indent, line)
	}
	fmt.Fprintf(b, "%s */\n", indent)
}
