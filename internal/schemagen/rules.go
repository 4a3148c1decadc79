package schemagen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	RulesFileName   = "validation.rules"
	RulesReadmeName = "README.md"
)

// ValidatorName is the rule function checking field types and presence.
func ValidatorName(title string) string {
	return "isValid" + title
}

// HasOnlyFieldsName is the rule function restricting a document to the
// declared fields, "DiscipleshipClass" becomes "discipleshipClassHasOnlyFields".
func HasOnlyFieldsName(title string) string {
	if title == "" {
		return "hasOnlyFields"
	}
	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToLower(first)) + title[size:] + "HasOnlyFields"
}

func ruleTypeCheck(base string) string {
	switch base {
	case TypeNumber, TypeInteger:
		return "is number"
	case TypeBoolean:
		return "is bool"
	default:
		return "is string"
	}
}

func ruleFieldCheck(s *Schema, p Property) string {
	check := ruleTypeCheck(p.BaseType())
	if s.IsRequired(p.Name) && !p.Nullable() {
		return fmt.Sprintf("data.%s %s", p.Name, check)
	}
	return fmt.Sprintf("(!('%s' in data) || data.%s == null || data.%s %s)", p.Name, p.Name, p.Name, check)
}

func writeValidator(b *strings.Builder, f File) {
	s := f.Schema

	var clauses []string
	for _, r := range s.Required {
		clauses = append(clauses, fmt.Sprintf("'%s' in data", r))
	}
	for _, p := range s.Properties {
		clauses = append(clauses, ruleFieldCheck(s, p))
	}

	fmt.Fprintf(b, "    // Validates %s document structure\n", s.Title)
	fmt.Fprintf(b, "    // Generated from %s\n", f.Name)
	fmt.Fprintf(b, "    function %s(data) {\n", ValidatorName(s.Title))
	fmt.Fprintf(b, "      return %s;\n", strings.Join(clauses, " &&\n             "))
	b.WriteString("    }\n")
}

func writeHasOnly(b *strings.Builder, s *Schema) {
	quoted := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		quoted = append(quoted, fmt.Sprintf("'%s'", p.Name))
	}

	fmt.Fprintf(b, "    // Checks that %s only contains allowed fields\n", s.Title)
	fmt.Fprintf(b, "    function %s(data) {\n", HasOnlyFieldsName(s.Title))
	fmt.Fprintf(b, "      return data.keys().hasOnly([%s]);\n", strings.Join(quoted, ", "))
	b.WriteString("    }\n")
}

// collection describes where documents of a schema live in the store.
type collection struct {
	title    string
	path     string
	children []collection
}

var storeLayout = []collection{
	{title: "Event", path: "events/{eventId}"},
	{
		title: "DiscipleshipCourse",
		path:  "discipleshipCourses/{courseId}",
		children: []collection{{
			title: "DiscipleshipLocation",
			path:  "discipleshipLocations/{locationId}",
			children: []collection{{
				title: "DiscipleshipClass",
				path:  "discipleshipClasses/{classId}",
			}},
		}},
	},
}

func writeMatches(b *strings.Builder, layout []collection, titles map[string]bool, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, c := range layout {
		if !titles[c.title] {
			continue
		}

		data := "request.resource.data"
		fmt.Fprintf(b, "\n%smatch /%s {\n", indent, c.path)
		fmt.Fprintf(b, "%s  allow read: if true;\n", indent)
		fmt.Fprintf(b, "%s  allow create, update: if request.auth != null &&\n", indent)
		fmt.Fprintf(b, "%s                           %s(%s) &&\n", indent, ValidatorName(c.title), data)
		fmt.Fprintf(b, "%s                           %s(%s);\n", indent, HasOnlyFieldsName(c.title), data)
		fmt.Fprintf(b, "%s  allow delete: if request.auth != null;\n", indent)
		writeMatches(b, c.children, titles, depth+1)
		fmt.Fprintf(b, "%s}\n", indent)
	}
}

// Rules renders the consolidated rules file for all schemas.
func Rules(files []File) []byte {
	var b strings.Builder

	b.WriteString(`// This file was automatically generated from JSON schemas
// DO NOT MODIFY IT BY HAND. Run 'schemagen rules' to regenerate.
//
// These are helper validation functions to be used in your firestore.rules file.
// Copy the functions you need into your main firestore.rules file.

rules_version = '2';
service cloud.firestore {
  match /databases/{database}/documents {

    // ============================================
    // VALIDATION HELPER FUNCTIONS
    // ============================================

`)
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		writeValidator(&b, f)
	}

	b.WriteString(`
    // ============================================
    // FIELD RESTRICTION FUNCTIONS
    // ============================================

`)
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		writeHasOnly(&b, f.Schema)
	}

	b.WriteString(`
    // ============================================
    // EXAMPLE RULES (customize as needed)
    // ============================================
`)
	titles := make(map[string]bool, len(files))
	for _, f := range files {
		titles[f.Schema.Title] = true
	}
	writeMatches(&b, storeLayout, titles, 2)

	b.WriteString("  }\n}\n")

	return []byte(b.String())
}

// RulesReadme lists the generated function names.
func RulesReadme(files []File) []byte {
	var b strings.Builder

	b.WriteString("# Generated Firestore Rules\n\n")
	b.WriteString("This directory contains auto-generated Firestore security rules helper functions.\n\n")
	b.WriteString("## Files\n\n")
	fmt.Fprintf(&b, "- `%s` - Contains validation helper functions generated from JSON schemas\n\n", RulesFileName)
	b.WriteString("## Generated Functions\n\n")
	b.WriteString("For each schema, two functions are generated:\n\n")

	b.WriteString("### Validation Functions\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- `%s(data)` - Validates field types and required fields\n", ValidatorName(f.Schema.Title))
	}

	b.WriteString("\n### Field Restriction Functions\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- `%s(data)` - Ensures only allowed fields are present\n", HasOnlyFieldsName(f.Schema.Title))
	}

	b.WriteString("\n## Regenerating\n\n")
	b.WriteString("Run `schemagen rules` to regenerate these files after modifying schemas.\n")

	return []byte(b.String())
}

// RuleSet evaluates the generated predicates against a decoded JSON
// document, so rule semantics can be checked without the rules emulator.
type RuleSet struct {
	schema *Schema
}

func NewRuleSet(s *Schema) *RuleSet {
	return &RuleSet{schema: s}
}

// Violations lists the clauses of the validator predicate that fail for
// doc, in the order they appear in the generated rule.
func (r *RuleSet) Violations(doc map[string]any) []string {
	var out []string

	for _, name := range r.schema.Required {
		if _, ok := doc[name]; !ok {
			out = append(out, fmt.Sprintf("missing required field %q", name))
		}
	}

	for _, p := range r.schema.Properties {
		v, present := doc[p.Name]
		strict := r.schema.IsRequired(p.Name) && !p.Nullable()

		// absent required fields are reported above
		if !present || (v == nil && !strict) {
			continue
		}
		if !matchesRuleType(p.BaseType(), v) {
			out = append(out, fmt.Sprintf("field %q: want %s, got %T", p.Name, ruleTypeCheck(p.BaseType()), v))
		}
	}

	return out
}

// Validate mirrors the isValid<Title> rule.
func (r *RuleSet) Validate(doc map[string]any) bool {
	return len(r.Violations(doc)) == 0
}

// UnknownFields returns the keys of doc the schema does not declare,
// sorted.
func (r *RuleSet) UnknownFields(doc map[string]any) []string {
	var out []string
	for k := range doc {
		if _, ok := r.schema.Property(k); !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// HasOnlyFields mirrors the <title>HasOnlyFields rule.
func (r *RuleSet) HasOnlyFields(doc map[string]any) bool {
	return len(r.UnknownFields(doc)) == 0
}

func matchesRuleType(base string, v any) bool {
	switch base {
	case TypeNumber, TypeInteger:
		switch v.(type) {
		case float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}
