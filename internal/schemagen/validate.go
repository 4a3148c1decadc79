package schemagen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const SchemaSuffix = ".schema.json"

// Result is the outcome of the pre-flight check of one schema file.
type Result struct {
	File     string
	Errors   []string
	Warnings []string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate runs the pre-flight checks. Errors make the file unusable for
// generation, warnings flag recommended but optional fields.
func Validate(file string, content []byte) Result {
	res := Result{File: filepath.Base(file)}

	raw, err := decodeRaw(content)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return res
	}

	switch {
	case raw.SchemaURI == "":
		res.Warnings = append(res.Warnings, "Missing $schema declaration")
	case !strings.Contains(raw.SchemaURI, "json-schema.org"):
		res.Warnings = append(res.Warnings, fmt.Sprintf("Unexpected $schema value: %s", raw.SchemaURI))
	}

	if raw.ID == "" {
		res.Warnings = append(res.Warnings, "Missing $id (recommended for schema identification)")
	}

	if raw.Title == "" {
		res.Errors = append(res.Errors, `Missing required "title" property (needed for code generation)`)
	}

	if len(raw.Type) != 1 || raw.Type[0] != "object" {
		res.Errors = append(res.Errors, fmt.Sprintf(`Schema type must be "object", got: %s`, raw.Type))
	}

	if len(raw.Properties) == 0 {
		res.Errors = append(res.Errors, "Schema must have at least one property")
	}

	if !bytes.Equal(bytes.TrimSpace(raw.AdditionalProperties), []byte("false")) {
		res.Warnings = append(res.Warnings, `Consider setting "additionalProperties": false for strict validation`)
	}

	for _, p := range raw.Properties {
		if !p.hasTypeDefinition() {
			res.Errors = append(res.Errors, fmt.Sprintf("Property %q has no type definition", p.name))
		}
	}

	for _, r := range raw.Required {
		if _, ok := raw.Properties.get(r); !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("Required field %q not found in properties", r))
		}
	}

	return res
}

// File is a parsed schema together with the name of the file it came from.
type File struct {
	Name   string
	Schema *Schema
}

// BaseName strips the schema suffix, "event.schema.json" becomes "event".
func (f File) BaseName() string {
	return strings.TrimSuffix(f.Name, SchemaSuffix)
}

// ListDir returns the schema file names in dir in name order.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SchemaSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ValidateDir checks every schema in dir.
func ValidateDir(dir string) ([]Result, error) {
	names, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no schema files found in %s", dir)
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		results = append(results, Validate(name, content))
	}

	return results, nil
}

// LoadDir parses every schema in dir. The first file that fails the
// pre-flight errors aborts loading with a diagnostic naming it.
func LoadDir(dir string) ([]File, error) {
	names, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no schema files found in %s", dir)
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		if res := Validate(name, content); !res.Valid() {
			return nil, fmt.Errorf("%s: %s", name, strings.Join(res.Errors, "; "))
		}

		schema, err := Parse(name, content)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: name, Schema: schema})
	}

	return files, nil
}
