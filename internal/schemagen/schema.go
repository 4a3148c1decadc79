// Package schemagen turns JSON Schema documents into model definitions for
// the site's client code: TypeScript interfaces, Dart data classes and
// Firestore rule predicates. Output is deterministic and follows the
// declared property order of each schema.
package schemagen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNull    = "null"

	FormatDateTime = "date-time"
)

var ErrNotObject = errors.New("expected a JSON object")

// Schema is the subset of JSON Schema the generators understand.
type Schema struct {
	Title       string
	Description string
	Properties  []Property
	Required    []string
}

type Property struct {
	Name        string
	Types       []string
	Format      string
	Description string
}

// BaseType is the first non-null member of the type list. A property with
// only "null" or no type at all falls back to string.
func (p Property) BaseType() string {
	for _, t := range p.Types {
		if t != TypeNull {
			return t
		}
	}
	return TypeString
}

// Nullable reports whether "null" is one of the declared types.
func (p Property) Nullable() bool {
	for _, t := range p.Types {
		if t == TypeNull {
			return true
		}
	}
	return false
}

func (p Property) IsDateTime() bool {
	return p.Format == FormatDateTime
}

func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Optional reports whether generated code must tolerate the field being
// absent or null.
func (s *Schema) Optional(p Property) bool {
	return p.Nullable() || !s.IsRequired(p.Name)
}

func (s *Schema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// typeSet accepts both "type": "string" and "type": ["string", "null"].
type typeSet []string

func (t *typeSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*t = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = typeSet{single}
	return nil
}

func (t typeSet) String() string {
	switch len(t) {
	case 0:
		return "undefined"
	case 1:
		return t[0]
	default:
		return strings.Join(t, ",")
	}
}

type rawProperty struct {
	Type        typeSet         `json:"type"`
	Format      string          `json:"format"`
	Description string          `json:"description"`
	Ref         string          `json:"$ref"`
	OneOf       json.RawMessage `json:"oneOf"`
	AnyOf       json.RawMessage `json:"anyOf"`
	AllOf       json.RawMessage `json:"allOf"`
}

func (p rawProperty) hasTypeDefinition() bool {
	return len(p.Type) != 0 || p.Ref != "" || p.OneOf != nil || p.AnyOf != nil || p.AllOf != nil
}

type namedProperty struct {
	name string
	rawProperty
}

// orderedProperties keeps the "properties" object in document order, which
// encoding/json maps cannot do.
type orderedProperties []namedProperty

func (o *orderedProperties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: %w", ErrNotObject)
	}

	var props orderedProperties
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var p rawProperty
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		props = append(props, namedProperty{name: name, rawProperty: p})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = props
	return nil
}

func (o orderedProperties) get(name string) (namedProperty, bool) {
	for _, p := range o {
		if p.name == name {
			return p, true
		}
	}
	return namedProperty{}, false
}

type rawSchema struct {
	SchemaURI            string            `json:"$schema"`
	ID                   string            `json:"$id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Type                 typeSet           `json:"type"`
	Properties           orderedProperties `json:"properties"`
	Required             []string          `json:"required"`
	AdditionalProperties json.RawMessage   `json:"additionalProperties"`
}

func decodeRaw(content []byte) (*rawSchema, error) {
	raw := &rawSchema{}
	if err := json.Unmarshal(content, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Parse decodes a schema document. It does not apply the pre-flight checks,
// see Validate for those.
func Parse(file string, content []byte) (*Schema, error) {
	raw, err := decodeRaw(content)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", file, err)
	}

	return raw.schema(), nil
}

func (r *rawSchema) schema() *Schema {
	s := &Schema{
		Title:       r.Title,
		Description: r.Description,
		Required:    append([]string(nil), r.Required...),
		Properties:  make([]Property, 0, len(r.Properties)),
	}

	for _, p := range r.Properties {
		s.Properties = append(s.Properties, Property{
			Name:        p.name,
			Types:       append([]string(nil), p.Type...),
			Format:      p.Format,
			Description: p.Description,
		})
	}

	return s
}
