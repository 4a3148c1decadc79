package schemagen

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestRuleNames(t *testing.T) {
	assert.Equal(t, "isValidDiscipleshipClass", ValidatorName("DiscipleshipClass"))
	assert.Equal(t, "discipleshipClassHasOnlyFields", HasOnlyFieldsName("DiscipleshipClass"))
	assert.Equal(t, "eventHasOnlyFields", HasOnlyFieldsName("Event"))
	assert.Equal(t, "hasOnlyFields", HasOnlyFieldsName(""))

	name := HasOnlyFieldsName("ĐiểmNhóm")
	assert.Equal(t, "điểmNhómHasOnlyFields", name)
	assert.True(t, utf8.ValidString(name))
}

func TestRules_Validator(t *testing.T) {
	files := []File{{Name: "class.schema.json", Schema: mustParse(t, classSchema)}}
	out := string(Rules(files))

	assert.Contains(t, out, "    // Generated from class.schema.json\n")
	assert.Contains(t, out, "    function isValidDiscipleshipClass(data) {\n")
	assert.Contains(t, out, "      return 'id' in data &&\n")
	assert.Contains(t, out, "             data.id is string &&\n")
	assert.Contains(t, out, "             (!('contact' in data) || data.contact == null || data.contact is string) &&\n")
	assert.Contains(t, out, "             (!('capacity' in data) || data.capacity == null || data.capacity is number) &&\n")
	assert.Contains(t, out, "             data.open is bool;\n")
	assert.Contains(t, out, "      return data.keys().hasOnly(['id', 'startTime', 'contact', 'capacity', 'fee', 'open']);\n")
}

func TestRules_NestedLayout(t *testing.T) {
	files, err := LoadDir("../../schemas")
	require.NoError(t, err)

	out := string(Rules(files))

	assert.Contains(t, out, "    match /events/{eventId} {\n")
	assert.Contains(t, out, "    match /discipleshipCourses/{courseId} {\n")
	assert.Contains(t, out, "      match /discipleshipLocations/{locationId} {\n")
	assert.Contains(t, out, "        match /discipleshipClasses/{classId} {\n")
	assert.Contains(t, out, "isValidDiscipleshipClass(request.resource.data)")

	readme := string(RulesReadme(files))
	for _, f := range files {
		assert.Contains(t, readme, "`"+ValidatorName(f.Schema.Title)+"(data)`")
		assert.Contains(t, readme, "`"+HasOnlyFieldsName(f.Schema.Title)+"(data)`")
	}
}

func TestRules_SkipsAbsentCollections(t *testing.T) {
	files := []File{{Name: "class.schema.json", Schema: mustParse(t, classSchema)}}
	out := string(Rules(files))

	assert.NotContains(t, out, "match /events/")
	assert.NotContains(t, out, "match /discipleshipClasses/")
}

func TestRuleSet_RequiredFieldMustBePresent(t *testing.T) {
	s := mustParse(t, classSchema)
	rs := NewRuleSet(s)

	full := `{"id": "c1", "startTime": "2025-01-06T19:00:00Z", "open": true}`
	require.True(t, rs.Validate(decodeDoc(t, full)))

	for _, name := range s.Required {
		doc := decodeDoc(t, full)
		delete(doc, name)
		assert.False(t, rs.Validate(doc), "document without %q must be rejected", name)
	}
}

func TestRuleSet_NullableFieldAcceptsValueNullOrAbsent(t *testing.T) {
	rs := NewRuleSet(mustParse(t, classSchema))

	docs := []string{
		`{"id": "c1", "startTime": "t", "open": true, "contact": "Anh Minh", "fee": 10.5}`,
		`{"id": "c1", "startTime": "t", "open": true, "contact": null, "fee": null}`,
		`{"id": "c1", "startTime": "t", "open": true}`,
	}
	for _, raw := range docs {
		assert.True(t, rs.Validate(decodeDoc(t, raw)), raw)
	}

	bad := decodeDoc(t, `{"id": "c1", "startTime": "t", "open": true, "contact": 5}`)
	assert.False(t, rs.Validate(bad))
	assert.Equal(t, []string{`field "contact": want is string, got float64`}, rs.Violations(bad))
}

func TestRuleSet_StrictFieldRejectsNull(t *testing.T) {
	rs := NewRuleSet(mustParse(t, classSchema))

	doc := decodeDoc(t, `{"id": null, "startTime": "t", "open": "yes"}`)
	assert.Equal(t, []string{
		`field "id": want is string, got <nil>`,
		`field "open": want is bool, got string`,
	}, rs.Violations(doc))
}

func TestRuleSet_HasOnlyFields(t *testing.T) {
	rs := NewRuleSet(mustParse(t, classSchema))

	assert.True(t, rs.HasOnlyFields(decodeDoc(t, `{"id": "c1", "open": false}`)))

	doc := decodeDoc(t, `{"id": "c1", "zeta": 1, "alpha": 2}`)
	assert.False(t, rs.HasOnlyFields(doc))
	assert.Equal(t, []string{"alpha", "zeta"}, rs.UnknownFields(doc))
}
