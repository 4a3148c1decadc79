package schemagen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDart_Course(t *testing.T) {
	s := mustParse(t, courseSchema)

	want := `// This file was automatically generated from discipleship-course.schema.json
// DO NOT MODIFY IT BY HAND. Run 'schemagen dart' to regenerate.

/// A discipleship course offered by the church
class DiscipleshipCourse {
  /// Unique identifier for the course
  final String id;
  /// Name of the course
  final String name;
  /// Optional description of the course
  final String? description;

  const DiscipleshipCourse({
    required this.id,
    required this.name,
    this.description,
  });

  factory DiscipleshipCourse.fromJson(Map<String, dynamic> json) {
    return DiscipleshipCourse(
      id: json['id'] as String,
      name: json['name'] as String,
      description: json['description'] as String?,
    );
  }

  Map<String, dynamic> toJson() {
    return {
      'id': id,
      'name': name,
      'description': description,
    };
  }

  DiscipleshipCourse copyWith({
    String? id,
    String? name,
    String? description,
  }) {
    return DiscipleshipCourse(
      id: id ?? this.id,
      name: name ?? this.name,
      description: description ?? this.description,
    );
  }

  @override
  String toString() {
    return 'DiscipleshipCourse(id: $id, name: $name, description: $description)';
  }

  @override
  bool operator ==(Object other) {
    if (identical(this, other)) return true;
    return other is DiscipleshipCourse &&
        other.id == id &&
        other.name == name &&
        other.description == description;
  }

  @override
  int get hashCode {
    return Object.hash(
      id,
      name,
      description,
    );
  }
}
`
	assert.Equal(t, want, string(Dart(s, "discipleship-course.schema.json")))
}

func TestDart_TypeMapping(t *testing.T) {
	out := string(Dart(mustParse(t, classSchema), "class.schema.json"))

	assert.Contains(t, out, "  final DateTime startTime;\n")
	assert.Contains(t, out, "      startTime: DateTime.parse(json['startTime'] as String),\n")
	assert.Contains(t, out, "      'startTime': startTime.toIso8601String(),\n")
	assert.Contains(t, out, "  final int? capacity;\n")
	assert.Contains(t, out, "      capacity: json['capacity'] as int?,\n")
	assert.Contains(t, out, "  final double? fee;\n")
	assert.Contains(t, out, "      fee: (json['fee'] as num?)?.toDouble(),\n")
	assert.Contains(t, out, "  final bool open;\n")
	assert.Contains(t, out, "    required this.open,\n")
}

func TestDart_NullableDateTimeGuardsNull(t *testing.T) {
	s := mustParse(t, `{"title": "E", "type": "object", "properties": {
		"at": {"type": ["string", "null"], "format": "date-time"}}}`)
	out := string(Dart(s, "e.schema.json"))

	assert.Contains(t, out, "      at: json['at'] != null ? DateTime.parse(json['at'] as String) : null,\n")
	assert.Contains(t, out, "      'at': at?.toIso8601String(),\n")
	assert.Contains(t, out, "    return at.hashCode;\n")
}

func TestDart_ManyFieldsUseHashAll(t *testing.T) {
	var props []string
	for i := 0; i < 21; i++ {
		props = append(props, fmt.Sprintf(`"f%d": {"type": "string"}`, i))
	}
	s := mustParse(t, `{"title": "Wide", "type": "object", "properties": {`+strings.Join(props, ",")+`}}`)

	out := string(Dart(s, "wide.schema.json"))
	assert.Contains(t, out, "Object.hashAll([")
	assert.NotContains(t, out, "Object.hash(\n")
}

func TestDartNaming(t *testing.T) {
	assert.Equal(t, "discipleship_class.dart", DartFileName("discipleship-class.schema.json"))

	barrel := string(DartBarrel([]File{{Name: "discipleship-class.schema.json"}, {Name: "event.schema.json"}}))
	assert.True(t, strings.HasSuffix(barrel, "export 'discipleship_class.dart';\nexport 'event.dart';\n"))
}
