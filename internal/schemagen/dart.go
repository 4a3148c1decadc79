package schemagen

import (
	"fmt"
	"strings"
)

// Object.hash takes at most 20 positional values.
const dartHashArgsLimit = 20

// DartFileName maps "discipleship-class.schema.json" to
// "discipleship_class.dart".
func DartFileName(schemaFile string) string {
	return strings.ReplaceAll(strings.TrimSuffix(schemaFile, SchemaSuffix), "-", "_") + ".dart"
}

func dartType(p Property) string {
	switch p.BaseType() {
	case TypeString:
		if p.IsDateTime() {
			return "DateTime"
		}
		return "String"
	case TypeNumber:
		return "double"
	case TypeInteger:
		return "int"
	case TypeBoolean:
		return "bool"
	default:
		return "dynamic"
	}
}

func dartFromJSON(p Property, optional bool) string {
	key := fmt.Sprintf("json['%s']", p.Name)

	if p.IsDateTime() {
		if optional {
			return fmt.Sprintf("%s != null ? DateTime.parse(%s as String) : null", key, key)
		}
		return fmt.Sprintf("DateTime.parse(%s as String)", key)
	}

	q := ""
	if optional {
		q = "?"
	}

	switch p.BaseType() {
	case TypeString:
		return fmt.Sprintf("%s as String%s", key, q)
	case TypeNumber:
		return fmt.Sprintf("(%s as num%s)%s.toDouble()", key, q, q)
	case TypeInteger:
		return fmt.Sprintf("%s as int%s", key, q)
	case TypeBoolean:
		return fmt.Sprintf("%s as bool%s", key, q)
	default:
		return key
	}
}

func dartToJSON(p Property, optional bool) string {
	if !p.IsDateTime() {
		return p.Name
	}
	if optional {
		return p.Name + "?.toIso8601String()"
	}
	return p.Name + ".toIso8601String()"
}

// Dart renders an immutable data class with JSON (de)serialization,
// copyWith, value equality and a readable toString.
func Dart(s *Schema, schemaFile string) []byte {
	var (
		b     strings.Builder
		class = s.Title
		names = make([]string, 0, len(s.Properties))
	)

	for _, p := range s.Properties {
		names = append(names, p.Name)
	}

	fmt.Fprintf(&b, "// This file was automatically generated from %s\n", schemaFile)
	b.WriteString("// DO NOT MODIFY IT BY HAND. Run 'schemagen dart' to regenerate.\n\n")
	if s.Description != "" {
		fmt.Fprintf(&b, "/// %s\n", s.Description)
	}
	fmt.Fprintf(&b, "class %s {\n", class)

	for _, p := range s.Properties {
		if p.Description != "" {
			fmt.Fprintf(&b, "  /// %s\n", p.Description)
		}
		typ := dartType(p)
		if s.Optional(p) && typ != "dynamic" {
			typ += "?"
		}
		fmt.Fprintf(&b, "  final %s %s;\n", typ, p.Name)
	}

	fmt.Fprintf(&b, "\n  const %s({\n", class)
	for _, p := range s.Properties {
		if s.Optional(p) {
			fmt.Fprintf(&b, "    this.%s,\n", p.Name)
		} else {
			fmt.Fprintf(&b, "    required this.%s,\n", p.Name)
		}
	}
	b.WriteString("  });\n\n")

	fmt.Fprintf(&b, "  factory %s.fromJson(Map<String, dynamic> json) {\n", class)
	fmt.Fprintf(&b, "    return %s(\n", class)
	for _, p := range s.Properties {
		fmt.Fprintf(&b, "      %s: %s,\n", p.Name, dartFromJSON(p, s.Optional(p)))
	}
	b.WriteString("    );\n  }\n\n")

	b.WriteString("  Map<String, dynamic> toJson() {\n    return {\n")
	for _, p := range s.Properties {
		fmt.Fprintf(&b, "      '%s': %s,\n", p.Name, dartToJSON(p, s.Optional(p)))
	}
	b.WriteString("    };\n  }\n\n")

	fmt.Fprintf(&b, "  %s copyWith({\n", class)
	for _, p := range s.Properties {
		typ := dartType(p)
		if typ != "dynamic" {
			typ += "?"
		}
		fmt.Fprintf(&b, "    %s %s,\n", typ, p.Name)
	}
	b.WriteString("  }) {\n")
	fmt.Fprintf(&b, "    return %s(\n", class)
	for _, n := range names {
		fmt.Fprintf(&b, "      %s: %s ?? this.%s,\n", n, n, n)
	}
	b.WriteString("    );\n  }\n\n")

	fields := make([]string, 0, len(names))
	for _, n := range names {
		fields = append(fields, fmt.Sprintf("%s: $%s", n, n))
	}
	b.WriteString("  @override\n  String toString() {\n")
	fmt.Fprintf(&b, "    return '%s(%s)';\n", class, strings.Join(fields, ", "))
	b.WriteString("  }\n\n")

	eq := make([]string, 0, len(names))
	for _, n := range names {
		eq = append(eq, fmt.Sprintf("        other.%s == %s", n, n))
	}
	b.WriteString("  @override\n  bool operator ==(Object other) {\n")
	b.WriteString("    if (identical(this, other)) return true;\n")
	if len(eq) == 0 {
		fmt.Fprintf(&b, "    return other is %s;\n", class)
	} else {
		fmt.Fprintf(&b, "    return other is %s &&\n%s;\n", class, strings.Join(eq, " &&\n"))
	}
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n  int get hashCode {\n")
	switch {
	case len(names) == 0:
		b.WriteString("    return 0;\n")
	case len(names) == 1:
		fmt.Fprintf(&b, "    return %s.hashCode;\n", names[0])
	case len(names) > dartHashArgsLimit:
		fmt.Fprintf(&b, "    return Object.hashAll([\n")
		for _, n := range names {
			fmt.Fprintf(&b, "      %s,\n", n)
		}
		b.WriteString("    ]);\n")
	default:
		b.WriteString("    return Object.hash(\n")
		for _, n := range names {
			fmt.Fprintf(&b, "      %s,\n", n)
		}
		b.WriteString("    );\n")
	}
	b.WriteString("  }\n}\n")

	return []byte(b.String())
}

// DartBarrel exports every generated class from generated.dart.
func DartBarrel(files []File) []byte {
	var b strings.Builder

	b.WriteString("// This file was automatically generated.\n")
	b.WriteString("// DO NOT MODIFY IT BY HAND. Run 'schemagen dart' to regenerate.\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "export '%s';\n", DartFileName(f.Name))
	}

	return []byte(b.String())
}
