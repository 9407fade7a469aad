package animreview

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// errEmptyReply is internal; the orchestrator wraps it with the provider name.
var errEmptyReply = errors.New("provider returned an empty reply")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?\\s*```")

// extractJSON pulls a JSON object out of reply text that may carry markdown
// fences or surrounding prose. Returns nil when no object can be recovered.
func extractJSON(text string) map[string]any {
	stripped := strings.TrimSpace(text)

	var obj map[string]any
	if json.Unmarshal([]byte(stripped), &obj) == nil {
		return obj
	}

	if m := fencedJSON.FindStringSubmatch(stripped); m != nil {
		if json.Unmarshal([]byte(m[1]), &obj) == nil {
			return obj
		}
	}

	// Outermost { ... } block.
	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start != -1 && end > start {
		if json.Unmarshal([]byte(stripped[start:end+1]), &obj) == nil {
			return obj
		}
	}
	return nil
}

// normalizeStructured parses a raw provider reply against the declared
// schema. The returned mapping carries exactly the schema's fields: omitted
// fields take their declared default (or the type's zero), present fields of
// the wrong fundamental type fail with a ShapeError naming the field.
// Undeclared extras are dropped.
func normalizeStructured(text string, schema ResponseSchema) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyReply
	}
	obj := extractJSON(text)
	if obj == nil {
		return nil, &ShapeError{Field: "(root)", Want: "JSON object", Got: "prose"}
	}

	out := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		v, present := obj[f.Name]
		if !present || v == nil {
			out[f.Name] = fieldDefault(f)
			continue
		}
		if err := checkFieldType(f, v); err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// normalizeRaw confirms non-empty text and passes it through unchanged. The
// two-section separation is a prompt-level contract with the remote model,
// not enforced here.
func normalizeRaw(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errEmptyReply
	}
	return text, nil
}

func fieldDefault(f SchemaField) any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Type {
	case FieldString:
		return ""
	case FieldNumber:
		return 0.0
	case FieldInteger:
		return 0
	case FieldBoolean:
		return false
	case FieldArray:
		return []any{}
	default:
		return map[string]any{}
	}
}

// checkFieldType validates one decoded JSON value against the field's
// fundamental type. Values come from encoding/json, so numbers are float64
// and objects are map[string]any.
func checkFieldType(f SchemaField, v any) error {
	ok := false
	switch f.Type {
	case FieldString:
		_, ok = v.(string)
	case FieldBoolean:
		_, ok = v.(bool)
	case FieldNumber:
		_, ok = v.(float64)
	case FieldInteger:
		if n, isNum := v.(float64); isNum {
			ok = n == float64(int64(n))
		}
	case FieldArray:
		_, ok = v.([]any)
	case FieldObject:
		_, ok = v.(map[string]any)
	}
	if !ok {
		return &ShapeError{Field: f.Name, Want: string(f.Type), Got: jsonTypeName(v)}
	}
	return nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
