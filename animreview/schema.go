package animreview

// FieldType is the fundamental JSON type of a schema field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldArray   FieldType = "array"
	FieldObject  FieldType = "object"
)

// SchemaField declares one named field of a structured response.
type SchemaField struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     any // substituted when an optional field is omitted
	Description string
	// Items is an optional JSON-Schema fragment describing array elements or
	// nested object properties, passed through to providers as-is.
	Items map[string]any
}

// ResponseSchema is the declared shape of one mode's structured reply.
type ResponseSchema struct {
	Fields []SchemaField
}

// JSONSchema renders the schema as a JSON-Schema object suitable both for
// native provider enforcement and for inlining into a prompt.
func (s ResponseSchema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	var required []string
	for _, f := range s.Fields {
		prop := map[string]any{"type": string(f.Type)}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.Items != nil {
			if f.Type == FieldArray {
				prop["items"] = f.Items
			} else {
				prop["properties"] = f.Items
			}
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

var modeSchemas = map[Mode]ResponseSchema{
	ModeCheck: {Fields: []SchemaField{
		{Name: "pass", Type: FieldBoolean, Required: true,
			Description: "whether every observed animation works"},
		{Name: "notes", Type: FieldString, Default: "",
			Description: "brief pass/fail notes per animation"},
		{Name: "issues", Type: FieldArray, Default: []any{},
			Items: map[string]any{"type": "string"},
			Description: "visual breaks, layout shifts, missing elements"},
		{Name: "score", Type: FieldInteger, Default: 0,
			Description: "1-10, 5+ means functionally working"},
	}},
	ModeReview: {Fields: []SchemaField{
		{Name: "score", Type: FieldInteger, Required: true,
			Description: "1-10 against professional production standards"},
		{Name: "summary", Type: FieldString, Required: true},
		{Name: "categories", Type: FieldObject, Default: map[string]any{},
			Items: map[string]any{
				"easing":       map[string]any{"type": "string"},
				"timing":       map[string]any{"type": "string"},
				"choreography": map[string]any{"type": "string"},
				"polish":       map[string]any{"type": "string"},
			},
			Description: "per-category assessment"},
		{Name: "animations", Type: FieldArray, Default: []any{},
			Items: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element":     map[string]any{"type": "string"},
					"timestamp":   map[string]any{"type": "string"},
					"duration_ms": map[string]any{"type": "integer"},
					"easing":      map[string]any{"type": "string"},
					"quality": map[string]any{
						"type": "string",
						"enum": []any{"smooth", "acceptable", "janky", "broken"},
					},
				},
				"required": []any{"element", "timestamp", "quality"},
			}},
		{Name: "recommendations", Type: FieldArray, Default: []any{},
			Items: map[string]any{"type": "string"}},
	}},
	ModeDiagnose: {Fields: []SchemaField{
		{Name: "summary", Type: FieldString, Required: true},
		{Name: "observations", Type: FieldArray, Required: true,
			Items: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"timestamp":   map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"expected":    map[string]any{"type": "string"},
					"actual":      map[string]any{"type": "string"},
				},
				"required": []any{"timestamp", "description", "expected", "actual"},
			},
			Description: "precise pixel-visible behavior, frame by frame"},
		{Name: "hypotheses", Type: FieldArray, Required: true,
			Items: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"cause":           map[string]any{"type": "string"},
					"evidence":        map[string]any{"type": "string"},
					"debugging_steps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []any{"cause", "evidence", "debugging_steps"},
			},
			Description: "possible root causes based only on visual evidence"},
	}},
	ModeInspire: {Fields: []SchemaField{
		{Name: "summary", Type: FieldString, Required: true},
		{Name: "effects", Type: FieldArray, Required: true,
			Items: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"element":     map[string]any{"type": "string"},
					"trigger":     map[string]any{"type": "string"},
					"properties":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"from_state":  map[string]any{"type": "string"},
					"to_state":    map[string]any{"type": "string"},
					"duration_ms": map[string]any{"type": "integer"},
					"delay_ms":    map[string]any{"type": "integer"},
					"easing":      map[string]any{"type": "string"},
					"timestamp":   map[string]any{"type": "string"},
				},
				"required": []any{"element", "trigger", "properties", "from_state", "to_state", "easing", "timestamp"},
			}},
		{Name: "choreography", Type: FieldString, Default: "",
			Description: "how multiple elements coordinate in time"},
		{Name: "notable_details", Type: FieldArray, Default: []any{},
			Items: map[string]any{"type": "string"},
			Description: "micro-interactions, overshoot, settle, anticipation"},
	}},
}

// SchemaForMode returns the structured response schema declared for a mode.
// Every known mode has one; it is used whenever the effective shape is
// structured, regardless of the mode's default.
func SchemaForMode(mode Mode) (ResponseSchema, error) {
	s, ok := modeSchemas[mode]
	if !ok {
		return ResponseSchema{}, ErrUnknownMode
	}
	return s, nil
}
