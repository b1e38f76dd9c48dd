package meli

// Payload is a parsed JSON document from the Mercado Livre API. The items
// endpoint has a loose schema, so fields are accessed through optional
// getters that return zero values for missing or mistyped entries.
type Payload map[string]any

// String returns the string value under key, or "" if absent.
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Float returns the numeric value under key, or 0 if absent.
func (p Payload) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the numeric value under key truncated to int, or 0 if absent.
func (p Payload) Int(key string) int {
	return int(p.Float(key))
}

// Bool returns the boolean value under key, or false if absent.
func (p Payload) Bool(key string) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return false
}

// Object returns the nested object under key, or an empty Payload if absent.
func (p Payload) Object(key string) Payload {
	if v, ok := p[key].(map[string]any); ok {
		return Payload(v)
	}
	return Payload{}
}

// List returns the array under key as-is, or nil if absent.
func (p Payload) List(key string) []any {
	if v, ok := p[key].([]any); ok {
		return v
	}
	return nil
}

// Objects returns the array of objects under key, skipping non-object entries.
func (p Payload) Objects(key string) []Payload {
	raw := p.List(key)
	out := make([]Payload, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Payload(obj))
		}
	}
	return out
}

// Strings returns the array of strings under key, skipping non-string entries.
func (p Payload) Strings(key string) []string {
	raw := p.List(key)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
