package ontap

import "strings"

// ParseFilters decomposes a compact filter string of comma-separated
// "field=value" clauses into query parameters. Each clause is split on its
// first "=", both sides are trimmed, and clauses without an "=" are dropped.
// Operator characters inside the value (!, <, >, *, |) are ONTAP query
// syntax and pass through verbatim; this function only tokenizes.
func ParseFilters(text string) map[string]string {
	filters := make(map[string]string)

	for _, clause := range strings.Split(text, ",") {
		field, value, ok := strings.Cut(clause, "=")
		if !ok {
			continue
		}

		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		filters[field] = strings.TrimSpace(value)
	}

	return filters
}

// CleanObject returns a copy of in with nil values, empty strings and nested
// mappings that become empty after cleaning removed. ONTAP rejects some
// requests carrying explicit empty fields, so bodies are scrubbed before
// issue. Arrays are preserved verbatim - never recursed into, never filtered.
func CleanObject(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))

	for key, value := range in {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}

			out[key] = v
		case map[string]any:
			cleaned := CleanObject(v)
			if len(cleaned) > 0 {
				out[key] = cleaned
			}
		default:
			out[key] = value
		}
	}

	return out
}
