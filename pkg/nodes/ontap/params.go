package ontap

import (
	"fmt"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

// params is the rendered per-resource parameter bag from the node config.
type params map[string]any

func (p params) str(key string) string {
	value, _ := p[key].(string)

	return value
}

func (p params) requireStr(key string) (string, error) {
	value := p.str(key)
	if value == "" {
		return "", fmt.Errorf("missing required parameter '%s'", key)
	}

	return value, nil
}

func (p params) boolOr(key string, fallback bool) bool {
	if value, ok := p[key].(bool); ok {
		return value
	}

	return fallback
}

// sizeBytes reads a size parameter that may be a raw byte count or a
// human-readable string like "100GB".
func (p params) sizeBytes(key string) (int64, bool, error) {
	switch value := p[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return int64(value), true, nil
	case int64:
		return value, true, nil
	case int:
		return int64(value), true, nil
	case string:
		if value == "" {
			return 0, false, nil
		}

		bytes, err := api.ParseSize(value)
		if err != nil {
			return 0, false, err
		}

		return bytes, true, nil
	default:
		return 0, false, fmt.Errorf("parameter '%s' must be a number or size string", key)
	}
}

// extraBody returns the free-form body mapping callers can use for vendor
// fields this node does not model explicitly.
func (p params) extraBody() map[string]any {
	body, _ := p["body"].(map[string]any)

	return body
}

// mergeBody folds the free-form body into the declaratively built one and
// scrubs empty fields before issue.
func (p params) mergeBody(body map[string]any) map[string]any {
	for key, value := range p.extraBody() {
		body[key] = value
	}

	return api.CleanObject(body)
}
