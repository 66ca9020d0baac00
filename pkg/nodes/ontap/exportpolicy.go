package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const exportPoliciesPath = "/protocols/nfs/export-policies"

// exportPolicyPlan maps export-policy operations onto
// /protocols/nfs/export-policies calls. Policies are addressed by a numeric
// id, not a uuid, so name lookups resolve through the 'id' field.
func exportPolicyPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: exportPoliciesPath}}, nil

	case "get":
		id, err := locateExportPolicy(s, p)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: exportPoliciesPath + "/" + id}}, nil

	case "create":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		svm, err := p.requireStr("svm")
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"name": name,
			"svm":  map[string]any{"name": svm},
		}

		if rules, ok := p["rules"].([]any); ok {
			body["rules"] = rules
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: exportPoliciesPath, Body: p.mergeBody(body)}}, nil

	case "delete":
		id, err := locateExportPolicy(s, p)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: exportPoliciesPath + "/" + id}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown export_policy operation: %s", op)
	}
}

func locateExportPolicy(s *session, p params) (string, error) {
	if id := p.str("id"); id != "" {
		return id, nil
	}

	name := p.str("name")
	if name == "" {
		return "", fmt.Errorf("either 'id' or 'name' is required to address an export policy")
	}

	records, err := s.client.FetchAll(s.ctx, s.target, http.MethodGet, exportPoliciesPath, nil,
		map[string]string{"name": name, "fields": "id"})
	if err != nil {
		return "", err
	}

	if len(records) == 0 {
		return "", fmt.Errorf("no export policy named '%s' found", name)
	}

	// Export policy ids come back as JSON numbers.
	if id, ok := records[0]["id"].(float64); ok {
		return fmt.Sprintf("%.0f", id), nil
	}

	if id, ok := records[0]["id"].(string); ok && id != "" {
		return id, nil
	}

	return "", fmt.Errorf("lookup for export policy '%s' returned no id", name)
}
