package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const accountsPath = "/security/accounts"

// securityPlan maps security operations onto /security/accounts calls.
// Accounts are keyed by owner SVM and name rather than a UUID, so get and
// delete take 'owner_uuid' (empty means a cluster-scoped account lookup by
// name through the collection).
func securityPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: accountsPath}}, nil

	case "get":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		if owner := p.str("owner_uuid"); owner != "" {
			return callPlan{req: api.Request{Method: http.MethodGet, Path: accountsPath + "/" + owner + "/" + name}}, nil
		}

		return callPlan{list: true, req: api.Request{
			Method: http.MethodGet,
			Path:   accountsPath,
			Query:  map[string]string{"name": name},
		}}, nil

	case "create":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		password, err := p.requireStr("password")
		if err != nil {
			return callPlan{}, err
		}

		role, err := p.requireStr("role")
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"name":     name,
			"password": password,
			"role":     map[string]any{"name": role},
			"applications": []any{
				map[string]any{
					"application":            "http",
					"authentication_methods": []any{"password"},
				},
			},
		}

		if owner := p.str("owner"); owner != "" {
			body["owner"] = map[string]any{"name": owner}
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: accountsPath, Body: p.mergeBody(body)}}, nil

	case "delete":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		owner, err := p.requireStr("owner_uuid")
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: accountsPath + "/" + owner + "/" + name}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown security operation: %s", op)
	}
}
