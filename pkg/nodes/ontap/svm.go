package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const svmsPath = "/svm/svms"

// svmPlan maps SVM operations onto /svm/svms calls.
func svmPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: svmsPath}}, nil

	case "get":
		uuid, err := s.locate(svmsPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: svmsPath + "/" + uuid}}, nil

	case "create":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"name":     name,
			"comment":  p.str("comment"),
			"language": p.str("language"),
		}

		if aggregate := p.str("aggregate"); aggregate != "" {
			body["aggregates"] = []any{map[string]any{"name": aggregate}}
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: svmsPath, Body: p.mergeBody(body)}}, nil

	case "update":
		uuid, err := s.locate(svmsPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"comment": p.str("comment"),
			"state":   p.str("state"),
		}

		return callPlan{req: api.Request{Method: http.MethodPatch, Path: svmsPath + "/" + uuid, Body: p.mergeBody(body)}}, nil

	case "delete":
		uuid, err := s.locate(svmsPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: svmsPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown svm operation: %s", op)
	}
}
