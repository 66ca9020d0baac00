package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const lunsPath = "/storage/luns"

// lunPlan maps LUN operations onto /storage/luns calls. LUN names are full
// paths like /vol/vol1/lun1.
func lunPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		query := map[string]string{}
		if svm := p.str("svm"); svm != "" {
			query["svm.name"] = svm
		}

		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: lunsPath, Query: query}}, nil

	case "get":
		uuid, err := s.locate(lunsPath, p, lunScope(p))
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: lunsPath + "/" + uuid}}, nil

	case "create":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		svm, err := p.requireStr("svm")
		if err != nil {
			return callPlan{}, err
		}

		osType, err := p.requireStr("os_type")
		if err != nil {
			return callPlan{}, err
		}

		size, ok, err := p.sizeBytes("size")
		if err != nil {
			return callPlan{}, err
		}

		if !ok {
			return callPlan{}, fmt.Errorf("missing required parameter 'size'")
		}

		body := map[string]any{
			"name":    name,
			"svm":     map[string]any{"name": svm},
			"os_type": osType,
			"space":   map[string]any{"size": size},
			"comment": p.str("comment"),
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: lunsPath, Body: p.mergeBody(body)}}, nil

	case "update":
		uuid, err := s.locate(lunsPath, p, lunScope(p))
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{"comment": p.str("comment")}

		if size, ok, err := p.sizeBytes("size"); err != nil {
			return callPlan{}, err
		} else if ok {
			body["space"] = map[string]any{"size": size}
		}

		return callPlan{req: api.Request{Method: http.MethodPatch, Path: lunsPath + "/" + uuid, Body: p.mergeBody(body)}}, nil

	case "delete":
		uuid, err := s.locate(lunsPath, p, lunScope(p))
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: lunsPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown lun operation: %s", op)
	}
}

func lunScope(p params) map[string]string {
	if svm := p.str("svm"); svm != "" {
		return map[string]string{"svm.name": svm}
	}

	return nil
}
