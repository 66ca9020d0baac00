package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const volumesPath = "/storage/volumes"

// volumePlan maps volume operations onto /storage/volumes calls.
func volumePlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		query := map[string]string{}
		if svm := p.str("svm"); svm != "" {
			query["svm.name"] = svm
		}

		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: volumesPath, Query: query}}, nil

	case "get":
		uuid, err := s.locate(volumesPath, p, volumeScope(p))
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: volumesPath + "/" + uuid}}, nil

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
			"name":    name,
			"svm":     map[string]any{"name": svm},
			"comment": p.str("comment"),
		}

		if aggregate := p.str("aggregate"); aggregate != "" {
			body["aggregates"] = []any{map[string]any{"name": aggregate}}
		}

		if size, ok, err := p.sizeBytes("size"); err != nil {
			return callPlan{}, err
		} else if ok {
			body["size"] = size
		}

		if path := p.str("junction_path"); path != "" {
			body["nas"] = map[string]any{
				"path":          path,
				"export_policy": map[string]any{"name": p.str("export_policy")},
			}
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: volumesPath, Body: p.mergeBody(body)}}, nil

	case "update", "offline", "online":
		uuid, err := s.locate(volumesPath, p, volumeScope(p))
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"comment": p.str("comment"),
			"state":   p.str("state"),
		}

		switch op {
		case "offline":
			body["state"] = "offline"
		case "online":
			body["state"] = "online"
		}

		return callPlan{req: api.Request{Method: http.MethodPatch, Path: volumesPath + "/" + uuid, Body: p.mergeBody(body)}}, nil

	case "resize":
		uuid, err := s.locate(volumesPath, p, volumeScope(p))
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

		return callPlan{req: api.Request{
			Method: http.MethodPatch,
			Path:   volumesPath + "/" + uuid,
			Body:   map[string]any{"size": size},
		}}, nil

	case "delete":
		uuid, err := s.locate(volumesPath, p, volumeScope(p))
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: volumesPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown volume operation: %s", op)
	}
}

// volumeScope narrows name lookups to the configured SVM, since volume names
// are only unique per SVM.
func volumeScope(p params) map[string]string {
	if svm := p.str("svm"); svm != "" {
		return map[string]string{"svm.name": svm}
	}

	return nil
}
