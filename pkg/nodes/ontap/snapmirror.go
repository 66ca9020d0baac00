package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const snapmirrorPath = "/snapmirror/relationships"

// snapmirrorPlan maps SnapMirror operations onto /snapmirror/relationships
// calls. Relationships are addressed by their UUID; initialize and break are
// state transitions on the destination side.
func snapmirrorPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: snapmirrorPath}}, nil

	case "get":
		uuid, err := p.requireStr("uuid")
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: snapmirrorPath + "/" + uuid}}, nil

	case "create":
		source, err := p.requireStr("source_path")
		if err != nil {
			return callPlan{}, err
		}

		destination, err := p.requireStr("destination_path")
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"source":      map[string]any{"path": source},
			"destination": map[string]any{"path": destination},
		}

		if policy := p.str("policy"); policy != "" {
			body["policy"] = map[string]any{"name": policy}
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: snapmirrorPath, Body: p.mergeBody(body)}}, nil

	case "initialize", "break", "resync":
		uuid, err := p.requireStr("uuid")
		if err != nil {
			return callPlan{}, err
		}

		state := map[string]string{
			"initialize": "snapmirrored",
			"resync":     "snapmirrored",
			"break":      "broken_off",
		}[op]

		return callPlan{req: api.Request{
			Method: http.MethodPatch,
			Path:   snapmirrorPath + "/" + uuid,
			Body:   map[string]any{"state": state},
		}}, nil

	case "delete":
		uuid, err := p.requireStr("uuid")
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: snapmirrorPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown snapmirror operation: %s", op)
	}
}
