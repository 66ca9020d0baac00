package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const aggregatesPath = "/storage/aggregates"

// aggregatePlan maps aggregate operations onto /storage/aggregates calls.
// Aggregates are read-only from a workflow's point of view.
func aggregatePlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: aggregatesPath}}, nil

	case "get":
		uuid, err := s.locate(aggregatesPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: aggregatesPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown aggregate operation: %s", op)
	}
}
