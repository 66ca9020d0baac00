package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

const interfacesPath = "/network/ip/interfaces"

// networkPlan maps network operations onto /network/ip/interfaces calls.
// Interfaces are read-only here; creation belongs to cluster setup, not
// workflow automation.
func networkPlan(s *session, op string, p params) (callPlan, error) {
	switch op {
	case "list":
		query := map[string]string{}
		if svm := p.str("svm"); svm != "" {
			query["svm.name"] = svm
		}

		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: interfacesPath, Query: query}}, nil

	case "get":
		uuid, err := s.locate(interfacesPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: interfacesPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown network operation: %s", op)
	}
}
