package ontap

import (
	"context"
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

// session bundles what plan builders need to talk to the cluster while
// planning: resource locators address objects by UUID or by human name, and
// the name form requires a lookup call.
type session struct {
	ctx    context.Context
	client *api.Client
	target api.Target
}

// resolveUUID looks up the UUID of the object named name in the collection
// at listPath. The extra query narrows the lookup (e.g. scoping a volume
// to an SVM).
func (s *session) resolveUUID(listPath, name string, extra map[string]string) (string, error) {
	query := map[string]string{"name": name, "fields": "uuid"}
	for key, value := range extra {
		query[key] = value
	}

	records, err := s.client.FetchAll(s.ctx, s.target, http.MethodGet, listPath, nil, query)
	if err != nil {
		return "", err
	}

	if len(records) == 0 {
		return "", fmt.Errorf("no object named '%s' found under %s", name, listPath)
	}

	uuid, _ := records[0]["uuid"].(string)
	if uuid == "" {
		return "", fmt.Errorf("lookup for '%s' under %s returned no uuid", name, listPath)
	}

	return uuid, nil
}

// locate returns the UUID for a resource addressed either directly by the
// "uuid" parameter or by "name" through a lookup.
func (s *session) locate(listPath string, p params, extra map[string]string) (string, error) {
	if uuid := p.str("uuid"); uuid != "" {
		return uuid, nil
	}

	name := p.str("name")
	if name == "" {
		return "", fmt.Errorf("either 'uuid' or 'name' is required to address an object under %s", listPath)
	}

	return s.resolveUUID(listPath, name, extra)
}
