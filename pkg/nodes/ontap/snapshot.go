package ontap

import (
	"fmt"
	"net/http"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

// snapshotPlan maps snapshot operations onto the per-volume
// /storage/volumes/{uuid}/snapshots collection. The owning volume is
// addressed by 'volume_uuid' or by 'volume' name.
func snapshotPlan(s *session, op string, p params) (callPlan, error) {
	volumeUUID := p.str("volume_uuid")
	if volumeUUID == "" {
		volume, err := p.requireStr("volume")
		if err != nil {
			return callPlan{}, fmt.Errorf("either 'volume_uuid' or 'volume' is required: %w", err)
		}

		resolved, err := s.resolveUUID(volumesPath, volume, volumeScope(p))
		if err != nil {
			return callPlan{}, err
		}

		volumeUUID = resolved
	}

	snapshotsPath := volumesPath + "/" + volumeUUID + "/snapshots"

	switch op {
	case "list":
		return callPlan{list: true, req: api.Request{Method: http.MethodGet, Path: snapshotsPath}}, nil

	case "get":
		uuid, err := s.locate(snapshotsPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodGet, Path: snapshotsPath + "/" + uuid}}, nil

	case "create":
		name, err := p.requireStr("name")
		if err != nil {
			return callPlan{}, err
		}

		body := map[string]any{
			"name":        name,
			"comment":     p.str("comment"),
			"expiry_time": p.str("expiry_time"),
		}

		return callPlan{req: api.Request{Method: http.MethodPost, Path: snapshotsPath, Body: p.mergeBody(body)}}, nil

	case "delete":
		uuid, err := s.locate(snapshotsPath, p, nil)
		if err != nil {
			return callPlan{}, err
		}

		return callPlan{req: api.Request{Method: http.MethodDelete, Path: snapshotsPath + "/" + uuid}}, nil

	default:
		return callPlan{}, fmt.Errorf("unknown snapshot operation: %s", op)
	}
}
