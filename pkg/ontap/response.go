package ontap

import "encoding/json"

// Response is the envelope around an ONTAP reply. ONTAP payload shapes vary
// per resource, so the full payload stays available in Raw while the fields
// this layer actually interprets (records, pagination link, job reference)
// are lifted into a typed overlay.
type Response struct {
	Raw        map[string]any
	Records    []map[string]any
	NumRecords int
	NextHref   string
	Job        *JobRef
}

// JobRef is the asynchronous-job reference a mutating call may embed.
type JobRef struct {
	UUID    string `json:"uuid"`
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// UnmarshalJSON decodes the raw payload and lifts the known optional fields.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Raw = raw

	if records, ok := raw["records"].([]any); ok {
		r.Records = make([]map[string]any, 0, len(records))

		for _, rec := range records {
			if m, ok := rec.(map[string]any); ok {
				r.Records = append(r.Records, m)
			}
		}
	}

	if n, ok := raw["num_records"].(float64); ok {
		r.NumRecords = int(n)
	}

	r.NextHref = nextHref(raw)
	r.Job = jobRef(raw)

	return nil
}

// nextHref extracts _links.next.href, or "" when the response is the last page.
func nextHref(raw map[string]any) string {
	links, ok := raw["_links"].(map[string]any)
	if !ok {
		return ""
	}

	next, ok := links["next"].(map[string]any)
	if !ok {
		return ""
	}

	href, _ := next["href"].(string)

	return href
}

// jobRef extracts the job reference of an asynchronous mutating call, or nil.
func jobRef(raw map[string]any) *JobRef {
	job, ok := raw["job"].(map[string]any)
	if !ok {
		return nil
	}

	ref := &JobRef{}
	ref.UUID, _ = job["uuid"].(string)
	ref.State, _ = job["state"].(string)
	ref.Message, _ = job["message"].(string)

	if ref.UUID == "" {
		return nil
	}

	return ref
}
