package ontap

import "context"

// JobCompletedKey marks a resolved response: true when the embedded job was
// waited to completion, false when the caller chose to poll later.
const JobCompletedKey = "_jobCompleted"

// Resolve inspects a freshly-received response for an embedded asynchronous
// job reference. Synchronous responses pass through unchanged. When a job
// reference is present and wait is true, the job is polled to completion and
// the completed payload replaces the initial reference; on wait=false the
// caller keeps the non-terminal reference and is responsible for polling
// later. Resolve itself never fails; it only forwards poller errors.
func (c *Client) Resolve(ctx context.Context, target Target, resp *Response, wait bool, opts JobWaitOptions) (map[string]any, error) {
	if resp.Job == nil || resp.Job.UUID == "" {
		return resp.Raw, nil
	}

	out := make(map[string]any, len(resp.Raw)+1)
	for key, value := range resp.Raw {
		out[key] = value
	}

	if !wait {
		out[JobCompletedKey] = false

		return out, nil
	}

	job, err := c.AwaitJob(ctx, target, resp.Job.UUID, opts)
	if err != nil {
		return nil, err
	}

	out["job"] = job.Raw
	out[JobCompletedKey] = true

	return out, nil
}
