package ontap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dukex/operion-ontap/pkg/otelhelper"
)

// Job states ONTAP reports for asynchronous operations. Anything outside
// this vocabulary is treated as a protocol violation, not silently polled.
const (
	JobStateQueued  = "queued"
	JobStateRunning = "running"
	JobStatePaused  = "paused"
	JobStateSuccess = "success"
	JobStateFailure = "failure"
)

const (
	// DefaultJobTimeout is how long AwaitJob waits for a terminal state.
	DefaultJobTimeout = 5 * time.Minute

	// DefaultPollInterval is the pause between job status fetches.
	DefaultPollInterval = 2 * time.Second
)

const jobFailedFallback = "Job failed without error message"

// Job is the server-side handle of an asynchronous operation. The core only
// observes jobs; it never creates or cancels them.
type Job struct {
	UUID        string `json:"uuid"`
	State       string `json:"state"`
	Message     string `json:"message,omitempty"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`

	// Raw keeps the full payload for callers that need vendor fields.
	Raw map[string]any `json:"-"`
}

// JobWaitOptions tunes AwaitJob. Zero values mean the defaults.
type JobWaitOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// AwaitJob polls GET /cluster/jobs/{uuid} until the job reaches a terminal
// state or the timeout elapses. The timeout is checked at loop top against
// wall-clock time captured at entry, so a timeout that lands mid-sleep is
// caught on the next iteration and actual wall time may exceed the timeout
// by up to one poll interval.
func (c *Client) AwaitJob(ctx context.Context, target Target, jobUUID string, opts JobWaitOptions) (*Job, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultJobTimeout
	}

	interval := opts.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}

	ctx, span := otelhelper.StartSpan(ctx, tracer, "ontap.job.await",
		attribute.String(otelhelper.JobUUIDKey, jobUUID))
	defer span.End()

	start := time.Now()

	for {
		if time.Since(start) > timeout {
			err := &APIError{Message: fmt.Sprintf("Job %s did not reach a terminal state within %s", jobUUID, timeout)}
			otelhelper.SetError(span, err)

			return nil, err
		}

		resp, err := c.Do(ctx, target, Request{Method: "GET", Path: "/cluster/jobs/" + jobUUID})
		if err != nil {
			return nil, err
		}

		job, err := jobFromResponse(resp)
		if err != nil {
			return nil, err
		}

		switch job.State {
		case JobStateQueued, JobStateRunning, JobStatePaused:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		case JobStateSuccess:
			return job, nil
		case JobStateFailure:
			message := job.Message
			if message == "" {
				message = jobFailedFallback
			}

			err := &APIError{Message: message}
			otelhelper.SetError(span, err)

			return nil, err
		default:
			return nil, &APIError{Message: "Unknown job state: " + job.State}
		}
	}
}

// jobFromResponse decodes a job status payload into the typed Job while
// preserving the raw mapping.
func jobFromResponse(resp *Response) (*Job, error) {
	encoded, err := json.Marshal(resp.Raw)
	if err != nil {
		return nil, newAPIError(fault{err: err})
	}

	job := &Job{}
	if err := json.Unmarshal(encoded, job); err != nil {
		return nil, newAPIError(fault{err: err})
	}

	job.Raw = resp.Raw

	return job, nil
}
