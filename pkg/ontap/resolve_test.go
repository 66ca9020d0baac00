package ontap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_SynchronousPassthrough(t *testing.T) {
	client := NewClient()

	resp := &Response{Raw: map[string]any{"uuid": "x", "name": "vol1"}}

	out, err := client.Resolve(context.Background(), Target{}, resp, true, JobWaitOptions{})
	require.NoError(t, err)

	// No job reference: the response passes through unchanged, no marker.
	assert.Equal(t, resp.Raw, out)
	assert.NotContains(t, out, JobCompletedKey)
}

func TestResolve_WaitsForJob(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cluster/jobs/j-1", r.URL.Path)
		fmt.Fprint(w, `{"uuid": "j-1", "state": "success", "end_time": "2024-01-01T00:00:05Z"}`)
	}))
	defer server.Close()

	client := NewClient()

	resp := &Response{
		Raw: map[string]any{
			"job": map[string]any{"uuid": "j-1", "state": "running"},
		},
		Job: &JobRef{UUID: "j-1", State: "running"},
	}

	out, err := client.Resolve(context.Background(), testTarget(t, server), resp, true,
		JobWaitOptions{Timeout: time.Second, PollInterval: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, true, out[JobCompletedKey])

	job, ok := out["job"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", job["state"])
	assert.Equal(t, "j-1", job["uuid"])

	// The original response is not mutated.
	assert.NotContains(t, resp.Raw, JobCompletedKey)
	assert.Equal(t, "running", resp.Raw["job"].(map[string]any)["state"])
}

func TestResolve_NoWaitKeepsJobReference(t *testing.T) {
	client := NewClient()

	resp := &Response{
		Raw: map[string]any{
			"job": map[string]any{"uuid": "j-2", "state": "queued"},
		},
		Job: &JobRef{UUID: "j-2", State: "queued"},
	}

	out, err := client.Resolve(context.Background(), Target{}, resp, false, JobWaitOptions{})
	require.NoError(t, err)

	assert.Equal(t, false, out[JobCompletedKey])
	assert.Equal(t, "queued", out["job"].(map[string]any)["state"])
}

func TestResolve_JobFailurePropagates(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"uuid": "j-3", "state": "failure", "message": "aggregate offline"}`)
	}))
	defer server.Close()

	client := NewClient()

	resp := &Response{
		Raw: map[string]any{"job": map[string]any{"uuid": "j-3"}},
		Job: &JobRef{UUID: "j-3"},
	}

	_, err := client.Resolve(context.Background(), testTarget(t, server), resp, true,
		JobWaitOptions{Timeout: time.Second, PollInterval: time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregate offline")
}
