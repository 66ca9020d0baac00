package ontap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/dukex/operion-ontap/pkg/ontap"
)

func TestSnapmirrorPlan_StateTransitions(t *testing.T) {
	testCases := []struct {
		op    string
		state string
	}{
		{op: "initialize", state: "snapmirrored"},
		{op: "resync", state: "snapmirrored"},
		{op: "break", state: "broken_off"},
	}

	for _, tc := range testCases {
		t.Run(tc.op, func(t *testing.T) {
			plan, err := snapmirrorPlan(nil, tc.op, params{"uuid": "rel-1"})
			require.NoError(t, err)

			assert.Equal(t, http.MethodPatch, plan.req.Method)
			assert.Equal(t, "/snapmirror/relationships/rel-1", plan.req.Path)
			assert.Equal(t, map[string]any{"state": tc.state}, plan.req.Body)
		})
	}
}

func TestSnapmirrorPlan_CreateRequiresPaths(t *testing.T) {
	_, err := snapmirrorPlan(nil, "create", params{"source_path": "svm1:vol1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required parameter 'destination_path'")
}

func TestLunPlan_Create(t *testing.T) {
	plan, err := lunPlan(nil, "create", params{
		"name":    "/vol/vol1/lun0",
		"svm":     "svm1",
		"os_type": "linux",
		"size":    "10GB",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, plan.req.Method)
	assert.Equal(t, "/storage/luns", plan.req.Path)
	assert.Equal(t, "linux", plan.req.Body["os_type"])
	assert.Equal(t, map[string]any{"size": int64(10737418240)}, plan.req.Body["space"])
}

func TestLunPlan_CreateMissingOSType(t *testing.T) {
	_, err := lunPlan(nil, "create", params{
		"name": "/vol/vol1/lun0", "svm": "svm1", "size": "10GB",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required parameter 'os_type'")
}

func TestVolumePlan_CreateInvalidSize(t *testing.T) {
	_, err := volumePlan(nil, "create", params{
		"name": "vol1", "svm": "svm1", "size": "lots",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid size")
}

func TestVolumePlan_ListScopesToSVM(t *testing.T) {
	plan, err := volumePlan(nil, "list", params{"svm": "svm1"})
	require.NoError(t, err)

	assert.True(t, plan.list)
	assert.Equal(t, map[string]string{"svm.name": "svm1"}, plan.req.Query)
}

func TestExportPolicyPlan_ResolvesNumericID(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/protocols/nfs/export-policies", r.URL.Path)
		assert.Equal(t, "default", r.URL.Query().Get("name"))
		fmt.Fprint(w, `{"records": [{"id": 12884901889, "name": "default"}]}`)
	}))
	defer server.Close()

	plan, err := exportPolicyPlan(testSession(t, server), "delete", params{"name": "default"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, plan.req.Method)
	assert.Equal(t, "/protocols/nfs/export-policies/12884901889", plan.req.Path)
}

func TestSnapshotPlan_ResolvesVolumeByName(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/storage/volumes", r.URL.Path)
		fmt.Fprint(w, `{"records": [{"uuid": "vol-u-1"}]}`)
	}))
	defer server.Close()

	plan, err := snapshotPlan(testSession(t, server), "create", params{
		"volume": "vol1",
		"name":   "nightly",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, plan.req.Method)
	assert.Equal(t, "/storage/volumes/vol-u-1/snapshots", plan.req.Path)
	assert.Equal(t, "nightly", plan.req.Body["name"])
}

func TestSecurityPlan_CreateAccount(t *testing.T) {
	plan, err := securityPlan(nil, "create", params{
		"name":     "backup-operator",
		"password": "s3cret",
		"role":     "readonly",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, plan.req.Method)
	assert.Equal(t, "/security/accounts", plan.req.Path)
	assert.Equal(t, "backup-operator", plan.req.Body["name"])

	applications, ok := plan.req.Body["applications"].([]any)
	require.True(t, ok)
	require.Len(t, applications, 1)
	assert.Equal(t, "http", applications[0].(map[string]any)["application"])
}

func TestAggregatePlan_ReadOnly(t *testing.T) {
	for _, op := range []string{"create", "delete", "update"} {
		_, err := aggregatePlan(nil, op, params{})
		require.Error(t, err, op)
		assert.Contains(t, err.Error(), "unknown aggregate operation")
	}
}

// testSession builds a planning session against an httptest TLS server.
func testSession(t *testing.T, server *httptest.Server) *session {
	t.Helper()

	connection := testConnection(t, server)

	return &session{
		ctx:    context.Background(),
		client: api.NewClient(),
		target: api.Target{
			Host:             connection["host"].(string),
			Port:             int(connection["port"].(float64)),
			Username:         "admin",
			Password:         "netapp123",
			AllowInsecureTLS: true,
		},
	}
}
