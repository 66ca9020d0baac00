// Package ontap provides the ONTAP node factory for the registry system.
package ontap

import (
	"context"

	"github.com/dukex/operion-ontap/pkg/models"
	"github.com/dukex/operion-ontap/pkg/protocol"
)

// ONTAPNodeFactory creates ONTAPNode instances.
type ONTAPNodeFactory struct{}

// NewONTAPNodeFactory creates a new ONTAP node factory.
func NewONTAPNodeFactory() protocol.NodeFactory {
	return &ONTAPNodeFactory{}
}

// Create creates a new ONTAPNode instance.
func (f *ONTAPNodeFactory) Create(ctx context.Context, id string, config map[string]any) (models.Node, error) {
	return NewONTAPNode(id, config)
}

// ID returns the factory ID.
func (f *ONTAPNodeFactory) ID() string {
	return "ontap"
}

// Name returns the factory name.
func (f *ONTAPNodeFactory) Name() string {
	return "NetApp ONTAP"
}

// Description returns the factory description.
func (f *ONTAPNodeFactory) Description() string {
	return "Manages NetApp ONTAP storage resources (volumes, SVMs, LUNs, snapshots, SnapMirror and more) over the ONTAP REST API"
}

// Schema returns the JSON schema for ONTAP node configuration.
func (f *ONTAPNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource": map[string]any{
				"type":        "string",
				"description": "ONTAP resource to operate on",
				"enum": []string{
					"volume", "svm", "lun", "aggregate", "snapshot",
					"snapmirror", "security", "network", "export_policy",
				},
			},
			"operation": map[string]any{
				"type":        "string",
				"description": "Operation to perform. The valid set depends on the resource, e.g. volume supports list, get, create, update, resize, offline, online, delete",
				"examples":    []string{"list", "get", "create", "update", "delete"},
			},
			"connection": map[string]any{
				"type":        "object",
				"description": "Cluster management endpoint and credentials. String values support templating",
				"properties": map[string]any{
					"host": map[string]any{
						"type":        "string",
						"description": "Cluster management LIF hostname or IP",
						"examples":    []string{"cluster1.example.com", "{{.variables.ontap_host}}"},
					},
					"port": map[string]any{
						"type":        "number",
						"description": "HTTPS port of the management endpoint",
						"default":     443,
					},
					"username": map[string]any{
						"type":     "string",
						"examples": []string{"admin", "{{.variables.ontap_user}}"},
					},
					"password": map[string]any{
						"type":     "string",
						"examples": []string{"{{.variables.ontap_password}}"},
					},
					"allow_insecure_tls": map[string]any{
						"type":        "boolean",
						"description": "Skip certificate validation (self-signed cluster certificates)",
						"default":     false,
					},
				},
				"required": []string{"host", "username", "password"},
			},
			"parameters": map[string]any{
				"type":        "object",
				"description": "Resource-specific parameters. Sizes accept human-readable values like '100GB'; objects are addressed by 'uuid' or by 'name'. The 'body' key passes extra vendor fields through verbatim",
				"examples": []map[string]any{
					{"name": "vol1", "svm": "svm1", "size": "100GB", "aggregate": "aggr1"},
					{"uuid": "028baa66-41bd-11e9-81d5-00a0986138f7"},
				},
			},
			"filters": map[string]any{
				"type":        "string",
				"description": "Comma-separated field=value clauses added to list queries. ONTAP query operators (!, <, >, *, |) in the value pass through verbatim",
				"examples":    []string{"state=online,svm.name=svm1", "name=vol*,size=>100GB"},
			},
			"wait_for_completion": map[string]any{
				"type":        "boolean",
				"description": "Wait for asynchronous jobs spawned by mutating calls to finish before continuing",
				"default":     true,
			},
			"job_timeout": map[string]any{
				"type":        "number",
				"description": "Seconds to wait for an asynchronous job before giving up",
				"default":     300,
			},
		},
		"required": []string{"resource", "operation", "connection"},
		"examples": []map[string]any{
			{
				"resource":  "volume",
				"operation": "create",
				"connection": map[string]any{
					"host":               "{{.variables.ontap_host}}",
					"username":           "{{.variables.ontap_user}}",
					"password":           "{{.variables.ontap_password}}",
					"allow_insecure_tls": true,
				},
				"parameters": map[string]any{
					"name":      "app_data",
					"svm":       "svm1",
					"size":      "500GB",
					"aggregate": "aggr1",
				},
			},
			{
				"resource":  "volume",
				"operation": "list",
				"connection": map[string]any{
					"host":     "cluster1.example.com",
					"username": "admin",
					"password": "{{.variables.ontap_password}}",
				},
				"filters": "state=online,name=app*",
			},
		},
	}
}
