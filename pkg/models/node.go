// Package models defines the node execution contracts shared between the
// plugin and the host runtime.
package models

import "time"

// Node is the contract every workflow node in this plugin implements. The
// host runtime drives nodes exclusively through this interface.
type Node interface {
	// ID returns the node instance ID within a workflow
	ID() string

	// Type returns the node type identifier (e.g. "ontap")
	Type() string

	// Execute runs the node and returns results keyed by output port name
	Execute(ctx ExecutionContext, inputs map[string]NodeResult) (map[string]NodeResult, error)

	// GetInputPorts returns the input ports exposed by the node
	GetInputPorts() []InputPort

	// GetOutputPorts returns the output ports exposed by the node
	GetOutputPorts() []OutputPort

	// Validate checks a raw configuration without instantiating the node
	Validate(config map[string]any) error
}

// NodeResult represents the result of a node execution on one port.
type NodeResult struct {
	NodeID    string         `json:"node_id"`
	Data      map[string]any `json:"data"`
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Error     string         `json:"error,omitempty"`
}

// NodeStatus defines the possible states of a node execution.
type NodeStatus string

const (
	NodeStatusPending NodeStatus = "pending"
	NodeStatusRunning NodeStatus = "running"
	NodeStatusSuccess NodeStatus = "success"
	NodeStatusError   NodeStatus = "error"
)
