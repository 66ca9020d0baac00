package models

// ExecutionContext carries the per-item state the host runtime hands to a
// node: results of upstream nodes, workflow variables and trigger payload.
// Connection details for external systems travel in Variables; nodes resolve
// them per execution and hold no state between items.
type ExecutionContext struct {
	ID                  string                `json:"id"`
	PublishedWorkflowID string                `json:"published_workflow_id"`
	NodeResults         map[string]NodeResult `json:"node_results,omitempty"`
	TriggerData         map[string]any        `json:"trigger_data,omitempty"`
	Variables           map[string]any        `json:"variables,omitempty"`
	Metadata            map[string]any        `json:"metadata,omitempty"`
}
