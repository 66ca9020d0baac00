// Package template renders node configuration strings against the execution
// context, so node fields can reference upstream results and variables.
package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dukex/operion-ontap/pkg/models"
)

// RenderWithContext renders input against the standard template namespace:
// .node_results, .variables (and .vars), .trigger_data, .metadata, .execution.
func RenderWithContext(input string, executionCtx *models.ExecutionContext) (string, error) {
	data := map[string]any{
		"node_results": executionCtx.NodeResults,
		"variables":    executionCtx.Variables,
		"vars":         executionCtx.Variables,
		"trigger_data": executionCtx.TriggerData,
		"metadata":     executionCtx.Metadata,
		"execution": map[string]any{
			"id":          executionCtx.ID,
			"workflow_id": executionCtx.PublishedWorkflowID,
		},
	}

	return Render(input, data)
}

// Render executes input as a text/template over data. Inputs without template
// actions come back unchanged.
func Render(input string, data any) (string, error) {
	if !strings.Contains(input, "{{") {
		return input, nil
	}

	tmpl, err := template.
		New("config").
		Funcs(template.FuncMap{
			"now": func() string {
				return time.Now().UTC().Format(time.RFC3339)
			},
		}).Parse(input)
	if err != nil {
		return "", fmt.Errorf("failed to parse template '%s': %w", input, err)
	}

	var buf strings.Builder

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", input, err)
	}

	return strings.TrimSpace(buf.String()), nil
}
