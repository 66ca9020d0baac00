// Package ontap provides the ONTAP node for workflow graph execution. The
// node is a declarative (resource, operation) dispatcher: it maps its
// configuration onto one or more ONTAP REST calls through the shared client
// layer and returns the normalized payload on its output ports.
package ontap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dukex/operion-ontap/pkg/models"
	api "github.com/dukex/operion-ontap/pkg/ontap"
	"github.com/dukex/operion-ontap/pkg/otelhelper"
	"github.com/dukex/operion-ontap/pkg/template"
)

var tracer = otel.Tracer("operion-ontap/nodes/ontap")

const (
	OutputPortSuccess = "success"
	OutputPortError   = "error"
	InputPortMain     = "main"
)

// planFunc maps an operation plus its parameters onto a call plan. Builders
// may issue lookup calls through the session to resolve names to UUIDs.
type planFunc func(s *session, op string, p params) (callPlan, error)

// callPlan is one planned REST call: the request itself and whether it is a
// collection read that must walk pagination links.
type callPlan struct {
	req  api.Request
	list bool
}

// resourcePlans wires every supported resource to its dispatch function.
var resourcePlans = map[string]planFunc{
	"volume":        volumePlan,
	"svm":           svmPlan,
	"lun":           lunPlan,
	"aggregate":     aggregatePlan,
	"snapshot":      snapshotPlan,
	"snapmirror":    snapmirrorPlan,
	"security":      securityPlan,
	"network":       networkPlan,
	"export_policy": exportPolicyPlan,
}

// ONTAPNode implements the Node interface for ONTAP storage operations.
type ONTAPNode struct {
	id     string
	config nodeConfig
	client *api.Client
}

type nodeConfig struct {
	Resource          string
	Operation         string
	Connection        connectionConfig
	Parameters        map[string]any
	Filters           string
	WaitForCompletion bool
	JobTimeout        time.Duration
}

// connectionConfig holds the target fields before template rendering; every
// string may reference execution-context variables.
type connectionConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	AllowInsecureTLS bool
}

// NewONTAPNode creates a new ONTAP node from its raw configuration.
func NewONTAPNode(id string, config map[string]any) (*ONTAPNode, error) {
	parsed, err := parseConfig(config)
	if err != nil {
		return nil, err
	}

	return &ONTAPNode{
		id:     id,
		config: parsed,
		client: api.NewClient(),
	}, nil
}

func parseConfig(config map[string]any) (nodeConfig, error) {
	parsed := nodeConfig{
		WaitForCompletion: true,
		Parameters:        map[string]any{},
	}

	resource, ok := config["resource"].(string)
	if !ok || resource == "" {
		return parsed, errors.New("missing required field 'resource'")
	}

	if _, ok := resourcePlans[resource]; !ok {
		return parsed, fmt.Errorf("unknown resource: %s", resource)
	}

	parsed.Resource = resource

	operation, ok := config["operation"].(string)
	if !ok || operation == "" {
		return parsed, errors.New("missing required field 'operation'")
	}

	parsed.Operation = operation

	connection, ok := config["connection"].(map[string]any)
	if !ok {
		return parsed, errors.New("missing required field 'connection'")
	}

	parsed.Connection.Host, _ = connection["host"].(string)
	if parsed.Connection.Host == "" {
		return parsed, errors.New("missing required field 'connection.host'")
	}

	parsed.Connection.Username, _ = connection["username"].(string)
	parsed.Connection.Password, _ = connection["password"].(string)

	if port, ok := connection["port"].(float64); ok {
		parsed.Connection.Port = int(port)
	}

	if insecure, ok := connection["allow_insecure_tls"].(bool); ok {
		parsed.Connection.AllowInsecureTLS = insecure
	}

	if parameters, ok := config["parameters"].(map[string]any); ok {
		parsed.Parameters = parameters
	}

	if filters, ok := config["filters"].(string); ok {
		parsed.Filters = filters
	}

	if wait, ok := config["wait_for_completion"].(bool); ok {
		parsed.WaitForCompletion = wait
	}

	if timeout, ok := config["job_timeout"].(float64); ok {
		parsed.JobTimeout = time.Duration(timeout) * time.Second
	}

	return parsed, nil
}

// ID returns the node ID.
func (n *ONTAPNode) ID() string {
	return n.id
}

// Type returns the node type.
func (n *ONTAPNode) Type() string {
	return "ontap"
}

// Execute resolves the connection target from the execution context, plans
// the REST call for the configured (resource, operation) pair and issues it.
// List operations walk all pages; mutating operations wait for any embedded
// asynchronous job unless wait_for_completion is off.
func (n *ONTAPNode) Execute(ctx models.ExecutionContext, inputs map[string]models.NodeResult) (map[string]models.NodeResult, error) {
	spanCtx, span := otelhelper.StartSpan(context.Background(), tracer, "node.execute",
		attribute.String(otelhelper.NodeIDKey, n.id),
		attribute.String(otelhelper.NodeTypeKey, n.Type()),
		attribute.String(otelhelper.ExecutionIDKey, ctx.ID),
		attribute.String(otelhelper.ResourceKey, n.config.Resource),
		attribute.String(otelhelper.OperationKey, n.config.Operation),
	)
	defer span.End()

	target, err := n.renderTarget(&ctx)
	if err != nil {
		otelhelper.SetError(span, err)

		return n.createErrorResult(err.Error()), nil
	}

	parameters, err := n.renderParameters(&ctx)
	if err != nil {
		otelhelper.SetError(span, err)

		return n.createErrorResult(err.Error()), nil
	}

	s := &session{
		ctx:    spanCtx,
		client: n.client,
		target: target,
	}

	plan, err := resourcePlans[n.config.Resource](s, n.config.Operation, parameters)
	if err != nil {
		otelhelper.SetError(span, err)

		return n.createErrorResult(err.Error()), nil
	}

	data, err := n.issue(s, plan)
	if err != nil {
		otelhelper.SetError(span, err)

		return n.createErrorResult(err.Error()), nil
	}

	return map[string]models.NodeResult{
		OutputPortSuccess: {
			NodeID:    n.id,
			Data:      data,
			Status:    string(models.NodeStatusSuccess),
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

func (n *ONTAPNode) issue(s *session, plan callPlan) (map[string]any, error) {
	if plan.list {
		query := plan.req.Query
		if n.config.Filters != "" {
			if query == nil {
				query = map[string]string{}
			}

			for field, value := range api.ParseFilters(n.config.Filters) {
				query[field] = value
			}
		}

		records, err := s.client.FetchAll(s.ctx, s.target, plan.req.Method, plan.req.Path, plan.req.Body, query)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"records":     records,
			"num_records": len(records),
		}, nil
	}

	resp, err := s.client.Do(s.ctx, s.target, plan.req)
	if err != nil {
		return nil, err
	}

	return s.client.Resolve(s.ctx, s.target, resp, n.config.WaitForCompletion,
		api.JobWaitOptions{Timeout: n.config.JobTimeout})
}

// renderTarget turns the connection config into a Target, rendering template
// references against the execution context. The target is request-scoped:
// every execution re-resolves it.
func (n *ONTAPNode) renderTarget(ctx *models.ExecutionContext) (api.Target, error) {
	host, err := template.RenderWithContext(n.config.Connection.Host, ctx)
	if err != nil {
		return api.Target{}, fmt.Errorf("failed to render connection host: %w", err)
	}

	username, err := template.RenderWithContext(n.config.Connection.Username, ctx)
	if err != nil {
		return api.Target{}, fmt.Errorf("failed to render connection username: %w", err)
	}

	password, err := template.RenderWithContext(n.config.Connection.Password, ctx)
	if err != nil {
		return api.Target{}, fmt.Errorf("failed to render connection password: %w", err)
	}

	return api.Target{
		Host:             host,
		Port:             n.config.Connection.Port,
		Username:         username,
		Password:         password,
		AllowInsecureTLS: n.config.Connection.AllowInsecureTLS,
	}, nil
}

// renderParameters renders every string parameter against the execution
// context, leaving other value types untouched.
func (n *ONTAPNode) renderParameters(ctx *models.ExecutionContext) (params, error) {
	rendered := make(params, len(n.config.Parameters))

	for key, value := range n.config.Parameters {
		text, ok := value.(string)
		if !ok {
			rendered[key] = value

			continue
		}

		out, err := template.RenderWithContext(text, ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to render parameter '%s': %w", key, err)
		}

		rendered[key] = out
	}

	return rendered, nil
}

func (n *ONTAPNode) createErrorResult(errorMessage string) map[string]models.NodeResult {
	return map[string]models.NodeResult{
		OutputPortError: {
			NodeID: n.id,
			Data: map[string]any{
				"error":   errorMessage,
				"success": false,
			},
			Status:    string(models.NodeStatusError),
			Timestamp: time.Now().UTC(),
			Error:     errorMessage,
		},
	}
}

// GetInputPorts returns the input ports for the node.
func (n *ONTAPNode) GetInputPorts() []models.InputPort {
	return []models.InputPort{
		{
			Port: models.Port{
				ID:          models.MakePortID(n.id, InputPortMain),
				NodeID:      n.id,
				Name:        InputPortMain,
				Description: "Main input for triggering the ONTAP operation",
			},
		},
	}
}

// GetOutputPorts returns the output ports for the node.
func (n *ONTAPNode) GetOutputPorts() []models.OutputPort {
	return []models.OutputPort{
		{
			Port: models.Port{
				ID:          models.MakePortID(n.id, OutputPortSuccess),
				NodeID:      n.id,
				Name:        OutputPortSuccess,
				Description: "Normalized ONTAP response payload",
				Schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"records":     map[string]any{"type": "array"},
						"num_records": map[string]any{"type": "number"},
						"job":         map[string]any{"type": "object"},
					},
				},
			},
		},
		{
			Port: models.Port{
				ID:          models.MakePortID(n.id, OutputPortError),
				NodeID:      n.id,
				Name:        OutputPortError,
				Description: "Normalized error message when the operation fails",
				Schema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error":   map[string]any{"type": "string"},
						"success": map[string]any{"type": "boolean"},
					},
				},
			},
		},
	}
}

// Validate validates the node configuration without instantiating it.
func (n *ONTAPNode) Validate(config map[string]any) error {
	_, err := parseConfig(config)

	return err
}
