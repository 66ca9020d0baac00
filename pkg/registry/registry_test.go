package registry

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func validONTAPConfig() map[string]any {
	return map[string]any{
		"resource":  "volume",
		"operation": "list",
		"connection": map[string]any{
			"host":     "cluster1.example.com",
			"username": "admin",
			"password": "netapp123",
		},
	}
}

func TestRegisterDefaultNodes(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	expectedNodes := []string{
		"ontap",
	}

	availableNodes := registry.GetAvailableNodes()
	if len(availableNodes) != len(expectedNodes) {
		t.Errorf("Expected %d nodes, got %d", len(expectedNodes), len(availableNodes))
	}

	for _, expectedType := range expectedNodes {
		found := false

		for _, factory := range availableNodes {
			if factory.ID() == expectedType {
				found = true

				break
			}
		}

		if !found {
			t.Errorf("Expected node type '%s' not found in registry", expectedType)
		}
	}
}

func TestCreateNode_ONTAP(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	node, err := registry.CreateNode(context.Background(), "ontap", "test-node-1", validONTAPConfig())
	if err != nil {
		t.Fatalf("Failed to create ONTAP node: %v", err)
	}

	if node.ID() != "test-node-1" {
		t.Errorf("Expected node ID 'test-node-1', got: %s", node.ID())
	}

	if node.Type() != "ontap" {
		t.Errorf("Expected node type 'ontap', got: %s", node.Type())
	}
}

func TestCreateNode_UnknownType(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	_, err := registry.CreateNode(context.Background(), "unknown_type", "test-node", map[string]any{})
	if err == nil {
		t.Fatal("Expected error when creating node with unknown type")
	}

	if !errors.Is(err, ErrNodeNotRegistered) {
		t.Errorf("Expected ErrNodeNotRegistered, got: %v", err)
	}
}

func TestCreateNode_SchemaValidation(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	// Missing the required connection block.
	config := map[string]any{
		"resource":  "volume",
		"operation": "list",
	}

	_, err := registry.CreateNode(context.Background(), "ontap", "test-node", config)
	if err == nil {
		t.Fatal("Expected schema validation error for config without connection")
	}
}

func TestCreateNode_SchemaRejectsUnknownResource(t *testing.T) {
	registry := NewRegistry(slog.Default())
	registry.RegisterDefaultNodes()

	config := validONTAPConfig()
	config["resource"] = "floppy"

	_, err := registry.CreateNode(context.Background(), "ontap", "test-node", config)
	if err == nil {
		t.Fatal("Expected schema validation error for unknown resource")
	}
}

func TestLoadNodePlugins_EmptyDirectory(t *testing.T) {
	registry := NewRegistry(slog.Default())

	factories, err := registry.LoadNodePlugins(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for a directory without plugins, got: %v", err)
	}

	if len(factories) != 0 {
		t.Errorf("Expected no factories, got %d", len(factories))
	}
}
