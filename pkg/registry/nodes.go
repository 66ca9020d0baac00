package registry

import (
	"github.com/dukex/operion-ontap/pkg/nodes/ontap"
)

// RegisterDefaultNodes registers all built-in node factories with the registry.
func (r *Registry) RegisterDefaultNodes() {
	// Register ONTAP node
	r.RegisterNode(ontap.NewONTAPNodeFactory())
}
