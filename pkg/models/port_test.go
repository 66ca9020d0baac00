package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePortID(t *testing.T) {
	assert.Equal(t, "node-1:success", MakePortID("node-1", "success"))
}

func TestParsePortID(t *testing.T) {
	nodeID, portName, ok := ParsePortID("node-1:success")
	assert.True(t, ok)
	assert.Equal(t, "node-1", nodeID)
	assert.Equal(t, "success", portName)
}

func TestParsePortID_Invalid(t *testing.T) {
	_, _, ok := ParsePortID("no-separator")
	assert.False(t, ok)
}
