package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		raw  int32
		want StateCode
	}{
		{0, StatePending},
		{16, StateRunning},
		{80, StateStopped},
		{0x0110, StateRunning},
		{0x0250, StateStopped},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCode(tt.raw), "raw=%d", tt.raw)
	}
}

func TestStateCode_String(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "shutting-down", StateShuttingDown.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "stopping", StateStopping.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", StateCode(89).String())
}
