// Package resource defines the typed views of EC2 instances and Auto Scaling
// groups that ec2ctl reads from AWS. Nothing here is stored between runs.
package resource

import "errors"

// ErrInstanceNotFound is returned when AWS has no instance with the given ID.
var ErrInstanceNotFound = errors.New("instance not found")

// StateCode is the numeric lifecycle code AWS reports for an instance.
type StateCode int32

// Lifecycle codes as documented by EC2.
const (
	StatePending      StateCode = 0
	StateRunning      StateCode = 16
	StateShuttingDown StateCode = 32
	StateTerminated   StateCode = 48
	StateStopping     StateCode = 64
	StateStopped      StateCode = 80
)

var stateNames = map[StateCode]string{
	StatePending:      "pending",
	StateRunning:      "running",
	StateShuttingDown: "shutting-down",
	StateTerminated:   "terminated",
	StateStopping:     "stopping",
	StateStopped:      "stopped",
}

// NormalizeCode drops the high byte of a raw EC2 state code.
// EC2 uses it internally and callers should ignore it.
func NormalizeCode(raw int32) StateCode {
	return StateCode(raw & 0xFF)
}

// String returns the EC2 state name, or "unknown".
func (c StateCode) String() string {
	if name, ok := stateNames[c]; ok {
		return name
	}
	return "unknown"
}

// State is an instance lifecycle state.
type State struct {
	Code StateCode `json:"code"`
	Name string    `json:"name"` // As reported by AWS
}

// Instance is a read-only view of an EC2 instance.
type Instance struct {
	ID       string `json:"id"`
	State    State  `json:"state"`
	PublicIP string `json:"public_ip"` // Empty when none is assigned
}

// Group is a read-only view of an Auto Scaling group.
type Group struct {
	Name                    string   `json:"name"`
	LaunchConfigurationName string   `json:"launch_configuration_name"`
	MinSize                 int32    `json:"min_size"`
	MaxSize                 int32    `json:"max_size"`
	DesiredCapacity         int32    `json:"desired_capacity"`
	LoadBalancerNames       []string `json:"load_balancer_names"`
	InstanceIDs             []string `json:"instance_ids"`
}
