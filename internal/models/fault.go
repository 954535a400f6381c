// Package models defines the data records exchanged between the planning
// pipeline, the document store, and the planning agent. Field names follow
// the lower-camel-case document schema (partNumber, estimatedDurationMinutes).
package models

import "time"

// Fault is a diagnosed equipment malfunction supplied as pipeline input.
// Faults are never persisted by the planner.
type Fault struct {
	ID         string         `json:"id" yaml:"id"`
	FaultType  string         `json:"faultType" yaml:"faultType"`
	MachineID  string         `json:"machineId" yaml:"machineId"`
	Severity   string         `json:"severity,omitempty" yaml:"severity,omitempty"`
	Confidence float64        `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Timestamp  time.Time      `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Notes      string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
