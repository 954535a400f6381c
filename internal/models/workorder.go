package models

import "time"

// Work order type and priority categories. The agent is instructed to use
// these, but normalization tolerates anything and falls back to defaults.
const (
	TypeCorrective = "corrective"
	TypePreventive = "preventive"
	TypeEmergency  = "emergency"

	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// PartUsage references a part consumed by a work order. PartNumber is the
// business key as supplied by the agent; PartID is filled in by the
// resolution step when a matching inventory part exists.
type PartUsage struct {
	PartID     string  `json:"partId"`
	PartNumber string  `json:"partNumber"`
	Quantity   FlexInt `json:"quantity"`
}

// RepairTask is a single ordered step of a work order. Tasks keep the
// caller-supplied sequence; the pipeline does not re-sort them.
type RepairTask struct {
	Sequence                 FlexInt  `json:"sequence"`
	Title                    string   `json:"title"`
	Description              string   `json:"description,omitempty"`
	EstimatedDurationMinutes FlexInt  `json:"estimatedDurationMinutes"`
	RequiredSkills           []string `json:"requiredSkills,omitempty"`
	SafetyNotes              string   `json:"safetyNotes,omitempty"`
}

// WorkOrder is the root aggregate produced by the planning pipeline, one
// document per work order. Agent responses deserialize into this shape
// directly; duration-like fields are FlexInt because agents occasionally
// return numbers as strings.
type WorkOrder struct {
	ID                string      `json:"id,omitempty"`
	WorkOrderNumber   string      `json:"workOrderNumber"`
	MachineID         string      `json:"machineId"`
	Title             string      `json:"title"`
	Description       string      `json:"description,omitempty"`
	Type              string      `json:"type"`
	Priority          string      `json:"priority"`
	Status            string      `json:"status"`
	AssignedTo        string      `json:"assignedTo"`
	Notes             string      `json:"notes,omitempty"`
	EstimatedDuration FlexInt     `json:"estimatedDuration,omitempty"`
	Tasks             []RepairTask `json:"tasks"`
	PartsUsed         []PartUsage  `json:"partsUsed"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}
