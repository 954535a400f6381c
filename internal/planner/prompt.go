package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avelisek/planwright/internal/models"
)

// buildPrompt serializes the planning context into the single text block
// the agent receives beyond its fixed instructions.
func buildPrompt(fault *models.Fault, skills, partNumbers []string, techs []models.Technician, inventorySize int) string {
	var b strings.Builder

	b.WriteString("## Fault\n")
	fmt.Fprintf(&b, "id: %s\n", fault.ID)
	fmt.Fprintf(&b, "type: %s\n", fault.FaultType)
	fmt.Fprintf(&b, "machine: %s\n", fault.MachineID)
	if fault.Severity != "" {
		fmt.Fprintf(&b, "severity: %s\n", fault.Severity)
	}
	if fault.Confidence > 0 {
		fmt.Fprintf(&b, "confidence: %.2f\n", fault.Confidence)
	}
	if !fault.Timestamp.IsZero() {
		fmt.Fprintf(&b, "detected: %s\n", fault.Timestamp.UTC().Format(time.RFC3339))
	}
	if fault.Notes != "" {
		fmt.Fprintf(&b, "notes: %s\n", fault.Notes)
	}
	for _, k := range sortedKeys(fault.Metadata) {
		fmt.Fprintf(&b, "%s: %v\n", k, fault.Metadata[k])
	}

	fmt.Fprintf(&b, "\n## Required skills\n%s\n", strings.Join(skills, ", "))

	b.WriteString("\n## Required parts\n")
	if len(partNumbers) == 0 {
		b.WriteString("none on file for this fault type\n")
	} else {
		b.WriteString(strings.Join(partNumbers, ", ") + "\n")
	}

	fmt.Fprintf(&b, "\n## Technicians (%d)\n", len(techs))
	for _, t := range techs {
		avail := "available"
		if !t.IsAvailable {
			avail = "unavailable"
			if t.NextAvailableAt != nil {
				avail = "unavailable until " + t.NextAvailableAt.UTC().Format(time.RFC3339)
			}
		}
		fmt.Fprintf(&b, "- %s | %s | skills: %s | %s\n",
			t.ID, t.Name, strings.Join(t.Skills, ", "), avail)
	}

	fmt.Fprintf(&b, "\n## Inventory\n%d distinct parts in stock\n", inventorySize)

	return b.String()
}

// sortedKeys keeps the metadata section stable across runs; map order
// would reshuffle the prompt for the same fault.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
