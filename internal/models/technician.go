package models

import (
	"strings"
	"time"
)

// Technician is plant maintenance staff. Read-only reference data for the
// planner; availability and skills are maintained elsewhere.
type Technician struct {
	ID              string     `json:"id,omitempty" yaml:"id"`
	Name            string     `json:"name" yaml:"name"`
	Department      string     `json:"department" yaml:"department"`
	Skills          []string   `json:"skills" yaml:"skills"`
	IsAvailable     bool       `json:"isAvailable" yaml:"isAvailable"`
	NextAvailableAt *time.Time `json:"nextAvailableAt,omitempty" yaml:"nextAvailableAt,omitempty"`
}

// SkillOverlap counts how many of the wanted skills appear in have,
// case-insensitively. Duplicate entries in wanted are counted once.
func SkillOverlap(have, wanted []string) int {
	if len(have) == 0 || len(wanted) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	seen := make(map[string]struct{}, len(wanted))
	count := 0
	for _, s := range wanted {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			count++
		}
	}
	return count
}
