package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/avelisek/planwright/internal/models"
	"github.com/google/uuid"
)

func newWorkOrderID() string {
	return uuid.NewString()
}

var validPriorities = map[string]struct{}{
	models.PriorityCritical: {},
	models.PriorityHigh:     {},
	models.PriorityMedium:   {},
	models.PriorityLow:      {},
}

var validStatuses = map[string]struct{}{
	models.StatusOpen:       {},
	models.StatusInProgress: {},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// normalize makes a freshly deserialized work order satisfy the aggregate
// invariants: non-empty id, machine inherited from the fault, timestamps
// stamped, priority/status resolved to a valid value, and no negative task
// durations.
func (p *Planner) normalize(wo *models.WorkOrder, fault *models.Fault) {
	if wo.ID == "" {
		wo.ID = p.newID()
	}
	if wo.MachineID == "" {
		wo.MachineID = fault.MachineID
	}

	now := p.now().UTC()
	wo.CreatedAt = now
	wo.UpdatedAt = now

	wo.Priority = strings.ToLower(strings.TrimSpace(wo.Priority))
	if _, ok := validPriorities[wo.Priority]; !ok {
		wo.Priority = models.PriorityMedium
	}

	wo.Status = strings.ToLower(strings.TrimSpace(wo.Status))
	if _, ok := validStatuses[wo.Status]; !ok {
		wo.Status = models.StatusOpen
	}

	for i := range wo.Tasks {
		if wo.Tasks[i].EstimatedDurationMinutes < 0 {
			wo.Tasks[i].EstimatedDurationMinutes = 0
		}
	}
}

// pickTechnician ranks available technicians by descending skill overlap,
// then by ascending next availability (no timestamp sorts earliest).
// Returns nil when nobody is available.
func pickTechnician(techs []models.Technician, requiredSkills []string) *models.Technician {
	available := make([]models.Technician, 0, len(techs))
	for _, t := range techs {
		if t.IsAvailable {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		return nil
	}

	sort.SliceStable(available, func(i, j int) bool {
		oi := models.SkillOverlap(available[i].Skills, requiredSkills)
		oj := models.SkillOverlap(available[j].Skills, requiredSkills)
		if oi != oj {
			return oi > oj
		}
		return earlier(available[i].NextAvailableAt, available[j].NextAvailableAt)
	})

	return &available[0]
}

// earlier treats a missing timestamp as most-available.
func earlier(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}

// resolveParts fills PartID on each usage whose part number matches the
// inventory snapshot case-insensitively. Unmatched usages keep whatever
// partId the agent supplied, possibly empty. Inventory is the snapshot
// taken before the agent call; it is not re-fetched here.
func resolveParts(wo *models.WorkOrder, inventory []models.Part) {
	for i := range wo.PartsUsed {
		usage := &wo.PartsUsed[i]
		if usage.PartNumber == "" {
			continue
		}
		for _, part := range inventory {
			if strings.EqualFold(part.PartNumber, usage.PartNumber) {
				usage.PartID = part.ID
				break
			}
		}
	}
}
