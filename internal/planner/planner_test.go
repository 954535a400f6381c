package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avelisek/planwright/internal/faultmap"
	"github.com/avelisek/planwright/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with call tracking and fault injection.
type fakeStore struct {
	techsBySkills []models.Technician
	allTechs      []models.Technician
	parts         []models.Part

	skillsQueried [][]string
	listCalls     int
	upserted      []*models.WorkOrder

	queryErr  error
	upsertErr error
}

func (s *fakeStore) TechniciansBySkills(_ context.Context, skills []string) ([]models.Technician, error) {
	s.skillsQueried = append(s.skillsQueried, skills)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.techsBySkills, nil
}

func (s *fakeStore) ListTechnicians(context.Context) ([]models.Technician, error) {
	s.listCalls++
	return s.allTechs, nil
}

func (s *fakeStore) ListParts(context.Context) ([]models.Part, error) {
	return s.parts, nil
}

func (s *fakeStore) UpsertWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, wo)
	return nil
}

// stubAgent returns a canned response.
type stubAgent struct {
	response string
	err      error
	prompt   string
}

func (a *stubAgent) Invoke(_ context.Context, prompt string) (string, error) {
	a.prompt = prompt
	return a.response, a.err
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func newTestPlanner(store *fakeStore, agent Agent) *Planner {
	return New(store, agent, faultmap.Builtin(), nil,
		WithClock(fixedClock),
		WithIDGenerator(func() string { return "generated-id-1" }),
	)
}

func TestPlanEndToEnd(t *testing.T) {
	tomorrow := fixedClock().Add(24 * time.Hour)
	store := &fakeStore{
		techsBySkills: []models.Technician{
			{ID: "t1", Name: "Mira", Skills: []string{"instrumentation", "temperature_control"}, IsAvailable: true},
			{ID: "t2", Name: "Jon", Skills: []string{"tire_curing_press", "temperature_control", "instrumentation"}, IsAvailable: true, NextAvailableAt: &tomorrow},
		},
		parts: []models.Part{
			{ID: "abc123", PartNumber: "TCP-HTR-4KW", QuantityAvailable: 4},
			{ID: "def456", PartNumber: "GEN-TS-K400", QuantityAvailable: 12},
		},
	}
	agent := &stubAgent{response: "Here is the plan you requested:\n\n```json\n" +
		`{"workOrderNumber":"WO-1","machineId":"M1",` +
		`"partsUsed":[{"partNumber":"tcp-htr-4kw","quantity":"1"}],` +
		`"tasks":[{"sequence":1,"title":"Inspect","estimatedDurationMinutes":-10}]}` +
		"\n```\nGood luck with the repair!"}

	p := newTestPlanner(store, agent)
	fault := &models.Fault{ID: "f1", FaultType: "curing_temperature_excessive", MachineID: "M1"}

	wo, err := p.Plan(context.Background(), fault)
	require.NoError(t, err)

	// Generated id, stamped timestamps, heuristic defaults.
	assert.Equal(t, "generated-id-1", wo.ID)
	assert.Equal(t, "WO-1", wo.WorkOrderNumber)
	assert.Equal(t, "M1", wo.MachineID)
	assert.Equal(t, models.PriorityMedium, wo.Priority)
	assert.Equal(t, models.StatusOpen, wo.Status)
	assert.Equal(t, fixedClock(), wo.CreatedAt)
	assert.Equal(t, fixedClock(), wo.UpdatedAt)

	// Negative durations clamp to zero.
	require.Len(t, wo.Tasks, 1)
	assert.Equal(t, 0, wo.Tasks[0].EstimatedDurationMinutes.Int())

	// Highest skill overlap wins regardless of availability timestamp.
	assert.Equal(t, "t2", wo.AssignedTo)

	// Part reference resolved case-insensitively from the snapshot.
	require.Len(t, wo.PartsUsed, 1)
	assert.Equal(t, "abc123", wo.PartsUsed[0].PartID)
	assert.Equal(t, 1, wo.PartsUsed[0].Quantity.Int())

	// Persisted exactly once.
	require.Len(t, store.upserted, 1)
	assert.Same(t, wo, store.upserted[0])

	// The skills query used the fault mapping.
	require.Len(t, store.skillsQueried, 1)
	assert.Contains(t, store.skillsQueried[0], "instrumentation")
}

func TestPlanNilFault(t *testing.T) {
	store := &fakeStore{}
	p := newTestPlanner(store, &stubAgent{})

	_, err := p.Plan(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilFault)
	assert.Empty(t, store.skillsQueried, "nil fault must be rejected before any I/O")
}

func TestPlanEmptyAgentResponse(t *testing.T) {
	for _, response := range []string{"", "   \n\t  "} {
		store := &fakeStore{allTechs: []models.Technician{{ID: "t1", IsAvailable: true}}}
		p := newTestPlanner(store, &stubAgent{response: response})

		_, err := p.Plan(context.Background(), &models.Fault{ID: "f2", FaultType: "unknown"})
		require.ErrorIs(t, err, ErrEmptyResponse)
		assert.Contains(t, err.Error(), "f2", "error should carry the fault id")
		assert.Empty(t, store.upserted)
	}
}

func TestPlanAgentFailure(t *testing.T) {
	store := &fakeStore{}
	p := newTestPlanner(store, &stubAgent{err: errors.New("model overloaded")})

	_, err := p.Plan(context.Background(), &models.Fault{ID: "f3", FaultType: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
	assert.Empty(t, store.upserted)
}

func TestPlanParseError(t *testing.T) {
	store := &fakeStore{}
	raw := "I am sorry, I cannot produce a work order for this fault."
	p := newTestPlanner(store, &stubAgent{response: raw})

	_, err := p.Plan(context.Background(), &models.Fault{ID: "f4", FaultType: "unknown"})

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "f4", parseErr.FaultID)
	assert.Equal(t, raw, parseErr.Raw)
	assert.NotEmpty(t, parseErr.Cleaned)
	assert.Empty(t, store.upserted, "no partial work order may be persisted")
}

func TestPlanFallsBackToFullRoster(t *testing.T) {
	store := &fakeStore{
		techsBySkills: nil, // nobody matches the required skills
		allTechs: []models.Technician{
			{ID: "t9", Name: "Petra", Skills: []string{"welding"}, IsAvailable: true},
		},
	}
	p := newTestPlanner(store, &stubAgent{response: `{"workOrderNumber":"WO-2"}`})

	wo, err := p.Plan(context.Background(), &models.Fault{ID: "f5", FaultType: "bead_wire_tension_drift", MachineID: "BW-2"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.listCalls, "empty skill match falls back to the full roster")
	assert.Equal(t, "t9", wo.AssignedTo)
	assert.Equal(t, "BW-2", wo.MachineID, "machine id inherited from the fault")
}

func TestPlanCanonicalizesStatusAndPriority(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantStatus   string
		wantPriority string
	}{
		{
			name:         "upper-cased values lowered",
			response:     `{"workOrderNumber":"WO-9","status":"OPEN","priority":"HIGH"}`,
			wantStatus:   models.StatusOpen,
			wantPriority: models.PriorityHigh,
		},
		{
			name:         "recognized non-default status kept",
			response:     `{"workOrderNumber":"WO-9","status":"In_Progress","priority":"low"}`,
			wantStatus:   models.StatusInProgress,
			wantPriority: models.PriorityLow,
		},
		{
			name:         "unrecognized values fall to defaults",
			response:     `{"workOrderNumber":"WO-9","status":"pending","priority":"urgent"}`,
			wantStatus:   models.StatusOpen,
			wantPriority: models.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{allTechs: []models.Technician{{ID: "t1", IsAvailable: true}}}
			p := newTestPlanner(store, &stubAgent{response: tt.response})

			wo, err := p.Plan(context.Background(), &models.Fault{ID: "f10", FaultType: "unknown"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, wo.Status)
			assert.Equal(t, tt.wantPriority, wo.Priority)
		})
	}
}

func TestPlanKeepsAgentAssignment(t *testing.T) {
	store := &fakeStore{
		techsBySkills: []models.Technician{{ID: "t1", IsAvailable: true}},
	}
	p := newTestPlanner(store, &stubAgent{response: `{"workOrderNumber":"WO-3","assignedTo":"t7"}`})

	wo, err := p.Plan(context.Background(), &models.Fault{ID: "f6", FaultType: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, "t7", wo.AssignedTo)
}

func TestPlanNobodyAvailable(t *testing.T) {
	store := &fakeStore{
		techsBySkills: []models.Technician{{ID: "t1", IsAvailable: false}},
	}
	p := newTestPlanner(store, &stubAgent{response: `{"workOrderNumber":"WO-4"}`})

	wo, err := p.Plan(context.Background(), &models.Fault{ID: "f7", FaultType: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, wo.AssignedTo, "no available technician is not an error")
}

func TestPlanPersistFailure(t *testing.T) {
	store := &fakeStore{upsertErr: errors.New("store unavailable")}
	p := newTestPlanner(store, &stubAgent{response: `{"workOrderNumber":"WO-5"}`})

	_, err := p.Plan(context.Background(), &models.Fault{ID: "f8", FaultType: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestPromptMetadataDeterministic(t *testing.T) {
	fault := &models.Fault{
		ID: "f11", FaultType: "banbury_mixer_vibration", MachineID: "MIX-1",
		Metadata: map[string]any{
			"vibrationMm":  4.2,
			"bearingTemp":  88,
			"shiftLead":    "Okafor",
			"sensorId":     "VIB-113",
			"ambientTempC": 31,
		},
	}

	first := buildPrompt(fault, []string{"mechanical"}, nil, nil, 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, buildPrompt(fault, []string{"mechanical"}, nil, nil, 0))
	}

	// Keys come out in sorted order, not map order.
	assert.Less(t, strings.Index(first, "ambientTempC"), strings.Index(first, "bearingTemp"))
	assert.Less(t, strings.Index(first, "bearingTemp"), strings.Index(first, "sensorId"))
	assert.Less(t, strings.Index(first, "sensorId"), strings.Index(first, "shiftLead"))
	assert.Less(t, strings.Index(first, "shiftLead"), strings.Index(first, "vibrationMm"))
}

func TestPickTechnician(t *testing.T) {
	later := fixedClock().Add(48 * time.Hour)
	sooner := fixedClock().Add(2 * time.Hour)
	required := []string{"hydraulics", "mechanical"}

	t.Run("unavailable excluded despite better overlap", func(t *testing.T) {
		techs := []models.Technician{
			{ID: "t1", Skills: []string{"hydraulics"}, IsAvailable: true},
			{ID: "t3", Skills: []string{"hydraulics", "mechanical"}, IsAvailable: false},
		}
		best := pickTechnician(techs, required)
		require.NotNil(t, best)
		assert.Equal(t, "t1", best.ID)
	})

	t.Run("tie broken by earlier availability", func(t *testing.T) {
		techs := []models.Technician{
			{ID: "late", Skills: []string{"hydraulics"}, IsAvailable: true, NextAvailableAt: &later},
			{ID: "soon", Skills: []string{"hydraulics"}, IsAvailable: true, NextAvailableAt: &sooner},
		}
		best := pickTechnician(techs, required)
		require.NotNil(t, best)
		assert.Equal(t, "soon", best.ID)
	})

	t.Run("missing timestamp sorts first", func(t *testing.T) {
		techs := []models.Technician{
			{ID: "soon", Skills: []string{"hydraulics"}, IsAvailable: true, NextAvailableAt: &sooner},
			{ID: "free", Skills: []string{"hydraulics"}, IsAvailable: true},
		}
		best := pickTechnician(techs, required)
		require.NotNil(t, best)
		assert.Equal(t, "free", best.ID)
	})

	t.Run("nobody available", func(t *testing.T) {
		techs := []models.Technician{{ID: "t3", Skills: required, IsAvailable: false}}
		assert.Nil(t, pickTechnician(techs, required))
	})
}

func TestResolveParts(t *testing.T) {
	inventory := []models.Part{
		{ID: "abc123", PartNumber: "TCP-HTR-4KW"},
		{ID: "def456", PartNumber: "GEN-TS-K400"},
	}
	wo := &models.WorkOrder{PartsUsed: []models.PartUsage{
		{PartNumber: "tcp-htr-4kw", Quantity: 2},
		{PartNumber: "NO-SUCH-PN", PartID: "agent-guess"},
		{}, // no part number: left alone
	}}

	resolveParts(wo, inventory)

	assert.Equal(t, "abc123", wo.PartsUsed[0].PartID)
	assert.Equal(t, "agent-guess", wo.PartsUsed[1].PartID, "unmatched usage keeps the supplied id")
	assert.Empty(t, wo.PartsUsed[2].PartID)
}

func TestPlanPromptContents(t *testing.T) {
	nextWeek := fixedClock().Add(7 * 24 * time.Hour)
	store := &fakeStore{
		techsBySkills: []models.Technician{
			{ID: "t1", Name: "Mira Kovac", Skills: []string{"hydraulics"}, IsAvailable: false, NextAvailableAt: &nextWeek},
		},
		parts: []models.Part{{PartNumber: "HYD-PMP-30L"}, {PartNumber: "HYD-HOSE-12"}},
	}
	agent := &stubAgent{response: `{"workOrderNumber":"WO-6"}`}
	p := newTestPlanner(store, agent)

	_, err := p.Plan(context.Background(), &models.Fault{
		ID: "f9", FaultType: "hydraulic_pressure_loss", MachineID: "PRESS-3",
		Severity: "high", Notes: "pressure dropped 40% in 2h",
	})
	require.NoError(t, err)

	assert.Contains(t, agent.prompt, "hydraulic_pressure_loss")
	assert.Contains(t, agent.prompt, "PRESS-3")
	assert.Contains(t, agent.prompt, "pressure dropped 40% in 2h")
	assert.Contains(t, agent.prompt, "hydraulics")
	assert.Contains(t, agent.prompt, "HYD-PMP-30L")
	assert.Contains(t, agent.prompt, "Mira Kovac")
	assert.Contains(t, agent.prompt, "unavailable until")
	assert.Contains(t, agent.prompt, "2 distinct parts in stock")
}
