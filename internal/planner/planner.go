// Package planner turns a diagnosed fault into a persisted repair work
// order: it gathers context from the store, prompts the planning agent,
// parses and normalizes the response, assigns a technician, and resolves
// part references.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avelisek/planwright/internal/faultmap"
	"github.com/avelisek/planwright/internal/metrics"
	"github.com/avelisek/planwright/internal/models"
)

// Sentinel errors.
var (
	// ErrNilFault rejects a planning call without a fault, before any I/O.
	ErrNilFault = errors.New("fault is required")

	// ErrEmptyResponse means the agent returned blank text.
	ErrEmptyResponse = errors.New("agent returned empty response")
)

// ParseError means the agent's text did not yield a usable work order.
// It carries both the raw and the cleaned text so the failure can be
// diagnosed without re-running the agent.
type ParseError struct {
	FaultID string
	Raw     string
	Cleaned string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse agent response for fault %s: %v (cleaned: %q, raw: %q)",
		e.FaultID, e.Err, e.Cleaned, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store is the document-store gateway the pipeline depends on.
type Store interface {
	TechniciansBySkills(ctx context.Context, skills []string) ([]models.Technician, error)
	ListTechnicians(ctx context.Context) ([]models.Technician, error)
	ListParts(ctx context.Context) ([]models.Part, error)
	UpsertWorkOrder(ctx context.Context, wo *models.WorkOrder) error
}

// Agent is the generative planning boundary: free text in, free text out.
type Agent interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Planner orchestrates the fault-to-work-order pipeline. Each Plan call is
// self-contained; the only shared state is the store itself.
type Planner struct {
	store     Store
	agent     Agent
	faults    faultmap.Map
	collector *metrics.Collector
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Planner.
type Option func(*Planner)

// WithCollector attaches a metrics collector.
func WithCollector(c *metrics.Collector) Option {
	return func(p *Planner) { p.collector = c }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDGenerator overrides work-order id generation, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(p *Planner) { p.newID = gen }
}

// New creates a Planner. log may be nil.
func New(store Store, agent Agent, faults faultmap.Map, log *slog.Logger, opts ...Option) *Planner {
	if log == nil {
		log = slog.Default()
	}
	p := &Planner{
		store:  store,
		agent:  agent,
		faults: faults,
		log:    log,
		now:    time.Now,
		newID:  newWorkOrderID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan runs the full pipeline for one fault and returns the persisted
// work order. Any failure aborts the pipeline; no partial work order is
// written. Cancellation of ctx propagates into every store and agent call.
func (p *Planner) Plan(ctx context.Context, fault *models.Fault) (*models.WorkOrder, error) {
	if fault == nil {
		return nil, ErrNilFault
	}
	started := time.Now()
	log := p.log.With("fault", fault.ID, "faultType", fault.FaultType)

	// Gather context
	skills := p.faults.RequiredSkills(fault.FaultType)
	partNumbers := p.faults.RequiredParts(fault.FaultType)

	techs, err := p.store.TechniciansBySkills(ctx, skills)
	if err != nil {
		return nil, fmt.Errorf("query technicians: %w", err)
	}
	if len(techs) == 0 {
		// Nobody with the exact skills on file: widen to the full roster.
		log.Debug("no skill match, falling back to full technician list", "skills", skills)
		techs, err = p.store.ListTechnicians(ctx)
		if err != nil {
			return nil, fmt.Errorf("list technicians: %w", err)
		}
	}

	inventory, err := p.store.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}

	// Invoke the agent
	prompt := buildPrompt(fault, skills, partNumbers, techs, len(inventory))
	raw, err := p.agent.Invoke(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("invoke agent: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w (fault %s)", ErrEmptyResponse, fault.ID)
	}

	// Extract and deserialize
	cleaned := Extract(raw)
	wo := &models.WorkOrder{}
	if err := json.Unmarshal([]byte(cleaned), wo); err != nil {
		return nil, &ParseError{FaultID: fault.ID, Raw: raw, Cleaned: cleaned, Err: err}
	}

	p.normalize(wo, fault)

	// Assignment is best-effort: having nobody available is not an error.
	if wo.AssignedTo == "" {
		if best := pickTechnician(techs, skills); best != nil {
			wo.AssignedTo = best.ID
			log.Debug("assigned technician", "technician", best.ID, "name", best.Name)
		}
	}

	resolveParts(wo, inventory)

	if err := p.store.UpsertWorkOrder(ctx, wo); err != nil {
		return nil, fmt.Errorf("persist work order: %w", err)
	}

	if p.collector != nil {
		p.collector.RecordTiming(metrics.OpPlan, time.Since(started))
	}
	log.Info("work order planned",
		"workOrder", wo.ID,
		"workOrderNumber", wo.WorkOrderNumber,
		"assignedTo", wo.AssignedTo,
		"tasks", len(wo.Tasks),
		"parts", len(wo.PartsUsed))
	return wo, nil
}
