package db

import (
	"context"
	"fmt"
	"time"

	"github.com/avelisek/planwright/internal/metrics"
	"github.com/avelisek/planwright/internal/models"
	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
)

// pageSize is the batch size for full-table scans. The gateway consumes
// all pages internally; callers always see the complete result set.
const pageSize = 100

const technicianFields = `record::id(id) AS id, name, department, skills, isAvailable, nextAvailableAt`
const partFields = `record::id(id) AS id, partNumber, description, quantityAvailable, category, location, version`

// ListTechnicians returns every technician document.
func (c *Client) ListTechnicians(ctx context.Context) ([]models.Technician, error) {
	defer c.recordTiming(metrics.OpStoreQuery, time.Now())

	out := []models.Technician{}
	for start := 0; ; start += pageSize {
		results, err := surrealdb.Query[[]models.Technician](ctx, c.db,
			fmt.Sprintf(`SELECT %s FROM technician LIMIT $limit START $start`, technicianFields),
			map[string]any{"limit": pageSize, "start": start})
		if err != nil {
			return nil, fmt.Errorf("list technicians: %w", wrapQueryError(err))
		}
		batch := firstResult(results)
		out = append(out, batch...)
		if len(batch) < pageSize {
			return out, nil
		}
	}
}

// ListParts returns the full parts inventory.
func (c *Client) ListParts(ctx context.Context) ([]models.Part, error) {
	defer c.recordTiming(metrics.OpStoreQuery, time.Now())

	out := []models.Part{}
	for start := 0; ; start += pageSize {
		results, err := surrealdb.Query[[]models.Part](ctx, c.db,
			fmt.Sprintf(`SELECT %s FROM part LIMIT $limit START $start`, partFields),
			map[string]any{"limit": pageSize, "start": start})
		if err != nil {
			return nil, fmt.Errorf("list parts: %w", wrapQueryError(err))
		}
		batch := firstResult(results)
		out = append(out, batch...)
		if len(batch) < pageSize {
			return out, nil
		}
	}
}

// TechniciansBySkills returns technicians whose skill set intersects the
// given skills, case-insensitively. An empty skill list returns an empty
// result, not the full roster. Filtering happens client-side over a full
// scan; the observable contract is the filtered set, not the mechanism.
func (c *Client) TechniciansBySkills(ctx context.Context, skills []string) ([]models.Technician, error) {
	if len(skills) == 0 {
		return []models.Technician{}, nil
	}

	all, err := c.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}

	matched := []models.Technician{}
	for _, t := range all {
		if models.SkillOverlap(t.Skills, skills) > 0 {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// FindPartByNumber looks a part up by its business key. Returns nil when
// no part matches; the first match wins if duplicates exist.
func (c *Client) FindPartByNumber(ctx context.Context, partNumber string) (*models.Part, error) {
	defer c.recordTiming(metrics.OpStoreQuery, time.Now())

	results, err := surrealdb.Query[[]models.Part](ctx, c.db,
		fmt.Sprintf(`SELECT %s FROM part WHERE partNumber = $partNumber LIMIT 1`, partFields),
		map[string]any{"partNumber": partNumber})
	if err != nil {
		return nil, fmt.Errorf("find part %s: %w", partNumber, wrapQueryError(err))
	}

	parts := firstResult(results)
	if len(parts) == 0 {
		return nil, nil
	}
	return &parts[0], nil
}

// UpsertWorkOrder writes a work order keyed by its id, assigning an id if
// missing and stamping updatedAt. Replace-or-insert, idempotent by id.
func (c *Client) UpsertWorkOrder(ctx context.Context, wo *models.WorkOrder) error {
	defer c.recordTiming(metrics.OpStoreWrite, time.Now())

	if wo.ID == "" {
		wo.ID = uuid.NewString()
	}
	wo.UpdatedAt = time.Now().UTC()
	if wo.CreatedAt.IsZero() {
		wo.CreatedAt = wo.UpdatedAt
	}

	// The record id lives in the key, not the body.
	doc := *wo
	doc.ID = ""

	_, err := surrealdb.Query[any](ctx, c.db,
		`UPSERT type::record("work_order", $id) CONTENT $data`,
		map[string]any{"id": wo.ID, "data": doc})
	if err != nil {
		return fmt.Errorf("upsert work order %s: %w", wo.ID, wrapQueryError(err))
	}
	return nil
}

// GetWorkOrder fetches a work order by id. Returns nil when absent.
func (c *Client) GetWorkOrder(ctx context.Context, id string) (*models.WorkOrder, error) {
	defer c.recordTiming(metrics.OpStoreQuery, time.Now())

	results, err := surrealdb.Query[[]models.WorkOrder](ctx, c.db,
		`SELECT *, record::id(id) AS id FROM type::record("work_order", $id)`,
		map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get work order %s: %w", id, wrapQueryError(err))
	}

	orders := firstResult(results)
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// CreateTechnician inserts a technician record, assigning an id if missing.
// Seed/bootstrap utility; the planner itself never writes technicians.
func (c *Client) CreateTechnician(ctx context.Context, t *models.Technician) error {
	defer c.recordTiming(metrics.OpStoreWrite, time.Now())

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	doc := *t
	doc.ID = ""

	_, err := surrealdb.Query[any](ctx, c.db,
		`UPSERT type::record("technician", $id) CONTENT $data`,
		map[string]any{"id": t.ID, "data": doc})
	if err != nil {
		return fmt.Errorf("create technician %s: %w", t.ID, wrapQueryError(err))
	}
	return nil
}

// CreatePart inserts a part record, assigning an id if missing.
func (c *Client) CreatePart(ctx context.Context, p *models.Part) error {
	defer c.recordTiming(metrics.OpStoreWrite, time.Now())

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	doc := *p
	doc.ID = ""

	_, err := surrealdb.Query[any](ctx, c.db,
		`UPSERT type::record("part", $id) CONTENT $data`,
		map[string]any{"id": p.ID, "data": doc})
	if err != nil {
		return fmt.Errorf("create part %s: %w", p.ID, wrapQueryError(err))
	}
	return nil
}

// DeductPartQuantity atomically decrements a part's quantity. It reads the
// current record, refuses amounts exceeding stock, then issues a write
// guarded by the last-seen version token. A concurrent modification between
// read and write fails the deduction without retrying; retry policy belongs
// to the caller. Returns false (not an error) for not-found, insufficient
// stock, and version conflict.
func (c *Client) DeductPartQuantity(ctx context.Context, partNumber string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("deduct %s: quantity must be positive, got %d", partNumber, quantity)
	}

	part, err := c.FindPartByNumber(ctx, partNumber)
	if err != nil {
		return false, err
	}
	if part == nil {
		return false, nil
	}
	if quantity > part.QuantityAvailable {
		return false, nil
	}

	return c.deductWithVersion(ctx, part.ID, part.Version, quantity)
}

// deductWithVersion performs the version-guarded decrement. Zero matched
// rows means the record changed since it was read.
func (c *Client) deductWithVersion(ctx context.Context, id string, version int64, quantity int) (bool, error) {
	defer c.recordTiming(metrics.OpStoreWrite, time.Now())

	results, err := surrealdb.Query[[]models.Part](ctx, c.db, `
		UPDATE type::record("part", $id)
		SET quantityAvailable -= $quantity, version += 1
		WHERE version = $version
		RETURN AFTER
	`, map[string]any{"id": id, "quantity": quantity, "version": version})
	if err != nil {
		return false, fmt.Errorf("deduct part %s: %w", id, wrapQueryError(err))
	}

	return len(firstResult(results)) > 0, nil
}

// firstResult unwraps the first statement's rows from a query response.
func firstResult[T any](results *[]surrealdb.QueryResult[[]T]) []T {
	if results == nil || len(*results) == 0 {
		return nil
	}
	return (*results)[0].Result
}
