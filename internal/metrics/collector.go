// Package metrics provides in-memory runtime statistics for planning runs.
package metrics

import (
	"math"
	"sync"
	"time"
)

// Operation names for the collector.
const (
	OpAgentInvoke = "agent_invoke"
	OpStoreQuery  = "store_query"
	OpStoreWrite  = "store_write"
	OpPlan        = "plan"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration

	// Token totals (only for agent operations, only when the provider
	// reports usage)
	InputTokens  int64
	OutputTokens int64
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64

	InputTokens  int64
	OutputTokens int64
}

// Snapshot represents all collected statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64
	AgentInvoke   *OperationSnapshot
	StoreQuery    *OperationSnapshot
	StoreWrite    *OperationSnapshot
	Plan          *OperationSnapshot
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordAgentUsage records timing and token usage for an agent invocation.
// Token counts of zero are accepted; not every provider reports usage.
func (c *Collector) RecordAgentUsage(duration time.Duration, inputTokens, outputTokens int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(OpAgentInvoke)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}

	m.InputTokens += inputTokens
	m.OutputTokens += outputTokens
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}
	return &OperationSnapshot{
		Count:        m.Count,
		TotalTimeMs:  m.TotalTime.Milliseconds(),
		AvgTimeMs:    float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:    m.MinTime.Milliseconds(),
		MaxTimeMs:    m.MaxTime.Milliseconds(),
		InputTokens:  m.InputTokens,
		OutputTokens: m.OutputTokens,
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		AgentInvoke:   snapshotOp(c.ops[OpAgentInvoke]),
		StoreQuery:    snapshotOp(c.ops[OpStoreQuery]),
		StoreWrite:    snapshotOp(c.ops[OpStoreWrite]),
		Plan:          snapshotOp(c.ops[OpPlan]),
	}
}
