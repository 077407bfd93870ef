package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/isabel-dlai/process-viewer/internal/classifier"
	"github.com/isabel-dlai/process-viewer/internal/models"
)

// CollectFunc captures one process-table population. Swappable in tests.
type CollectFunc func(ctx context.Context) (*models.ProcessTable, error)

// Publisher receives every successfully built snapshot.
type Publisher interface {
	Publish(models.Snapshot)
}

// Monitor drives the polling loop: capture the process table, run it
// through the classification pipeline, publish the snapshot. Cycles are
// strictly sequential. A failed capture skips the cycle and the previous
// snapshot remains the served state.
type Monitor struct {
	mu    sync.RWMutex
	table *models.ProcessTable
	last  models.Snapshot
	ready bool

	collect   CollectFunc
	interval  time.Duration
	publisher Publisher
}

// NewMonitor wires a capture function to a publisher. publisher may be nil
// for one-shot use.
func NewMonitor(collect CollectFunc, interval time.Duration, publisher Publisher) *Monitor {
	return &Monitor{
		collect:   collect,
		interval:  interval,
		publisher: publisher,
	}
}

// Run executes capture cycles on the configured cadence until ctx is
// canceled. The first cycle runs immediately so a snapshot is available as
// soon as the server is up. A cycle that outlives the interval delays the
// next tick instead of overlapping it.
func (m *Monitor) Run(ctx context.Context) {
	m.cycle(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.cycle(ctx)
		}
	}
}

func (m *Monitor) cycle(ctx context.Context) {
	started := time.Now()
	snap, err := m.RunOnce(ctx)
	if err != nil {
		log.Printf("scan cycle failed, keeping previous snapshot: %v", err)
		return
	}
	if elapsed := time.Since(started); elapsed > m.interval {
		log.Printf("scan cycle took %s, longer than the %s interval", elapsed.Round(time.Millisecond), m.interval)
	}
	if m.publisher != nil {
		m.publisher.Publish(snap)
	}
}

// RunOnce captures and classifies a single population and stores the
// result as the current snapshot.
func (m *Monitor) RunOnce(ctx context.Context) (models.Snapshot, error) {
	table, err := m.collect(ctx)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("capturing process table: %w", err)
	}
	snap := BuildSnapshot(table, false)

	m.mu.Lock()
	m.table = table
	m.last = snap
	m.ready = true
	m.mu.Unlock()
	return snap, nil
}

// Snapshot returns the last successfully built snapshot. The second return
// is false until the first cycle completes.
func (m *Monitor) Snapshot() (models.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.ready
}

// SnapshotAll rebuilds the expanded view, which also lists notable system
// processes (databases, container daemons), from the last captured
// population.
func (m *Monitor) SnapshotAll() (models.Snapshot, bool) {
	m.mu.RLock()
	table := m.table
	m.mu.RUnlock()
	if table == nil {
		return models.Snapshot{}, false
	}
	return BuildSnapshot(table, true), true
}

// BuildSnapshot runs the classification pipeline over one captured
// population and assembles the published shape. It is a pure function of
// the table, so identical populations produce identical snapshots.
func BuildSnapshot(table *models.ProcessTable, showAll bool) models.Snapshot {
	candidates := make([]models.ClassifiedProcess, 0, len(table.Processes))
	for _, raw := range table.Processes {
		cp := classifier.Classify(raw)
		if cp.IsCandidate || (showAll && classifier.IsNotableSystemProcess(cp.Name)) {
			candidates = append(candidates, cp)
		}
	}

	groups := classifier.Group(candidates, table.Processes)
	for i := range groups {
		if !groups[i].StartedAt.IsZero() {
			groups[i].Uptime = formatUptime(table.CapturedAt.Sub(groups[i].StartedAt))
		}
	}

	return models.Snapshot{
		Processes:  groups,
		SystemInfo: table.System,
	}
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour

	hours := d / time.Hour
	d -= hours * time.Hour

	minutes := d / time.Minute
	d -= minutes * time.Minute

	seconds := d / time.Second

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
