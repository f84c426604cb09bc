package ports

import (
	"context"
	"time"

	"github.com/airlens/airmon/internal/core/domain"
)

// ControllerClient is the read-only view of the wireless controller.
// Implementations own authentication, session renewal and pagination;
// the core only sees complete record slices for one polling cycle.
type ControllerClient interface {
	// Zones returns all zone descriptors.
	Zones(ctx context.Context) ([]domain.ZoneRecord, error)
	// AccessPoints returns every AP across all zones.
	AccessPoints(ctx context.Context) ([]domain.AccessPointRecord, error)
	// Clients returns every associated client across all zones.
	Clients(ctx context.Context) ([]domain.ClientRecord, error)
	// Ping verifies controller reachability and credentials.
	Ping(ctx context.Context) error
}

// MeasurementWriter persists one cycle's measurement batch.
type MeasurementWriter interface {
	WriteBatch(ctx context.Context, batch []domain.Measurement) error
	Close()
}

// CycleSnapshot is the locally retained result of one collection cycle,
// served by the status API without round-tripping to the store.
type CycleSnapshot struct {
	CycleID     string
	CollectedAt time.Time
	Venue       domain.VenueSummary
	Zones       []domain.ZoneMetrics
	OfflineAPs  []domain.CauseCodeAssignment
}

// SnapshotStore persists the latest cycle snapshot and per-AP status
// transitions for the status API and offline reporting.
type SnapshotStore interface {
	SaveCycle(snap CycleSnapshot) error
	LatestCycle() (CycleSnapshot, bool, error)
	RecordAPStatus(mac, name, zoneID, status string, seen time.Time) error
	Close() error
}

// CycleListener is notified after every completed cycle. Used by the
// web layer to push live updates to connected dashboards.
type CycleListener interface {
	CycleCompleted(snap CycleSnapshot)
}
