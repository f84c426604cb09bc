// Package collect orchestrates one polling cycle: fetch inventory
// from the controller, derive metrics, assign disconnect causes, and
// hand the flat measurement batch to the time-series writer.
package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/core/domain"
	"github.com/airlens/airmon/internal/core/ports"
	"github.com/airlens/airmon/internal/core/services/aggregate"
	"github.com/airlens/airmon/internal/core/services/causes"
	"github.com/airlens/airmon/internal/telemetry"
)

// Collector owns the per-cycle pipeline. Cycles run sequentially; the
// collector holds no state across cycles beyond its collaborators.
type Collector struct {
	controller ports.ControllerClient
	writer     ports.MeasurementWriter
	aggregator *aggregate.Aggregator
	assigner   *causes.Assigner
	snapshots  ports.SnapshotStore // optional
	listeners  []ports.CycleListener
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewCollector wires a collector from its collaborators. snapshots may
// be nil when no local store is configured.
func NewCollector(
	controller ports.ControllerClient,
	writer ports.MeasurementWriter,
	aggregator *aggregate.Aggregator,
	assigner *causes.Assigner,
	snapshots ports.SnapshotStore,
	logger *zap.Logger,
) *Collector {
	return &Collector{
		controller: controller,
		writer:     writer,
		aggregator: aggregator,
		assigner:   assigner,
		snapshots:  snapshots,
		logger:     logger,
		tracer:     otel.Tracer("airmon/collect"),
	}
}

// AddListener registers a listener notified after each completed
// cycle. Not safe to call concurrently with RunCycle.
func (c *Collector) AddListener(l ports.CycleListener) {
	c.listeners = append(c.listeners, l)
}

// RunCycle executes one full collection cycle. A failure aborts only
// this cycle; the caller decides whether to schedule another.
func (c *Collector) RunCycle(ctx context.Context) error {
	cycleID := uuid.NewString()
	start := time.Now().UTC()
	logger := c.logger.With(zap.String("cycle_id", cycleID))

	ctx, span := c.tracer.Start(ctx, "collect.cycle",
		trace.WithAttributes(attribute.String("cycle.id", cycleID)))
	defer span.End()

	timer := time.Now()
	defer func() {
		telemetry.CycleDuration.Observe(time.Since(timer).Seconds())
	}()
	telemetry.CyclesTotal.Inc()

	logger.Info("starting collection cycle")

	zones, aps, clients, err := c.fetchInventory(ctx, logger)
	if err != nil {
		telemetry.CycleErrors.WithLabelValues("fetch").Inc()
		return err
	}

	snap := c.derive(ctx, cycleID, start, zones, aps, clients)

	insights := c.aggregator.NormalizeClients(clients)
	osDist := c.aggregator.OSDistribution(insights)
	hostUsage := c.aggregator.TopHostUsage(insights, aggregate.DefaultHostUsageLimit)

	batch := buildBatch(start, snap.Venue, snap.Zones, aps, clients, osDist, hostUsage, snap.OfflineAPs)

	if err := c.write(ctx, batch); err != nil {
		telemetry.CycleErrors.WithLabelValues("write").Inc()
		return err
	}
	logger.Info("cycle complete",
		zap.Int("measurements", len(batch)),
		zap.Int("zones", len(zones)),
		zap.Int("aps", len(aps)),
		zap.Int("clients", len(clients)),
		zap.Int("offline_aps", len(snap.OfflineAPs)),
		zap.Duration("elapsed", time.Since(timer)))

	c.persistSnapshot(snap, aps, logger)

	for _, l := range c.listeners {
		l.CycleCompleted(snap)
	}
	return nil
}

// fetchInventory pulls the three record streams for this cycle.
func (c *Collector) fetchInventory(ctx context.Context, logger *zap.Logger) (
	[]domain.ZoneRecord, []domain.AccessPointRecord, []domain.ClientRecord, error,
) {
	ctx, span := c.tracer.Start(ctx, "collect.fetch")
	defer span.End()

	zones, err := c.controller.Zones(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching zones: %w", err)
	}
	telemetry.RecordsFetched.WithLabelValues("zone").Add(float64(len(zones)))
	logger.Debug("fetched zones", zap.Int("count", len(zones)))

	aps, err := c.controller.AccessPoints(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching access points: %w", err)
	}
	telemetry.RecordsFetched.WithLabelValues("ap").Add(float64(len(aps)))
	logger.Debug("fetched access points", zap.Int("count", len(aps)))

	clients, err := c.controller.Clients(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching clients: %w", err)
	}
	telemetry.RecordsFetched.WithLabelValues("client").Add(float64(len(clients)))
	logger.Debug("fetched clients", zap.Int("count", len(clients)))

	return zones, aps, clients, nil
}

// derive runs the pure computation stage: zone/venue metrics plus
// cause assignments for the offline subset.
func (c *Collector) derive(
	ctx context.Context,
	cycleID string,
	ts time.Time,
	zones []domain.ZoneRecord,
	aps []domain.AccessPointRecord,
	clients []domain.ClientRecord,
) ports.CycleSnapshot {
	_, span := c.tracer.Start(ctx, "collect.derive")
	defer span.End()

	zoneMetrics := c.aggregator.BuildZoneMetrics(zones, aps, clients)
	venue := c.aggregator.BuildVenueSummary(zoneMetrics)
	offline := c.assigner.AssignAll(FilterOffline(aps))

	return ports.CycleSnapshot{
		CycleID:     cycleID,
		CollectedAt: ts,
		Venue:       venue,
		Zones:       zoneMetrics,
		OfflineAPs:  offline,
	}
}

func (c *Collector) write(ctx context.Context, batch []domain.Measurement) error {
	ctx, span := c.tracer.Start(ctx, "collect.write",
		trace.WithAttributes(attribute.Int("batch.size", len(batch))))
	defer span.End()

	if len(batch) == 0 {
		return nil
	}
	if err := c.writer.WriteBatch(ctx, batch); err != nil {
		return fmt.Errorf("writing measurement batch: %w", err)
	}
	telemetry.PointsWritten.Add(float64(len(batch)))
	return nil
}

// persistSnapshot saves the cycle locally for the status API. Snapshot
// failures are logged, never fatal: the time-series write already
// succeeded and the next cycle overwrites local state anyway.
func (c *Collector) persistSnapshot(snap ports.CycleSnapshot, aps []domain.AccessPointRecord, logger *zap.Logger) {
	if c.snapshots == nil {
		return
	}
	if err := c.snapshots.SaveCycle(snap); err != nil {
		logger.Warn("saving cycle snapshot failed", zap.Error(err))
	}
	for _, ap := range aps {
		status := "online"
		if IsOffline(ap) {
			status = "offline"
		}
		if err := c.snapshots.RecordAPStatus(ap.ResolvedMAC(), ap.ResolvedName(), ap.ZoneID, status, snap.CollectedAt); err != nil {
			logger.Warn("recording AP status failed", zap.String("ap", ap.ResolvedMAC()), zap.Error(err))
			break
		}
	}
}
