// Package influx implements the measurement writer port on InfluxDB 2.x.
package influx

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	influxdomain "github.com/influxdata/influxdb-client-go/v2/domain"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/core/domain"
)

// Options configures the InfluxDB connection.
type Options struct {
	URL    string
	Org    string
	Bucket string
	Token  string
}

// Writer persists measurement batches through the blocking write API.
// Cycles run sequentially, so synchronous writes keep the failure
// handling trivial: a failed write aborts exactly one cycle.
type Writer struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	opts     Options
	logger   *zap.Logger
}

// NewWriter creates a writer. The connection is lazy; Health can be
// used to probe it at startup.
func NewWriter(opts Options, logger *zap.Logger) *Writer {
	client := influxdb2.NewClient(opts.URL, opts.Token)
	return &Writer{
		client:   client,
		writeAPI: client.WriteAPIBlocking(opts.Org, opts.Bucket),
		opts:     opts,
		logger:   logger,
	}
}

// WriteBatch writes one cycle's measurements in a single call.
func (w *Writer) WriteBatch(ctx context.Context, batch []domain.Measurement) error {
	if len(batch) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(batch))
	for _, m := range batch {
		points = append(points, toPoint(m))
	}

	if err := w.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("writing %d points to bucket %q: %w", len(points), w.opts.Bucket, err)
	}
	w.logger.Debug("wrote points", zap.Int("count", len(points)), zap.String("bucket", w.opts.Bucket))
	return nil
}

// Health probes the InfluxDB instance.
func (w *Writer) Health(ctx context.Context) error {
	health, err := w.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("influx health check: %w", err)
	}
	if health.Status != influxdomain.HealthCheckStatusPass {
		return fmt.Errorf("influx health check: status %s", health.Status)
	}
	return nil
}

// EnsureBucket creates the configured bucket when it doesn't exist
// yet. Retention defaults to infinite, matching dashboard usage where
// downsampling is handled by tasks inside Influx.
func (w *Writer) EnsureBucket(ctx context.Context) error {
	bucketsAPI := w.client.BucketsAPI()
	if _, err := bucketsAPI.FindBucketByName(ctx, w.opts.Bucket); err == nil {
		return nil
	}

	org, err := w.client.OrganizationsAPI().FindOrganizationByName(ctx, w.opts.Org)
	if err != nil {
		return fmt.Errorf("looking up org %q: %w", w.opts.Org, err)
	}

	_, err = bucketsAPI.CreateBucketWithName(ctx, org, w.opts.Bucket,
		influxdomain.RetentionRule{EverySeconds: 0})
	if err != nil {
		return fmt.Errorf("creating bucket %q: %w", w.opts.Bucket, err)
	}
	w.logger.Info("created bucket", zap.String("bucket", w.opts.Bucket))
	return nil
}

// Close flushes and releases the underlying client.
func (w *Writer) Close() {
	w.client.Close()
}

// toPoint converts the writer-agnostic measurement into an Influx
// point. Tag and field typing decisions were already made upstream.
func toPoint(m domain.Measurement) *write.Point {
	return influxdb2.NewPoint(m.Name, m.Tags, m.Fields, m.Time)
}
