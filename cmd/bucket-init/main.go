// bucket-init ensures the collector's InfluxDB bucket exists. Run it
// once when provisioning a new store; the collector itself never
// creates buckets.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/adapters/influx"
	"github.com/airlens/airmon/internal/logging"
)

func main() {
	url := flag.String("influx", envOr("AIRMON_INFLUX_URL", "http://localhost:8086"), "InfluxDB URL")
	org := flag.String("org", envOr("AIRMON_INFLUX_ORG", "wifi-org"), "InfluxDB organization")
	bucket := flag.String("bucket", envOr("AIRMON_INFLUX_BUCKET", "wifi-streaming"), "Bucket to create")
	flag.Parse()

	logger, err := logging.New(false)
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	writer := influx.NewWriter(influx.Options{
		URL:    *url,
		Org:    *org,
		Bucket: *bucket,
		Token:  os.Getenv("AIRMON_INFLUX_TOKEN"),
	}, logger)
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := writer.Health(ctx); err != nil {
		logger.Error("influx unreachable", zap.Error(err))
		os.Exit(1)
	}
	if err := writer.EnsureBucket(ctx); err != nil {
		logger.Error("ensuring bucket failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("bucket ready", zap.String("bucket", *bucket), zap.String("org", *org))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
