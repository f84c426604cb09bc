package domain

import "time"

// Measurement group names written each cycle.
const (
	MeasurementVenue          = "venue"
	MeasurementZone           = "zone"
	MeasurementAccessPoint    = "access_point"
	MeasurementClient         = "client"
	MeasurementOSDistribution = "os_distribution"
	MeasurementHostUsage      = "host_usage"
	MeasurementDisconnect     = "ap_disconnect_cause"
)

// Measurement is one tagged, timestamped record handed to the
// time-series writer. Tags carry identity and categorical attributes;
// Fields carry the numeric (or, rarely, textual) payload. The type is
// writer-agnostic so the core never imports a store client.
type Measurement struct {
	Name   string
	Tags   map[string]string
	Fields map[string]interface{}
	Time   time.Time
}
