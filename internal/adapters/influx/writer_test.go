package influx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlens/airmon/internal/core/domain"
)

func TestToPoint(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	m := domain.Measurement{
		Name: domain.MeasurementZone,
		Tags: map[string]string{
			"zoneId":   "z1",
			"zoneName": "Campus-North",
		},
		Fields: map[string]interface{}{
			"totalAPs":       20,
			"apAvailability": 90.0,
			"clientsPerAP":   2.22,
		},
		Time: ts,
	}

	p := toPoint(m)

	assert.Equal(t, domain.MeasurementZone, p.Name())
	assert.Equal(t, ts, p.Time())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, m.Tags, tags)

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	require.Len(t, fields, 3)
	assert.Equal(t, int64(20), fields["totalAPs"], "integer fields are widened to int64 on the wire")
	assert.Equal(t, 90.0, fields["apAvailability"])
	assert.Equal(t, 2.22, fields["clientsPerAP"])
}

func TestWriteBatchEmptyIsNoop(t *testing.T) {
	// A nil writer would panic on use; an empty batch must not touch it.
	w := &Writer{}
	assert.NoError(t, w.WriteBatch(t.Context(), nil))
}
