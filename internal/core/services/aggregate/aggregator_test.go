package aggregate

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlens/airmon/internal/core/domain"
)

func TestNormalizeZoneCounts(t *testing.T) {
	agg := NewAggregator()

	metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{
		{ID: "z1", ZoneName: "HQ", APCountOnline: 18, APCountOffline: 2, ClientCount: 40},
	}, nil, nil)

	require.Len(t, metrics, 1)
	zm := metrics[0]
	assert.Equal(t, 20, zm.TotalAPs)
	assert.Equal(t, 18, zm.ConnectedAPs)
	assert.Equal(t, 2, zm.DisconnectedAPs)
	assert.Equal(t, 40, zm.Clients)
	assert.Equal(t, 90.0, zm.APAvailability)
	assert.Equal(t, 2.22, zm.ClientsPerAP)
}

func TestZoneCountInvariant(t *testing.T) {
	agg := NewAggregator()

	zones := []domain.ZoneRecord{
		{ID: "a", APCountOnline: 7, APCountOffline: 3},
		{ID: "b", APCountOnline: 0, APCountOffline: 0},
		{ID: "c", APCountOnline: 0, APCountOffline: 12},
	}
	for _, zm := range agg.BuildZoneMetrics(zones, nil, nil) {
		assert.Equal(t, zm.TotalAPs, zm.ConnectedAPs+zm.DisconnectedAPs)
		assert.GreaterOrEqual(t, zm.APAvailability, 0.0)
		assert.LessOrEqual(t, zm.APAvailability, 100.0)
	}
}

func TestZeroTotalsProduceZeroRatios(t *testing.T) {
	agg := NewAggregator()

	metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{
		{ID: "empty", ZoneName: "Empty"},
	}, nil, nil)

	require.Len(t, metrics, 1)
	zm := metrics[0]
	assert.Equal(t, 0.0, zm.APAvailability)
	assert.Equal(t, 0.0, zm.ClientsPerAP)
	assert.Equal(t, 0.0, zm.ExperienceScore)
	assert.Equal(t, 0.0, zm.NetflixScore)
	assert.Equal(t, 0.0, zm.Utilization)
	assert.Equal(t, 0.0, zm.RxDesense)
}

func TestUtilizationAveragesReportingAPsOnly(t *testing.T) {
	agg := NewAggregator()

	aps := []domain.AccessPointRecord{
		{ZoneID: "z1", Airtime24G: 30, Airtime5G: 50}, // sample 40
		{ZoneID: "z1", Airtime24G: 20},                // sample 10
		{ZoneID: "z1"},                                // no airtime, skipped
		{ZoneID: "other", Airtime24G: 99, Airtime5G: 99},
	}
	metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{{ID: "z1"}}, aps, nil)

	require.Len(t, metrics, 1)
	assert.Equal(t, 25.0, metrics[0].Utilization)
}

func TestRxDesenseCollectsNonzeroBands(t *testing.T) {
	agg := NewAggregator()

	aps := []domain.AccessPointRecord{
		{ZoneID: "z1", RxDesense24G: 4, RxDesense5G: 8},
		{ZoneID: "z1", RxDesense5G: 6},
		{ZoneID: "z1"}, // contributes nothing
	}
	metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{{ID: "z1"}}, aps, nil)

	require.Len(t, metrics, 1)
	assert.Equal(t, 6.0, metrics[0].RxDesense)
}

func TestExperienceScoreMapping(t *testing.T) {
	tests := []struct {
		name      string
		rssi      float64
		wantScore float64
	}{
		{"strong signal saturates", -50, 100},
		{"very strong signal saturates", -42, 100},
		{"good band", -60, 90.0},
		{"good band lower edge", -70, 80.0},
		{"fair band", -78, 69.3},
		{"fair band lower edge", -85, 60.0},
		{"poor band", -90, 40.0},
		{"poor band floors at zero", -120, 0},
	}

	agg := NewAggregator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := []domain.ClientRecord{{ZoneID: "z1", RSSI: tt.rssi}}
			metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{{ID: "z1"}}, nil, clients)

			require.Len(t, metrics, 1)
			assert.InDelta(t, tt.wantScore, metrics[0].ExperienceScore, 0.05)
			assert.InDelta(t, round1(metrics[0].ExperienceScore*0.95), metrics[0].NetflixScore, 0.001)
		})
	}
}

func TestExperienceScoreUsesMeanAndSkipsUnreported(t *testing.T) {
	agg := NewAggregator()

	clients := []domain.ClientRecord{
		{ZoneID: "z1", RSSI: -50},
		{ZoneID: "z1", RSSI: -70},
		{ZoneID: "z1", RSSI: 0}, // unreported, skipped
	}
	metrics := agg.BuildZoneMetrics([]domain.ZoneRecord{{ID: "z1"}}, nil, clients)

	// mean of -50 and -70 is -60 → 90.0
	require.Len(t, metrics, 1)
	assert.Equal(t, 90.0, metrics[0].ExperienceScore)
	assert.Equal(t, 85.5, metrics[0].NetflixScore)
}

func TestVenueSummary(t *testing.T) {
	agg := NewAggregator()

	zones := []domain.ZoneMetrics{
		{TotalAPs: 10, Clients: 100, APAvailability: 96, ExperienceScore: 90},
		{TotalAPs: 5, Clients: 20, APAvailability: 94, ExperienceScore: 70},
		{TotalAPs: 3, Clients: 0, APAvailability: 100, ExperienceScore: 0},
	}
	venue := agg.BuildVenueSummary(zones)

	assert.Equal(t, 3, venue.TotalZones)
	assert.Equal(t, 18, venue.TotalAPs)
	assert.Equal(t, 120, venue.TotalClients)
	// zones with a zero score don't count toward the average
	assert.Equal(t, 80.0, venue.AvgExperienceScore)
	assert.Equal(t, 66.7, venue.SLACompliance)
}

func TestVenueSummaryEmpty(t *testing.T) {
	agg := NewAggregator()
	venue := agg.BuildVenueSummary(nil)

	assert.Equal(t, 0, venue.TotalZones)
	assert.Equal(t, 0.0, venue.AvgExperienceScore)
	assert.Equal(t, 0.0, venue.SLACompliance)
}

func TestAggregatorIsDeterministic(t *testing.T) {
	agg := NewAggregator()

	zones := []domain.ZoneRecord{
		{ID: "z1", ZoneName: "A", APCountOnline: 4, APCountOffline: 1, ClientCount: 9},
		{ID: "z2", ZoneName: "B", APCountOnline: 2, APCountOffline: 0, ClientCount: 3},
	}
	aps := []domain.AccessPointRecord{
		{ZoneID: "z1", Airtime24G: 12, Airtime5G: 30, RxDesense24G: 2},
		{ZoneID: "z2", Airtime5G: 44},
	}
	clients := []domain.ClientRecord{
		{ZoneID: "z1", RSSI: -61},
		{ZoneID: "z2", RSSI: -88},
	}

	first := agg.BuildZoneMetrics(zones, aps, clients)
	second := agg.BuildZoneMetrics(zones, aps, clients)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregator not deterministic:\n%v\n%v", first, second)
	}
	assert.Equal(t, agg.BuildVenueSummary(first), agg.BuildVenueSummary(second))
}
