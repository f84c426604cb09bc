package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlens/airmon/internal/core/domain"
	"github.com/airlens/airmon/internal/core/ports"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "airmon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot(cycleID string, at time.Time) ports.CycleSnapshot {
	return ports.CycleSnapshot{
		CycleID:     cycleID,
		CollectedAt: at,
		Venue: domain.VenueSummary{
			Name:               "Main Venue",
			TotalZones:         2,
			TotalAPs:           25,
			TotalClients:       48,
			AvgExperienceScore: 82.5,
			SLACompliance:      50.0,
		},
		Zones: []domain.ZoneMetrics{
			{
				ID: "z1", Name: "North", TotalAPs: 20, ConnectedAPs: 18,
				DisconnectedAPs: 2, Clients: 40, APAvailability: 90.0,
				ClientsPerAP: 2.22, ExperienceScore: 85.0, Utilization: 31.0,
				RxDesense: 4.5, NetflixScore: 80.8,
			},
			{
				ID: "z2", Name: "South", TotalAPs: 5, ConnectedAPs: 5,
				Clients: 8, APAvailability: 100.0, ClientsPerAP: 1.6,
				ExperienceScore: 80.0, NetflixScore: 76.0,
			},
		},
		OfflineAPs: []domain.CauseCodeAssignment{
			{
				APMac: "AA:BB:CC:00:00:01", APName: "AP-Lobby", ZoneID: "z1",
				ZoneName: "North", Model: "R750", CauseCode: 200,
				CauseDescription: "Heartbeat lost - AP not responding to controller keepalive",
				ImpactScore:      18.7,
			},
		},
	}
}

func TestSaveAndLatestCycle(t *testing.T) {
	store := newTestStore(t)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveCycle(sampleSnapshot("cycle-1", at)))

	snap, found, err := store.LatestCycle()
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "cycle-1", snap.CycleID)
	assert.Equal(t, 82.5, snap.Venue.AvgExperienceScore)
	assert.Equal(t, 25, snap.Venue.TotalAPs)
	require.Len(t, snap.Zones, 2)
	assert.Equal(t, 90.0, snap.Zones[0].APAvailability)
	assert.Equal(t, 2.22, snap.Zones[0].ClientsPerAP)
	require.Len(t, snap.OfflineAPs, 1)
	assert.Equal(t, 200, snap.OfflineAPs[0].CauseCode)
}

func TestLatestCycleEmpty(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.LatestCycle()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveCyclePrunesOlderDetail(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveCycle(sampleSnapshot("cycle-1", base)))
	require.NoError(t, store.SaveCycle(sampleSnapshot("cycle-2", base.Add(time.Minute))))

	snap, found, err := store.LatestCycle()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cycle-2", snap.CycleID)
	assert.Len(t, snap.Zones, 2, "only the latest cycle's detail rows remain")
	assert.Len(t, snap.OfflineAPs, 1)

	// Venue history outlives the detail pruning.
	var cycles int64
	require.NoError(t, store.db.Model(&CycleModel{}).Count(&cycles).Error)
	assert.Equal(t, int64(2), cycles)

	var zoneRows int64
	require.NoError(t, store.db.Model(&ZoneMetricModel{}).Count(&zoneRows).Error)
	assert.Equal(t, int64(2), zoneRows)
}

func TestRecordAPStatusTracksFlips(t *testing.T) {
	store := newTestStore(t)

	t0 := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.RecordAPStatus("AA:BB", "AP-1", "z1", "online", t0))

	t1 := t0.Add(time.Minute)
	require.NoError(t, store.RecordAPStatus("AA:BB", "AP-1", "z1", "online", t1))

	var row APStatusModel
	require.NoError(t, store.db.Where("mac = ?", "AA:BB").First(&row).Error)
	assert.Equal(t, 0, row.Changes, "same status does not count as a flip")
	assert.Equal(t, t1.Unix(), row.LastSeen.Unix())
	assert.Equal(t, t0.Unix(), row.LastChange.Unix())

	t2 := t1.Add(time.Minute)
	require.NoError(t, store.RecordAPStatus("AA:BB", "AP-1", "z1", "offline", t2))

	require.NoError(t, store.db.Where("mac = ?", "AA:BB").First(&row).Error)
	assert.Equal(t, 1, row.Changes)
	assert.Equal(t, "offline", row.Status)
	assert.Equal(t, t2.Unix(), row.LastChange.Unix())
}

func TestRecordAPStatusIgnoresEmptyMAC(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordAPStatus("", "AP-?", "z1", "offline", time.Now()))

	var count int64
	require.NoError(t, store.db.Model(&APStatusModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
