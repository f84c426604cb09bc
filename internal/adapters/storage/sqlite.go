package storage

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/airlens/airmon/internal/core/domain"
	"github.com/airlens/airmon/internal/core/ports"
)

// SQLiteStore implements ports.SnapshotStore using GORM and SQLite.
// It keeps a history of venue summaries plus the full detail of the
// most recent cycle, enough for the status API and PDF reports to
// answer without querying the time-series store.
type SQLiteStore struct {
	db *gorm.DB
}

// CycleModel is the GORM model for one collection cycle's venue summary.
type CycleModel struct {
	ID          uint   `gorm:"primaryKey"`
	CycleID     string `gorm:"uniqueIndex"`
	CollectedAt time.Time

	TotalZones         int
	TotalAPs           int
	TotalClients       int
	AvgExperienceScore float64
	SLACompliance      float64
}

// ZoneMetricModel stores one zone's derived metrics for a cycle.
type ZoneMetricModel struct {
	ID      uint   `gorm:"primaryKey"`
	CycleID string `gorm:"index"`

	ZoneID          string
	Name            string
	TotalAPs        int
	ConnectedAPs    int
	DisconnectedAPs int
	Clients         int
	APAvailability  float64
	ClientsPerAP    float64
	ExperienceScore float64
	Utilization     float64
	RxDesense       float64
	NetflixScore    float64
}

// DisconnectModel stores one offline AP's cause assignment for a cycle.
type DisconnectModel struct {
	ID      uint   `gorm:"primaryKey"`
	CycleID string `gorm:"index"`

	APMac            string
	APName           string
	ZoneID           string
	ZoneName         string
	Model            string
	CauseCode        int
	CauseDescription string
	ImpactScore      float64
}

// APStatusModel tracks the last observed status per AP and when it
// last flipped.
type APStatusModel struct {
	MAC        string `gorm:"primaryKey"`
	Name       string
	ZoneID     string
	Status     string
	LastSeen   time.Time
	LastChange time.Time
	Changes    int
}

// NewSQLiteStore initializes the database and migrates schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&CycleModel{}, &ZoneMetricModel{}, &DisconnectModel{}, &APStatusModel{}); err != nil {
		return nil, err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_cycles_collected_at ON cycle_models(collected_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_ap_status_zone ON ap_status_models(zone_id)")

	return &SQLiteStore{db: db}, nil
}

// SaveCycle persists a cycle snapshot. Zone and disconnect detail of
// older cycles is pruned; the venue summary history is kept.
func (s *SQLiteStore) SaveCycle(snap ports.CycleSnapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cycle := CycleModel{
			CycleID:            snap.CycleID,
			CollectedAt:        snap.CollectedAt,
			TotalZones:         snap.Venue.TotalZones,
			TotalAPs:           snap.Venue.TotalAPs,
			TotalClients:       snap.Venue.TotalClients,
			AvgExperienceScore: snap.Venue.AvgExperienceScore,
			SLACompliance:      snap.Venue.SLACompliance,
		}
		if err := tx.Create(&cycle).Error; err != nil {
			return err
		}

		// Detail rows only matter for the latest cycle.
		if err := tx.Where("cycle_id <> ?", snap.CycleID).Delete(&ZoneMetricModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cycle_id <> ?", snap.CycleID).Delete(&DisconnectModel{}).Error; err != nil {
			return err
		}

		for _, z := range snap.Zones {
			row := ZoneMetricModel{
				CycleID:         snap.CycleID,
				ZoneID:          z.ID,
				Name:            z.Name,
				TotalAPs:        z.TotalAPs,
				ConnectedAPs:    z.ConnectedAPs,
				DisconnectedAPs: z.DisconnectedAPs,
				Clients:         z.Clients,
				APAvailability:  z.APAvailability,
				ClientsPerAP:    z.ClientsPerAP,
				ExperienceScore: z.ExperienceScore,
				Utilization:     z.Utilization,
				RxDesense:       z.RxDesense,
				NetflixScore:    z.NetflixScore,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, d := range snap.OfflineAPs {
			row := DisconnectModel{
				CycleID:          snap.CycleID,
				APMac:            d.APMac,
				APName:           d.APName,
				ZoneID:           d.ZoneID,
				ZoneName:         d.ZoneName,
				Model:            d.Model,
				CauseCode:        d.CauseCode,
				CauseDescription: d.CauseDescription,
				ImpactScore:      d.ImpactScore,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LatestCycle returns the most recent snapshot, or found=false when
// nothing has been collected yet.
func (s *SQLiteStore) LatestCycle() (ports.CycleSnapshot, bool, error) {
	var cycle CycleModel
	err := s.db.Order("collected_at DESC").First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.CycleSnapshot{}, false, nil
	}
	if err != nil {
		return ports.CycleSnapshot{}, false, err
	}

	snap := ports.CycleSnapshot{
		CycleID:     cycle.CycleID,
		CollectedAt: cycle.CollectedAt,
		Venue: domain.VenueSummary{
			Name:               "Main Venue",
			TotalZones:         cycle.TotalZones,
			TotalAPs:           cycle.TotalAPs,
			TotalClients:       cycle.TotalClients,
			AvgExperienceScore: cycle.AvgExperienceScore,
			SLACompliance:      cycle.SLACompliance,
		},
	}

	var zones []ZoneMetricModel
	if err := s.db.Where("cycle_id = ?", cycle.CycleID).Find(&zones).Error; err != nil {
		return ports.CycleSnapshot{}, false, err
	}
	for _, z := range zones {
		snap.Zones = append(snap.Zones, domain.ZoneMetrics{
			ID:              z.ZoneID,
			Name:            z.Name,
			TotalAPs:        z.TotalAPs,
			ConnectedAPs:    z.ConnectedAPs,
			DisconnectedAPs: z.DisconnectedAPs,
			Clients:         z.Clients,
			APAvailability:  z.APAvailability,
			ClientsPerAP:    z.ClientsPerAP,
			ExperienceScore: z.ExperienceScore,
			Utilization:     z.Utilization,
			RxDesense:       z.RxDesense,
			NetflixScore:    z.NetflixScore,
		})
	}

	var disconnects []DisconnectModel
	if err := s.db.Where("cycle_id = ?", cycle.CycleID).Find(&disconnects).Error; err != nil {
		return ports.CycleSnapshot{}, false, err
	}
	for _, d := range disconnects {
		snap.OfflineAPs = append(snap.OfflineAPs, domain.CauseCodeAssignment{
			APMac:            d.APMac,
			APName:           d.APName,
			ZoneID:           d.ZoneID,
			ZoneName:         d.ZoneName,
			Model:            d.Model,
			CauseCode:        d.CauseCode,
			CauseDescription: d.CauseDescription,
			ImpactScore:      d.ImpactScore,
		})
	}

	return snap, true, nil
}

// RecordAPStatus upserts the per-AP status row, bumping the change
// counter when the status flips.
func (s *SQLiteStore) RecordAPStatus(mac, name, zoneID, status string, seen time.Time) error {
	if mac == "" {
		return nil
	}

	var row APStatusModel
	err := s.db.Where("mac = ?", mac).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&APStatusModel{
			MAC:        mac,
			Name:       name,
			ZoneID:     zoneID,
			Status:     status,
			LastSeen:   seen,
			LastChange: seen,
		}).Error
	}
	if err != nil {
		return err
	}

	if row.Status != status {
		row.Status = status
		row.LastChange = seen
		row.Changes++
	}
	row.Name = name
	row.ZoneID = zoneID
	row.LastSeen = seen
	return s.db.Save(&row).Error
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
