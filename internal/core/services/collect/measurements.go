package collect

import (
	"strconv"
	"time"

	"github.com/airlens/airmon/internal/core/domain"
)

// buildBatch flattens one cycle's raw and derived records into the
// measurement batch handed to the writer. Identity and categorical
// attributes become tags; numeric payloads become fields, widened to
// float64 wherever the source value is inherently fractional.
func buildBatch(
	ts time.Time,
	venue domain.VenueSummary,
	zones []domain.ZoneMetrics,
	aps []domain.AccessPointRecord,
	clients []domain.ClientRecord,
	osDist []domain.OSShare,
	hostUsage []domain.HostUsage,
	disconnects []domain.CauseCodeAssignment,
) []domain.Measurement {
	batch := make([]domain.Measurement, 0,
		1+len(zones)+len(aps)+len(clients)+len(osDist)+len(hostUsage)+len(disconnects))

	batch = append(batch, domain.Measurement{
		Name: domain.MeasurementVenue,
		Tags: map[string]string{},
		Fields: map[string]interface{}{
			"totalZones":         venue.TotalZones,
			"totalAPs":           venue.TotalAPs,
			"totalClients":       venue.TotalClients,
			"avgExperienceScore": venue.AvgExperienceScore,
			"slaCompliance":      venue.SLACompliance,
		},
		Time: ts,
	})

	for _, z := range zones {
		batch = append(batch, domain.Measurement{
			Name: domain.MeasurementZone,
			Tags: map[string]string{
				"zoneId":   z.ID,
				"zoneName": z.Name,
			},
			Fields: map[string]interface{}{
				"totalAPs":        z.TotalAPs,
				"connectedAPs":    z.ConnectedAPs,
				"disconnectedAPs": z.DisconnectedAPs,
				"clients":         z.Clients,
				"apAvailability":  z.APAvailability,
				"clientsPerAP":    z.ClientsPerAP,
				"experienceScore": z.ExperienceScore,
				"utilization":     z.Utilization,
				"rxDesense":       z.RxDesense,
				"netflixScore":    z.NetflixScore,
			},
			Time: ts,
		})
	}

	for _, ap := range aps {
		batch = append(batch, domain.Measurement{
			Name: domain.MeasurementAccessPoint,
			Tags: map[string]string{
				"apMac":    ap.APMac,
				"apName":   ap.DeviceName,
				"zoneId":   ap.ZoneID,
				"zoneName": ap.ZoneName,
				"model":    ap.Model,
				"status":   ap.Status,
			},
			Fields: map[string]interface{}{
				"clientCount":    ap.NumClients,
				"clientCount24G": ap.NumClients24G,
				"clientCount5G":  ap.NumClients5G,
				"airtime24G":     ap.Airtime24G,
				"airtime5G":      ap.Airtime5G,
				"noise24G":       ap.Noise24G,
				"noise5G":        ap.Noise5G,
				"channel24G":     ap.Channel24GValue,
				"channel5G":      ap.Channel50GValue,
				"eirp24G":        ap.EIRP24G,
				"eirp5G":         ap.EIRP50G,
			},
			Time: ts,
		})
	}

	for _, c := range clients {
		batch = append(batch, domain.Measurement{
			Name: domain.MeasurementClient,
			Tags: map[string]string{
				"clientMac": c.ClientMac,
				"zoneId":    c.ZoneID,
				"apMac":     c.APMac,
				"apName":    c.APName,
				"ssid":      c.SSID,
				"osType":    c.OSType,
			},
			Fields: map[string]interface{}{
				"txBytes":      c.TxBytes,
				"rxBytes":      c.RxBytes,
				"txRxBytes":    c.TxRxBytes,
				"rssi":         c.RSSI,
				"snr":          c.SNR,
				"uplinkRate":   c.UplinkRate,
				"downlinkRate": c.DownlinkRate,
			},
			Time: ts,
		})
	}

	for _, share := range osDist {
		batch = append(batch, domain.Measurement{
			Name:   domain.MeasurementOSDistribution,
			Tags:   map[string]string{"os": share.OS},
			Fields: map[string]interface{}{"percentage": share.Percentage},
			Time:   ts,
		})
	}

	for _, host := range hostUsage {
		batch = append(batch, domain.Measurement{
			Name:   domain.MeasurementHostUsage,
			Tags:   map[string]string{"hostname": host.Hostname},
			Fields: map[string]interface{}{"dataUsage": host.DataUsageMB},
			Time:   ts,
		})
	}

	for _, d := range disconnects {
		batch = append(batch, domain.Measurement{
			Name: domain.MeasurementDisconnect,
			Tags: map[string]string{
				"apMac":     d.APMac,
				"apName":    d.APName,
				"zoneId":    d.ZoneID,
				"zoneName":  d.ZoneName,
				"model":     d.Model,
				"causeCode": strconv.Itoa(d.CauseCode),
			},
			Fields: map[string]interface{}{
				"causeCode":        d.CauseCode,
				"causeDescription": d.CauseDescription,
				"impactScore":      d.ImpactScore,
			},
			Time: ts,
		})
	}

	return batch
}
