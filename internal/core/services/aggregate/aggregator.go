// Package aggregate derives per-zone and venue-level
// quality-of-experience metrics from one polling cycle's raw
// controller inventory. All computation is pure and deterministic;
// derived values are recomputed from zero every cycle.
package aggregate

import (
	"math"

	"github.com/airlens/airmon/internal/core/domain"
)

// slaAvailabilityThreshold is the AP availability (percent) a zone must
// reach to count as SLA compliant.
const slaAvailabilityThreshold = 95.0

// netflixFactor derives the streaming score from the experience score.
const netflixFactor = 0.95

// Aggregator computes zone and venue metrics. It is stateless and safe
// for reuse across cycles.
type Aggregator struct{}

// NewAggregator creates a new metric aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// BuildZoneMetrics derives one ZoneMetrics per input zone. AP and
// client records are matched to zones by zone id; records referencing
// unknown zones are ignored. Inputs are not mutated.
func (a *Aggregator) BuildZoneMetrics(
	zones []domain.ZoneRecord,
	aps []domain.AccessPointRecord,
	clients []domain.ClientRecord,
) []domain.ZoneMetrics {
	apsByZone := make(map[string][]domain.AccessPointRecord, len(zones))
	for _, ap := range aps {
		apsByZone[ap.ZoneID] = append(apsByZone[ap.ZoneID], ap)
	}
	clientsByZone := make(map[string][]domain.ClientRecord, len(zones))
	for _, c := range clients {
		clientsByZone[c.ZoneID] = append(clientsByZone[c.ZoneID], c)
	}

	metrics := make([]domain.ZoneMetrics, 0, len(zones))
	for _, z := range zones {
		zm := normalizeZone(z)
		applyRadioMetrics(&zm, apsByZone[z.ID])
		applyExperienceScore(&zm, clientsByZone[z.ID])
		metrics = append(metrics, zm)
	}
	return metrics
}

// BuildVenueSummary aggregates a cycle's zone metrics into the single
// venue record. The experience average only considers zones with a
// positive score, so zones without any reporting clients don't drag
// the venue down.
func (a *Aggregator) BuildVenueSummary(zones []domain.ZoneMetrics) domain.VenueSummary {
	summary := domain.VenueSummary{
		Name:       "Main Venue",
		TotalZones: len(zones),
	}

	var scoreSum float64
	var scored, compliant int
	for _, z := range zones {
		summary.TotalAPs += z.TotalAPs
		summary.TotalClients += z.Clients
		if z.ExperienceScore > 0 {
			scoreSum += z.ExperienceScore
			scored++
		}
		if z.APAvailability >= slaAvailabilityThreshold {
			compliant++
		}
	}

	if scored > 0 {
		summary.AvgExperienceScore = round1(scoreSum / float64(scored))
	}
	if len(zones) > 0 {
		summary.SLACompliance = round1(float64(compliant) / float64(len(zones)) * 100)
	}
	return summary
}

// normalizeZone maps the controller's raw counters onto a ZoneMetrics
// with availability and load ratios. Derived radio and experience
// fields start at zero and are filled in by the apply* steps.
func normalizeZone(z domain.ZoneRecord) domain.ZoneMetrics {
	zm := domain.ZoneMetrics{
		ID:              z.ID,
		Name:            z.ZoneName,
		TotalAPs:        z.APCountOnline + z.APCountOffline,
		ConnectedAPs:    z.APCountOnline,
		DisconnectedAPs: z.APCountOffline,
		Clients:         z.ClientCount,
	}
	if zm.TotalAPs > 0 {
		zm.APAvailability = round1(float64(zm.ConnectedAPs) / float64(zm.TotalAPs) * 100)
	}
	if zm.ConnectedAPs > 0 {
		zm.ClientsPerAP = round2(float64(zm.Clients) / float64(zm.ConnectedAPs))
	}
	return zm
}

// applyRadioMetrics fills in the airtime-utilization proxy and rx
// desense from the zone's AP records. An AP contributes a utilization
// sample only when it reports airtime on at least one band.
func applyRadioMetrics(zm *domain.ZoneMetrics, aps []domain.AccessPointRecord) {
	var utilSamples, desenses []float64
	for _, ap := range aps {
		if ap.Airtime24G > 0 || ap.Airtime5G > 0 {
			utilSamples = append(utilSamples, (ap.Airtime24G+ap.Airtime5G)/2)
		}
		if ap.RxDesense24G != 0 {
			desenses = append(desenses, ap.RxDesense24G)
		}
		if ap.RxDesense5G != 0 {
			desenses = append(desenses, ap.RxDesense5G)
		}
	}
	if len(utilSamples) > 0 {
		zm.Utilization = round1(mean(utilSamples))
	}
	if len(desenses) > 0 {
		zm.RxDesense = round1(mean(desenses))
	}
}

// applyExperienceScore maps the zone's mean client RSSI onto the 0-100
// experience scale. Unreported (zero) RSSI values are skipped; a zone
// without any reporting clients keeps a zero score.
func applyExperienceScore(zm *domain.ZoneMetrics, clients []domain.ClientRecord) {
	var rssis []float64
	for _, c := range clients {
		if c.RSSI != 0 {
			rssis = append(rssis, c.RSSI)
		}
	}
	if len(rssis) == 0 {
		return
	}
	score := experienceFromRSSI(mean(rssis))
	zm.ExperienceScore = round1(score)
	zm.NetflixScore = round1(score * netflixFactor)
}

// experienceFromRSSI is the piecewise linear RSSI-to-score mapping:
// -50 dBm and above is perfect, -70..-50 good, -85..-70 fair, anything
// weaker degrades steeply. The lowest band intentionally uses a x60
// slope and is not continuous with the band above it; the shape is a
// long-standing business constant and must not be smoothed out.
func experienceFromRSSI(rssi float64) float64 {
	var score float64
	switch {
	case rssi >= -50:
		score = 100
	case rssi >= -70:
		score = 80 + ((rssi+70)/20)*20
	case rssi >= -85:
		score = 60 + ((rssi+85)/15)*20
	default:
		score = math.Max(0, 60+((rssi+85)/15)*60)
	}
	return clamp(score, 0, 100)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
