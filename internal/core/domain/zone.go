package domain

// ZoneRecord is a zone descriptor as reported by the controller's
// zone query endpoint. Counts arrive pre-aggregated; missing numeric
// fields decode to zero.
type ZoneRecord struct {
	ID             string `json:"id"`
	ZoneName       string `json:"zoneName"`
	APCountOnline  int    `json:"apCountOnline"`
	APCountOffline int    `json:"apCountOffline"`
	ClientCount    int    `json:"clientCount"`
}

// ZoneMetrics holds the derived per-zone metrics for one polling cycle.
// Instances are recomputed from scratch every cycle and never mutated
// after construction.
type ZoneMetrics struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	TotalAPs        int     `json:"totalAPs"`
	ConnectedAPs    int     `json:"connectedAPs"`
	DisconnectedAPs int     `json:"disconnectedAPs"`
	Clients         int     `json:"clients"`
	APAvailability  float64 `json:"apAvailability"` // percent, 1 decimal
	ClientsPerAP    float64 `json:"clientsPerAP"`   // 2 decimals
	ExperienceScore float64 `json:"experienceScore"`
	Utilization     float64 `json:"utilization"`
	RxDesense       float64 `json:"rxDesense"`
	NetflixScore    float64 `json:"netflixScore"`
}

// VenueSummary aggregates all zone metrics of a cycle into one
// venue-level record.
type VenueSummary struct {
	Name               string  `json:"name"`
	TotalZones         int     `json:"totalZones"`
	TotalAPs           int     `json:"totalAPs"`
	TotalClients       int     `json:"totalClients"`
	AvgExperienceScore float64 `json:"avgExperienceScore"`
	SLACompliance      float64 `json:"slaCompliance"`
}
