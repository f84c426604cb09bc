package domain

// CauseCodeDefinition is one entry of the static disconnect-cause
// reference table: an 802.11-style reason code, its description, a
// relative sampling weight and a fixed impact score. The table is
// business configuration, never derived from live data.
type CauseCodeDefinition struct {
	Code        int     `json:"code"`
	Description string  `json:"description"`
	Weight      int     `json:"weight"`
	ImpactScore float64 `json:"impactScore"`
}

// CauseCodeAssignment pairs an offline access point with a sampled
// disconnect cause for one polling cycle.
type CauseCodeAssignment struct {
	APMac            string  `json:"apMac"`
	APName           string  `json:"apName"`
	ZoneID           string  `json:"zoneId"`
	ZoneName         string  `json:"zoneName"`
	Model            string  `json:"model"`
	CauseCode        int     `json:"causeCode"`
	CauseDescription string  `json:"causeDescription"`
	ImpactScore      float64 `json:"impactScore"`
}
