package domain

// AccessPointRecord is an access point as reported by the controller's
// AP query endpoint. Controllers of different firmware generations
// disagree on identity and status field names, so the record carries
// every observed variant; resolution happens via FirstNonEmpty chains
// in the consuming services.
type AccessPointRecord struct {
	APMac        string `json:"apMac"`
	MAC          string `json:"mac"`
	APMacAddress string `json:"apMacAddress"`
	MACAddress   string `json:"macAddress"`

	DeviceName string `json:"deviceName"`
	Name       string `json:"name"`
	APName     string `json:"apName"`

	ZoneID   string `json:"zoneId"`
	ZoneName string `json:"zoneName"`
	Model    string `json:"model"`

	// Connectivity status variants. Any of the three may be populated
	// depending on controller version.
	Status            string `json:"status"`
	APConnectionState string `json:"apConnectionState"`
	ConnectionState   string `json:"connectionState"`

	NumClients    int `json:"numClients"`
	NumClients24G int `json:"numClients24G"`
	NumClients5G  int `json:"numClients5G"`

	Airtime24G float64 `json:"airtime24G"` // percent
	Airtime5G  float64 `json:"airtime5G"`
	Noise24G   float64 `json:"noise24G"` // dBm
	Noise5G    float64 `json:"noise5G"`

	RxDesense24G float64 `json:"rxDesense24G"`
	RxDesense5G  float64 `json:"rxDesense5G"`

	Channel24GValue int `json:"channel24gValue"`
	Channel50GValue int `json:"channel50gValue"`
	EIRP24G         int `json:"eirp24G"`
	EIRP50G         int `json:"eirp50G"`
}

// ResolvedMAC returns the first populated MAC identity field.
func (ap AccessPointRecord) ResolvedMAC() string {
	return FirstNonEmpty(ap.APMac, ap.MAC, ap.APMacAddress, ap.MACAddress)
}

// ResolvedName returns the first populated device name field.
func (ap AccessPointRecord) ResolvedName() string {
	return FirstNonEmpty(ap.DeviceName, ap.Name, ap.APName)
}

// FirstNonEmpty returns the first non-empty candidate, or "" when all
// candidates are empty.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
