package domain

// ClientRecord is a wireless client as reported by the controller's
// client query endpoint.
type ClientRecord struct {
	ClientMac    string  `json:"clientMac"`
	Hostname     string  `json:"hostname"`
	ModelName    string  `json:"modelName"`
	IPAddress    string  `json:"ipAddress"`
	IPv6Address  string  `json:"ipv6Address"`
	ZoneID       string  `json:"zoneId"`
	APMac        string  `json:"apMac"`
	APName       string  `json:"apName"`
	SSID         string  `json:"ssid"`
	OSType       string  `json:"osType"`
	OSVendorType string  `json:"osVendorType"`
	DeviceType   string  `json:"deviceType"`
	RSSI         float64 `json:"rssi"` // dBm; zero means not reported
	SNR          float64 `json:"snr"`
	TxBytes      int64   `json:"txBytes"`
	RxBytes      int64   `json:"rxBytes"`
	TxRxBytes    int64   `json:"txRxBytes"`
	UplinkRate   float64 `json:"uplinkRate"`
	DownlinkRate float64 `json:"downlinkRate"`
}

// ClientInsight is the normalized, dashboard-facing view of a client.
type ClientInsight struct {
	Hostname    string  `json:"hostname"`
	ModelName   string  `json:"modelName"`
	IPAddress   string  `json:"ipAddress"`
	MACAddress  string  `json:"macAddress"`
	WLAN        string  `json:"wlan"`
	APName      string  `json:"apName"`
	APMac       string  `json:"apMac"`
	DataUsageMB float64 `json:"dataUsage"` // MB, 1 decimal
	OS          string  `json:"os"`
	DeviceType  string  `json:"deviceType"`
}

// OSShare is one slice of the per-cycle OS distribution.
type OSShare struct {
	OS         string  `json:"os"`
	Percentage float64 `json:"percentage"` // 2 decimals
	Color      string  `json:"color"`
}

// HostUsage is one entry of the per-cycle top-talker list.
type HostUsage struct {
	Hostname    string  `json:"hostname"`
	DataUsageMB float64 `json:"dataUsage"`
}
