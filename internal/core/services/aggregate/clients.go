package aggregate

import (
	"sort"
	"strings"

	"github.com/airlens/airmon/internal/core/domain"
)

// DefaultHostUsageLimit caps the per-cycle top-talker list.
const DefaultHostUsageLimit = 10

// osColors is the fixed dashboard palette for OS distribution slices.
var osColors = map[string]string{
	"iOS":                  "#8B5CF6",
	"Android":              "#3B82F6",
	"Unknown":              "#1E3A5F",
	"Chrome OS/Chromebook": "#10B981",
	"macOS":                "#D1D5DB",
	"Windows":              "#6B7280",
}

const fallbackColor = "#6B7280"

// NormalizeClients maps raw client records onto their dashboard view:
// hostname fallback, data usage in MB, and normalized OS and device
// type labels.
func (a *Aggregator) NormalizeClients(clients []domain.ClientRecord) []domain.ClientInsight {
	insights := make([]domain.ClientInsight, 0, len(clients))
	for _, c := range clients {
		hostname := c.Hostname
		if hostname == "" {
			hostname = c.ClientMac
		}
		modelName := c.ModelName
		if modelName == "" {
			modelName = "Unknown"
		}
		ipv6 := c.IPv6Address
		if ipv6 == "" {
			ipv6 = "::"
		}

		usageMB := float64(c.TxBytes+c.RxBytes) / (1024 * 1024)

		insights = append(insights, domain.ClientInsight{
			Hostname:    hostname,
			ModelName:   modelName,
			IPAddress:   c.IPAddress + " /" + ipv6,
			MACAddress:  c.ClientMac,
			WLAN:        c.SSID,
			APName:      c.APName,
			APMac:       c.APMac,
			DataUsageMB: round1(usageMB),
			OS:          normalizeOS(c.OSType, c.OSVendorType),
			DeviceType:  normalizeDeviceType(c.DeviceType),
		})
	}
	return insights
}

// OSDistribution computes the per-OS share of the cycle's client
// population, largest share first.
func (a *Aggregator) OSDistribution(insights []domain.ClientInsight) []domain.OSShare {
	if len(insights) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, in := range insights {
		os := in.OS
		if os == "" {
			os = "Unknown"
		}
		counts[os]++
	}

	shares := make([]domain.OSShare, 0, len(counts))
	total := len(insights)
	for os, count := range counts {
		color, ok := osColors[os]
		if !ok {
			color = fallbackColor
		}
		shares = append(shares, domain.OSShare{
			OS:         os,
			Percentage: round2(float64(count) / float64(total) * 100),
			Color:      color,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].OS < shares[j].OS
	})
	return shares
}

// TopHostUsage sums data usage per hostname and returns at most limit
// entries, heaviest first.
func (a *Aggregator) TopHostUsage(insights []domain.ClientInsight, limit int) []domain.HostUsage {
	usage := make(map[string]float64)
	for _, in := range insights {
		usage[in.Hostname] += in.DataUsageMB
	}

	hosts := make([]domain.HostUsage, 0, len(usage))
	for hostname, mb := range usage {
		hosts = append(hosts, domain.HostUsage{Hostname: hostname, DataUsageMB: round1(mb)})
	}
	sort.Slice(hosts, func(i, j int) bool {
		if hosts[i].DataUsageMB != hosts[j].DataUsageMB {
			return hosts[i].DataUsageMB > hosts[j].DataUsageMB
		}
		return hosts[i].Hostname < hosts[j].Hostname
	})
	if limit > 0 && len(hosts) > limit {
		hosts = hosts[:limit]
	}
	return hosts
}

// normalizeOS collapses the controller's free-form OS strings into the
// fixed set of dashboard labels.
func normalizeOS(osType, osVendor string) string {
	switch {
	case strings.Contains(osType, "iOS") || osVendor == "iOS":
		return "iOS"
	case strings.Contains(osType, "Android") || osVendor == "Android":
		return "Android"
	case strings.Contains(osType, "Windows"):
		return "Windows"
	case strings.Contains(osType, "Mac") || strings.Contains(osType, "macOS"):
		return "macOS"
	case strings.Contains(osType, "Chrome"):
		return "Chrome OS/Chromebook"
	default:
		return "Unknown"
	}
}

func normalizeDeviceType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "phone") || strings.Contains(lower, "smartphone"):
		return "phone"
	case strings.Contains(lower, "laptop") || strings.Contains(lower, "notebook"):
		return "laptop"
	case strings.Contains(lower, "tablet"):
		return "tablet"
	default:
		return "other"
	}
}
