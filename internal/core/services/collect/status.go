package collect

import (
	"strings"

	"github.com/airlens/airmon/internal/core/domain"
)

// IsOffline classifies an AP's connectivity from its status-bearing
// fields. An AP is offline when any field says so explicitly, or when
// no field claims it is online or connected — an AP the controller
// can't vouch for is treated as offline rather than healthy.
func IsOffline(ap domain.AccessPointRecord) bool {
	status := strings.ToLower(ap.Status)
	apState := strings.ToLower(ap.APConnectionState)
	connState := strings.ToLower(ap.ConnectionState)

	if status == "offline" || apState == "offline" || connState == "offline" {
		return true
	}
	return !isOnline(status) && !isOnline(apState) && !isOnline(connState)
}

func isOnline(state string) bool {
	return state == "online" || state == "connected"
}

// FilterOffline returns the subset of aps currently classified
// offline, preserving input order.
func FilterOffline(aps []domain.AccessPointRecord) []domain.AccessPointRecord {
	var offline []domain.AccessPointRecord
	for _, ap := range aps {
		if IsOffline(ap) {
			offline = append(offline, ap)
		}
	}
	return offline
}
