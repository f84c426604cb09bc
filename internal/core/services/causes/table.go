package causes

import "github.com/airlens/airmon/internal/core/domain"

// causeTable is the static disconnect-cause reference table: 802.11
// reason codes plus vendor-specific codes (200+) for controller-side
// failures. Weights and impact scores are fixed business constants
// tuned against historical incident distributions; they are loaded
// once and never mutated.
var causeTable = []domain.CauseCodeDefinition{
	{Code: 1, Description: "Unspecified reason", Weight: 87, ImpactScore: 14.3},
	{Code: 2, Description: "Previous authentication no longer valid", Weight: 54, ImpactScore: 12.5},
	{Code: 3, Description: "Deauthenticated - leaving or left BSS", Weight: 38, ImpactScore: 17.4},
	{Code: 4, Description: "Disassociated due to inactivity", Weight: 39, ImpactScore: 13.0},
	{Code: 5, Description: "Disassociated - AP unable to handle all STAs", Weight: 99, ImpactScore: 21.5},
	{Code: 6, Description: "Class 2 frame received from nonauthenticated STA", Weight: 10, ImpactScore: 8.5},
	{Code: 7, Description: "Class 3 frame received from nonassociated STA", Weight: 98, ImpactScore: 8.5},
	{Code: 8, Description: "Disassociated - STA has left BSS", Weight: 30, ImpactScore: 17.8},
	{Code: 15, Description: "4-way handshake timeout", Weight: 15, ImpactScore: 15.2},
	{Code: 25, Description: "Disassociated due to insufficient QoS", Weight: 213, ImpactScore: 73.7},
	{Code: 34, Description: "Disassociated due to excessive frame loss or poor channel conditions", Weight: 87, ImpactScore: 15.2},
	{Code: 45, Description: "Peer unreachable", Weight: 25, ImpactScore: 28.3},
	{Code: 47, Description: "Requested from peer", Weight: 20, ImpactScore: 23.2},
	{Code: 200, Description: "AP lost heartbeat with controller", Weight: 8, ImpactScore: 45.0},
	{Code: 201, Description: "AP firmware update in progress", Weight: 5, ImpactScore: 12.0},
	{Code: 202, Description: "AP power failure or reboot", Weight: 5, ImpactScore: 25.0},
	{Code: 203, Description: "Network connectivity issue", Weight: 5, ImpactScore: 30.0},
	{Code: 204, Description: "AP configuration error", Weight: 3, ImpactScore: 15.0},
}

// Definitions returns a copy of the cause-code table. Callers may not
// reach the backing array.
func Definitions() []domain.CauseCodeDefinition {
	defs := make([]domain.CauseCodeDefinition, len(causeTable))
	copy(defs, causeTable)
	return defs
}

// TotalWeight returns the sum of all sampling weights (841 for the
// shipped table).
func TotalWeight() int {
	var total int
	for _, def := range causeTable {
		total += def.Weight
	}
	return total
}
