// Package causes assigns plausible disconnect cause codes to offline
// access points. Assignments are synthetic, sampled from a static
// weighted table, and exist to keep disconnect dashboards populated;
// they are not derived from diagnostic telemetry.
package causes

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/airlens/airmon/internal/core/domain"
)

// ruggedModelOverrideChance is the probability that an outdoor or
// industrial model (anything with a T or H in the model string) gets
// its sample replaced by a power/network/heartbeat cause.
const ruggedModelOverrideChance = 0.3

// Assigner samples disconnect causes for offline APs. The random
// source is injected so tests and concurrent collectors own their own
// sequence.
//
// RNG stream contract, pinned by the tests: each Assign consumes one
// Intn for the weighted base draw, then, only when the model heuristic
// applies, one Float64 and (if the override fires) one more Intn.
type Assigner struct {
	rng *rand.Rand

	defs []domain.CauseCodeDefinition
	// cumulative[i] is the sum of weights of defs[0..i]; the sampler
	// binary-searches it so selection stays O(log n) regardless of
	// weight magnitudes.
	cumulative []int
	total      int
	// overrideSubset indexes defs entries whose description mentions
	// power, network or heartbeat.
	overrideSubset []int
}

// NewAssigner creates an assigner drawing from rng. The rng must not
// be shared with other consumers if reproducible sequences matter.
func NewAssigner(rng *rand.Rand) *Assigner {
	defs := Definitions()

	a := &Assigner{
		rng:        rng,
		defs:       defs,
		cumulative: make([]int, len(defs)),
	}
	for i, def := range defs {
		a.total += def.Weight
		a.cumulative[i] = a.total

		desc := strings.ToLower(def.Description)
		if strings.Contains(desc, "power") ||
			strings.Contains(desc, "network") ||
			strings.Contains(desc, "heartbeat") {
			a.overrideSubset = append(a.overrideSubset, i)
		}
	}
	return a
}

// Assign samples one disconnect cause for ap and copies its identity
// fields through, defaulting every missing field to the empty string.
func (a *Assigner) Assign(ap domain.AccessPointRecord) domain.CauseCodeAssignment {
	def := a.sample()

	// Outdoor/industrial hardware fails disproportionately through
	// power and backhaul, so bias those models toward infrastructure
	// causes.
	if modelSuggestsRugged(ap.Model) && a.rng.Float64() < ruggedModelOverrideChance {
		if len(a.overrideSubset) > 0 {
			def = a.defs[a.overrideSubset[a.rng.Intn(len(a.overrideSubset))]]
		}
	}

	return domain.CauseCodeAssignment{
		APMac:            ap.ResolvedMAC(),
		APName:           ap.ResolvedName(),
		ZoneID:           ap.ZoneID,
		ZoneName:         ap.ZoneName,
		Model:            ap.Model,
		CauseCode:        def.Code,
		CauseDescription: def.Description,
		ImpactScore:      def.ImpactScore,
	}
}

// AssignAll assigns a cause to every AP independently, preserving
// input order. Empty input yields an empty result.
func (a *Assigner) AssignAll(aps []domain.AccessPointRecord) []domain.CauseCodeAssignment {
	assignments := make([]domain.CauseCodeAssignment, 0, len(aps))
	for _, ap := range aps {
		assignments = append(assignments, a.Assign(ap))
	}
	return assignments
}

// sample draws one definition with probability weight/total.
func (a *Assigner) sample() domain.CauseCodeDefinition {
	pick := a.rng.Intn(a.total)
	idx := sort.Search(len(a.cumulative), func(i int) bool {
		return a.cumulative[i] > pick
	})
	return a.defs[idx]
}

func modelSuggestsRugged(model string) bool {
	return strings.ContainsAny(strings.ToUpper(model), "TH")
}
