package engine

import "github.com/rsned/tacticus-planner/pkg/tacticus"

// LimitByEnergy restricts estimates to a daily energy budget, in priority
// order. Materials are taken whole while they fit; the first one that does
// not fit is scaled down to the remaining energy and ends the list. A
// budget of zero or less means unlimited. The input is not modified.
func LimitByEnergy(estimates []tacticus.ShardEstimate, budget int) []tacticus.ShardEstimate {
	if budget <= 0 {
		return estimates
	}

	left := float64(budget)
	limited := make([]tacticus.ShardEstimate, 0, len(estimates))
	for _, est := range estimates {
		if est.EnergyPerDay <= left {
			limited = append(limited, est)
			left -= est.EnergyPerDay
			continue
		}

		if left > 0 {
			limited = append(limited, scaleEstimate(est, left/est.EnergyPerDay))
		}
		break
	}

	return limited
}

// scaleEstimate returns a copy of est with its campaign locations' daily
// figures scaled by fraction.
func scaleEstimate(est tacticus.ShardEstimate, fraction float64) tacticus.ShardEstimate {
	scaled := est
	scaled.RaidsLocations = make([]tacticus.RaidLocation, len(est.RaidsLocations))
	copy(scaled.RaidsLocations, est.RaidsLocations)

	for i := range scaled.RaidsLocations {
		loc := &scaled.RaidsLocations[i]
		if loc.Kind != tacticus.LocationKindCampaign {
			continue
		}
		loc.EnergyPerDay *= fraction
		loc.ItemsPerDay *= fraction
		loc.DailyBattleCount *= fraction
	}
	scaled.EnergyPerDay = est.EnergyPerDay * fraction

	return scaled
}
