package main

// FrostResult is what frostSystem contributes to a week's TickResult.
// Killed lists one entry per plant killed, including duplicate species
// ids.
type FrostResult struct {
	KillingFrost bool
	Killed       []string
}

func killThreshold(t FrostTolerance) (threshold float64, neverKilled bool) {
	switch t {
	case ToleranceNone:
		return 0, false
	case ToleranceLight:
		return 0.5, false
	case ToleranceModerate:
		return 0.8, false
	case ToleranceHard:
		return 0, true
	default:
		return 0, false
	}
}

// frostSystem applies the week's pre-generated frost outcome. Whether a
// killing frost occurs this week was already decided when the weather
// schedule was generated — this system only resolves per-plant severity
// and tolerance, never re-rolls the frost-or-not decision.
func frostSystem(w *World, ctx *TickContext) {
	if !ctx.Weather.Frost {
		return
	}

	result := FrostResult{KillingFrost: true}

	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}
		severity := 0.5 + ctx.RNG.Next()*0.5
		threshold, neverKilled := killThreshold(sp.Tolerance)
		if neverKilled || severity <= threshold {
			continue
		}

		if p.Perennial != nil {
			p.Perennial.Dormant = true
			continue
		}
		p.Dead = true
		result.Killed = append(result.Killed, p.SpeciesID)
	}

	ctx.Frost = result
}
