package main

// Stress deltas for pH deviation and temperature distance — chosen in the
// same 0.06-0.10 band used for the factors that are quantified elsewhere
// (moisture, nutrients). Recorded as an Open Question resolution in
// DESIGN.md.
const (
	phStressDelta   = 0.07
	tempStressDelta = 0.08
)

// stressSystem accumulates or recovers each living plant's stress, then
// derives health from stress plus active-condition severity.
func stressSystem(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}
		plot := w.PlotAt(p.Row, p.Col)
		if plot == nil {
			continue
		}

		delta := 0.0

		if absf(plot.Soil.PH-sp.IdealPH) > 1.0 {
			delta += phStressDelta
		}

		moistureDev := plot.Soil.Moisture - sp.IdealMoisture
		if moistureDev > 0.25 {
			delta += 0.08
		} else if moistureDev < -0.25 {
			delta += 0.10
		}

		if absf(plot.Soil.TemperatureC-sp.IdealSoilTemp) > 10 {
			delta += tempStressDelta
		}

		for _, nutrient := range []string{"nitrogen", "phosphorus", "potassium"} {
			ideal := sp.NutrientIdeal[nutrient]
			var have float64
			switch nutrient {
			case "nitrogen":
				have = plot.Soil.Nitrogen
			case "phosphorus":
				have = plot.Soil.Phosphorus
			case "potassium":
				have = plot.Soil.Potassium
			}
			if ideal > 0 && have < 0.5*ideal {
				delta += 0.06
			}
		}

		switch {
		case delta == 0:
			delta = -0.06
		case delta < 0.04:
			// Every individual stressor above adds at least 0.06, so a
			// nonzero delta never actually lands below 0.04 — this branch
			// is a floor for if a smaller stressor is ever added later.
			delta = -0.02
		}

		p.Health.Stress = clamp(p.Health.Stress+delta, 0, 1)

		conditionPenalty := 0.0
		for _, c := range p.Conditions {
			conditionPenalty += float64(c.CurrentStage)
		}
		p.Health.Value = clamp(1-0.7*p.Health.Stress-0.1*conditionPenalty, 0, 1)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
