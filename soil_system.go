package main

// soilSystem updates soil state from weather, plants, and amendments. No
// randomness is consumed, so plot iteration order has no determinism
// consequence — but the system still processes plots in row-major order,
// as every other pass over plots does.
func soilSystem(w *World, ctx *TickContext) {
	avgTemp := (ctx.Weather.TempHighC + ctx.Weather.TempLowC) / 2
	targetSoilTemp := avgTemp

	droughtPenalty := 0.0
	if ctx.Weather.Special == "drought" {
		if def, ok := eventByName("drought"); ok {
			droughtPenalty = def.MoisturePenalty
		}
	}

	for _, plot := range w.Plots() {
		applyAmendments(plot, ctx.Week)

		// Moisture.
		evaporation := clamp(0.02+avgTemp*0.002, 0, 0.2)
		plot.Soil.Moisture += ctx.Weather.PrecipitationMM / 100
		plot.Soil.Moisture -= evaporation
		plot.Soil.Moisture -= droughtPenalty

		// Soil temperature: the per-tick approach rate shrinks as organic
		// matter grows, so a high-OM plot changes temperature more slowly.
		insulation := 0.3 - 0.15*plot.Soil.OrganicMatter
		plot.Soil.TemperatureC += (targetSoilTemp - plot.Soil.TemperatureC) * insulation

		// Nutrient uptake, compounding across every living plant on the
		// plot.
		for _, p := range w.LivingPlants() {
			if p.Row != plot.Row || p.Col != plot.Col {
				continue
			}
			sp, ok := lookupSpecies(ctx, p.SpeciesID)
			if !ok {
				continue
			}
			base := 0.01 + 0.02*p.Growth.Progress
			plot.Soil.Nitrogen -= base * sp.NutrientDemand["nitrogen"]
			plot.Soil.Phosphorus -= base * sp.NutrientDemand["phosphorus"]
			plot.Soil.Potassium -= base * sp.NutrientDemand["potassium"]
		}

		// Organic matter: slow decay.
		plot.Soil.OrganicMatter -= 0.02

		// Biology: chases organic matter.
		if plot.Soil.Biology < plot.Soil.OrganicMatter {
			plot.Soil.Biology += 0.03
		} else if plot.Soil.Biology > plot.Soil.OrganicMatter {
			plot.Soil.Biology -= 0.03
		}

		plot.Soil.Clamp()
	}
}

func applyAmendments(plot *Plot, week int) {
	var remaining []PendingAmendment
	for _, a := range plot.Pending {
		if a.AppliedWeek+a.EffectDelayWeeks <= week {
			for field, delta := range a.Effects {
				applySoilDelta(&plot.Soil, field, delta)
			}
			continue // consumed, drop from the queue
		}
		remaining = append(remaining, a)
	}
	plot.Pending = remaining
}

func applySoilDelta(s *Soil, field string, delta float64) {
	switch field {
	case "ph":
		s.PH += delta
	case "nitrogen":
		s.Nitrogen += delta
	case "phosphorus":
		s.Phosphorus += delta
	case "potassium":
		s.Potassium += delta
	case "organic_matter":
		s.OrganicMatter += delta
	case "moisture":
		s.Moisture += delta
	case "compaction":
		s.Compaction += delta
	case "biology":
		s.Biology += delta
	}
}
