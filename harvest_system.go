package main

func immatureForHarvest(stage StageId) bool {
	return stage == StageSeed || stage == StageGermination || stage == StageSeedling
}

// harvestSystem ripens, degrades, and refreshes continuous-harvest
// plants. "First entry" is tracked without an extra field: Quality's zero
// value only ever occurs before a plant's first ripening, since
// degradation floors at 0.1 and never returns to 0.
func harvestSystem(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}
		if immatureForHarvest(p.Growth.Stage) {
			continue
		}
		if p.Health.Value < 0.3 {
			continue
		}

		weeksSincePlanting := ctx.Week - p.PlantedWeek
		win := sp.Harvest.Window
		inWindow := weeksSincePlanting >= win.StartWeek && weeksSincePlanting <= win.EndWeek

		if !inWindow {
			p.Harvest.Ripe = false
			continue
		}

		switch {
		case p.Harvest.Quality == 0:
			p.Harvest = HarvestState{Ripe: true, Remaining: sp.Harvest.YieldPotential, Quality: 1.0}
		case p.Harvest.Ripe:
			p.Harvest.Quality = clamp(p.Harvest.Quality-0.15, 0.1, 1)
		case sp.Harvest.ContinuousHarvest && p.Harvest.Remaining > 0:
			p.Harvest.Ripe = true
		}
	}
}
