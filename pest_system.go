package main

// pestStressPerSeverity is the stress added to a susceptible plant per unit
// of an active pest's severity each tick it remains active. Reuses the
// stress system's severity-to-stress scale (disease stressors land in the
// 0.06-0.10 band) so a moderate infestation (severity ~0.5) contributes
// comparably to one disease stressor. Recorded as an Open Question
// resolution in DESIGN.md.
const pestStressPerSeverity = 0.15

// pestSystem applies every pest event active this week to living plants of
// a targeted family.
func pestSystem(w *World, ctx *TickContext) {
	active := ActivePestsAt(ctx.PestEvents, ctx.Week)
	if len(active) == 0 {
		return
	}

	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}

		touched := false
		for _, ev := range active {
			if !pestTargetsFamily(ctx, ev.PestID, sp.Family) {
				continue
			}
			p.Health.Stress = clamp(p.Health.Stress+ev.Severity*pestStressPerSeverity, 0, 1)
			touched = true
		}
		if !touched {
			continue
		}

		conditionPenalty := 0.0
		for _, c := range p.Conditions {
			conditionPenalty += float64(c.CurrentStage)
		}
		p.Health.Value = clamp(1-0.7*p.Health.Stress-0.1*conditionPenalty, 0, 1)
	}
}
