package main

// spreadSystem runs the four sub-passes in order: disease spread, runner
// spread, self-seed flagging, weed pressure. Each sub-pass snapshots the
// plants/plots it iterates before mutating the world, so new entities
// born mid-pass never feed back into the pass that created them — no
// system allocates entities outside itself, and entity creation order
// must never depend on map iteration.
func spreadSystem(w *World, ctx *TickContext) {
	diseaseSpread(w, ctx)
	runnerSpread(w, ctx)
	selfSeedFlag(w, ctx)
	weedPressure(w, ctx)
}

func diseaseSpread(w *World, ctx *TickContext) {
	sources := w.LivingPlants()

	type spreadEvent struct {
		target      *Plant
		conditionID string
	}
	var events []spreadEvent

	for _, src := range sources {
		srcSp, ok := lookupSpecies(ctx, src.SpeciesID)
		if !ok {
			continue
		}
		for _, cond := range src.Conditions {
			vuln, ok := srcSp.vulnerability(cond.ConditionID)
			if !ok {
				continue
			}
			if cond.CurrentStage > vuln.maxSymptomStage() || cond.CurrentStage < 0 {
				continue
			}
			if !vuln.Symptoms[cond.CurrentStage].Spreads {
				continue
			}

			for _, tgt := range sources {
				if tgt.ID == src.ID {
					continue
				}
				if chebyshevDistance(src.Row, src.Col, tgt.Row, tgt.Col) > vuln.SpreadRadius {
					continue
				}
				tgtSp, ok := lookupSpecies(ctx, tgt.SpeciesID)
				if !ok {
					continue
				}
				tgtVuln, ok := tgtSp.vulnerability(cond.ConditionID)
				if !ok {
					continue
				}
				if tgt.Growth.Stage < tgtVuln.MinStage || immuneStage(tgt.Growth.Stage) {
					continue
				}
				if tgt.HasCondition(cond.ConditionID) {
					continue
				}

				p := cond.Severity * tgtVuln.Susceptibility * 0.5
				if ctx.RNG.Bernoulli(p) {
					events = append(events, spreadEvent{target: tgt, conditionID: cond.ConditionID})
				}
			}
		}
	}

	for _, ev := range events {
		if ev.target.HasCondition(ev.conditionID) {
			continue // a prior event this same pass already infected it
		}
		ev.target.Conditions = append(ev.target.Conditions, ActiveCondition{
			ConditionID:  ev.conditionID,
			OnsetWeek:    ctx.Week,
			CurrentStage: 0,
			Severity:     0.1,
		})
	}
}

func runnerSpread(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok || sp.Spreading.Runner == nil {
			continue
		}
		runner := sp.Spreading.Runner
		if p.Growth.Stage < runner.MinStage {
			continue
		}
		if !ctx.RNG.Bernoulli(runner.Rate) {
			continue
		}

		var candidates []struct{ Row, Col int }
		for _, n := range ChebyshevNeighbors(w, p.Row, p.Col, runner.Radius) {
			if w.PlantAt(n.Row, n.Col) != nil || w.WeedAt(n.Row, n.Col) != nil {
				continue
			}
			candidates = append(candidates, n)
		}
		if len(candidates) == 0 {
			continue
		}
		chosen := Pick(ctx.RNG, candidates)
		w.AddSeedling(chosen.Row, chosen.Col, p.SpeciesID, ctx.Week, 0.15, StageSeedling, 0.8, 0.1)
	}
}

func selfSeedFlag(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok || sp.Spreading.SelfSeed == nil {
			continue
		}
		if p.Growth.Stage != StageFruiting && p.Growth.Stage != StageSenescence {
			continue
		}
		if ctx.RNG.Bernoulli(sp.Spreading.SelfSeed.Rate) {
			p.SelfSeeded = true
		}
	}
}

func weedPressure(w *World, ctx *TickContext) {
	for _, wp := range w.Weeds() {
		wp.Weed.Severity = clamp(wp.Weed.Severity+0.05, 0, 1)
		plot := w.PlotAt(wp.Row, wp.Col)
		if plot == nil {
			continue
		}
		plot.Soil.Nitrogen -= 0.02 * wp.Weed.Severity
		plot.Soil.Phosphorus -= 0.02 * wp.Weed.Severity
		plot.Soil.Potassium -= 0.02 * wp.Weed.Severity
		plot.Soil.Moisture -= 0.015 * wp.Weed.Severity
		plot.Soil.Clamp()
	}

	for _, plot := range w.Plots() {
		if w.PlantAt(plot.Row, plot.Col) != nil || w.WeedAt(plot.Row, plot.Col) != nil {
			continue
		}
		fertility := (plot.Soil.Nitrogen + plot.Soil.Phosphorus + plot.Soil.Potassium) / 3
		warmth := clamp(plot.Soil.TemperatureC/30, 0, 1)
		prob := 0.08 * (1 + fertility*0.6) * (1 + warmth*0.4)
		if ctx.RNG.Bernoulli(prob) {
			w.AddWeed(plot.Row, plot.Col, 0.1)
		}
	}
}
