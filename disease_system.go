package main

// scoreAbove scores a trigger that fires when measurement exceeds
// threshold: saturates to 1 at/above threshold, ramps linearly from 0
// below it.
func scoreAbove(measurement, threshold float64) float64 {
	if threshold <= 0 {
		if measurement > 0 {
			return 1
		}
		return 0
	}
	if measurement >= threshold {
		return 1
	}
	return clamp(measurement/threshold, 0, 1)
}

// scoreBelow scores a trigger that fires when measurement falls below
// threshold, ramping back down to 0 by 2x threshold.
func scoreBelow(measurement, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	if measurement <= threshold {
		return 1
	}
	return clamp(1-(measurement-threshold)/threshold, 0, 1)
}

func triggerScore(w *World, ctx *TickContext, p *Plant, sp *Species, t Trigger) float64 {
	plot := w.PlotAt(p.Row, p.Col)
	switch t.Type {
	case "humidity_high":
		return scoreAbove(ctx.Weather.Humidity, t.Threshold)
	case "humidity_low":
		return scoreBelow(ctx.Weather.Humidity, t.Threshold)
	case "temp_high":
		return scoreAbove(ctx.Weather.TempHighC, t.Threshold)
	case "temp_low":
		return scoreBelow(ctx.Weather.TempLowC, t.Threshold)
	case "overwater":
		return scoreAbove(plot.Soil.Moisture, t.Threshold)
	case "underwater":
		return scoreBelow(plot.Soil.Moisture, t.Threshold)
	case "ph_high":
		return scoreAbove(plot.Soil.PH, t.Threshold)
	case "ph_low":
		return scoreBelow(plot.Soil.PH, t.Threshold)
	case "nutrient_deficiency":
		avg := (plot.Soil.Nitrogen + plot.Soil.Phosphorus + plot.Soil.Potassium) / 3
		return scoreBelow(avg, t.Threshold)
	case "nutrient_excess":
		avg := (plot.Soil.Nitrogen + plot.Soil.Phosphorus + plot.Soil.Potassium) / 3
		return scoreAbove(avg, t.Threshold)
	case "crowding":
		count := 0
		for _, other := range w.LivingPlants() {
			if other.ID == p.ID {
				continue
			}
			if chebyshevDistance(p.Row, p.Col, other.Row, other.Col) <= 1 {
				count++
			}
		}
		return scoreAbove(float64(count), t.Threshold)
	case "pest_vector":
		best := 0.0
		for _, ev := range ActivePestsAt(ctx.PestEvents, ctx.Week) {
			if pestTargetsFamily(ctx, ev.PestID, sp.Family) {
				if s := scoreAbove(ev.Severity, t.Threshold); s > best {
					best = s
				}
			}
		}
		return best
	default:
		return 0
	}
}

func pestTargetsFamily(ctx *TickContext, pestID, family string) bool {
	def, ok := ctx.PestDefs[pestID]
	if !ok {
		return false
	}
	for _, f := range def.TargetFamilies {
		if f == family {
			return true
		}
	}
	return false
}

func immuneStage(stage StageId) bool {
	return stage == StageSeed || stage == StageGermination
}

// diseaseSystem onsets, progresses, and resolves conditions. An unset
// MinStage decodes as StageSeed (its zero value), which is always
// satisfied since immuneStage already excludes seed and germination
// plants outright — giving an "absent defaults to seedling" floor
// without a separate sentinel.
func diseaseSystem(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		if immuneStage(p.Growth.Stage) {
			continue
		}
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}

		for _, v := range sp.Vulnerabilities {
			if p.Growth.Stage < v.MinStage {
				continue
			}

			if idx := p.conditionIndex(v.ConditionID); idx >= 0 {
				progressCondition(p, &p.Conditions[idx], v, ctx.Week)
				continue
			}

			if len(v.Triggers) == 0 {
				continue
			}
			total := 0.0
			for _, t := range v.Triggers {
				total += triggerScore(w, ctx, p, sp, t)
			}
			triggerAvg := total / float64(len(v.Triggers))

			onsetP := v.Susceptibility * triggerAvg * (1 + p.Health.Stress)
			if ctx.RNG.Bernoulli(onsetP) {
				p.Conditions = append(p.Conditions, ActiveCondition{
					ConditionID:  v.ConditionID,
					OnsetWeek:    ctx.Week,
					CurrentStage: 0,
					Severity:     0.1,
				})
			}
		}
	}
}

func progressCondition(p *Plant, cond *ActiveCondition, v Vulnerability, week int) {
	weeksSinceOnset := week - cond.OnsetWeek
	cond.CurrentStage = v.symptomAt(weeksSinceOnset)
	if cond.CurrentStage > v.maxSymptomStage() {
		cond.CurrentStage = v.maxSymptomStage()
	}
	cond.Severity = clamp(cond.Severity+0.05, 0, 1)

	if v.WeeksToDeath != nil && weeksSinceOnset >= *v.WeeksToDeath {
		p.Dead = true
	}
}
