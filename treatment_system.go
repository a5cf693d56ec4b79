package main

// TreatmentOutcome is one resolved feedback event, returned to the caller
// as part of a tick's TickResult.
type TreatmentOutcome struct {
	PlantID     EntityID
	ConditionID string
	Action      string
	Result      string // resolved | stabilized | ineffective | worsened
}

// treatmentFeedbackSystem evaluates every queued treatment whose feedback
// week has arrived.
func treatmentFeedbackSystem(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		if len(p.Treatments) == 0 {
			continue
		}
		var remaining []ActiveTreatment
		for _, tr := range p.Treatments {
			if ctx.Week < tr.FeedbackWeek {
				remaining = append(remaining, tr)
				continue
			}
			ctx.TreatmentOutcomes = append(ctx.TreatmentOutcomes, resolveTreatment(p, tr, ctx))
		}
		p.Treatments = remaining
	}
}

func resolveTreatment(p *Plant, tr ActiveTreatment, ctx *TickContext) TreatmentOutcome {
	out := TreatmentOutcome{PlantID: p.ID, ConditionID: tr.TargetCondition, Action: tr.Action}

	if tr.Action == "pull_plant" {
		p.Dead = true
		out.Result = "resolved"
		return out
	}

	diagnosisCorrect := p.HasCondition(tr.TargetCondition)
	if !diagnosisCorrect {
		for i := range p.Conditions {
			p.Conditions[i].Severity = clamp(p.Conditions[i].Severity+0.1, 0, 1)
		}
		out.Result = "worsened"
		return out
	}

	treatmentEffective := false
	if def, ok := ctx.Treatments[tr.Action]; ok {
		treatmentEffective = def.counters(tr.TargetCondition)
	}

	if !treatmentEffective {
		out.Result = "ineffective"
		return out
	}

	idx := p.conditionIndex(tr.TargetCondition)
	if idx < 0 {
		out.Result = "ineffective"
		return out
	}
	if p.Conditions[idx].Severity <= 0.3 {
		p.RemoveCondition(tr.TargetCondition)
		out.Result = "resolved"
		return out
	}
	p.Conditions[idx].Severity = clamp(p.Conditions[idx].Severity-0.15, 0, 1)
	out.Result = "stabilized"
	return out
}
