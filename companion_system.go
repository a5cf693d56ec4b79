package main

// companionSystem recomputes every plant's CompanionBuffs from scratch
// each tick. No accumulation across ticks: buffs are rebuilt
// deterministically from the current neighborhood every time.
func companionSystem(w *World, ctx *TickContext) {
	living := w.LivingPlants()

	for _, p := range living {
		p.Companions = nil

		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}

		for _, other := range living {
			if other.ID == p.ID {
				continue
			}
			entry, ok := companionEntryFor(sp, other.SpeciesID)
			if !ok {
				continue
			}
			dist := chebyshevDistance(p.Row, p.Col, other.Row, other.Col)
			var matched []CompanionEffect
			for _, eff := range entry.Effects {
				if dist <= eff.Radius {
					matched = append(matched, eff)
				}
			}
			if len(matched) == 0 {
				continue
			}
			p.Companions = append(p.Companions, CompanionBuff{
				Source:  other.SpeciesID,
				Effects: matched,
			})
		}
	}
}

func companionEntryFor(sp *Species, otherSpeciesID string) (CompanionEntry, bool) {
	for _, entry := range sp.Companions {
		if entry.OtherSpecies == otherSpeciesID {
			return entry, true
		}
	}
	return CompanionEntry{}, false
}

// companionGrowthModifierSum sums every "growth_rate" effect a plant's
// current buffs contribute, used by growthSystem.
func companionGrowthModifierSum(p *Plant) float64 {
	sum := 0.0
	for _, buff := range p.Companions {
		for _, eff := range buff.Effects {
			if eff.Type == "growth_rate" {
				sum += eff.Modifier
			}
		}
	}
	return sum
}

// companionAllelopathySum sums every "allelopathy" penalty effect.
func companionAllelopathySum(p *Plant) float64 {
	sum := 0.0
	for _, buff := range p.Companions {
		for _, eff := range buff.Effects {
			if eff.Type == "allelopathy" {
				sum += eff.Modifier
			}
		}
	}
	return sum
}
