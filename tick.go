package main

// TickContext is the immutable-from-the-systems'-perspective context
// shared across one week's pipeline run: systems get a mutable World plus
// this read-only context. Frost/treatment output fields are the
// exception — frostSystem and treatmentFeedbackSystem write them as they
// run, callers never do.
type TickContext struct {
	Weather WeekWeather
	Week    int
	RNG     *PRNG
	Species SpeciesLookup
	Zone    *ClimateZone

	PestEvents []PestEvent
	PestDefs   map[string]*PestDef
	Treatments map[string]*TreatmentDef

	// Populated by the corresponding system as it runs.
	TreatmentOutcomes []TreatmentOutcome
	Frost             FrostResult
}

// System is a single pipeline stage: a plain function over (World,
// TickContext), not a method on an interface hierarchy — systems stay
// simple, explicit-RNG, explicit-context functions rather than objects.
type System func(w *World, ctx *TickContext)

// Pipeline is the fixed, total system order. Never reordered at runtime.
var Pipeline = []System{
	soilSystem,
	companionSystem,
	growthSystem,
	stressSystem,
	diseaseSystem,
	treatmentFeedbackSystem,
	pestSystem,
	spreadSystem,
	harvestSystem,
	frostSystem,
}

// TickResult is what one week's pipeline run produces.
type TickResult struct {
	Week              int
	Frost             FrostResult
	TreatmentOutcomes []TreatmentOutcome
}

// RunTick executes the pipeline once, in fixed order, and returns the
// week's outcome. No system here allocates entities outside itself; only
// spreadSystem creates runner offspring and weed entities.
func RunTick(w *World, weather WeekWeather, week int, rng *PRNG, species SpeciesLookup, zone *ClimateZone, pests []PestEvent, pestDefs map[string]*PestDef, treatments map[string]*TreatmentDef) TickResult {
	ctx := &TickContext{
		Weather:    weather,
		Week:       week,
		RNG:        rng,
		Species:    species,
		Zone:       zone,
		PestEvents: pests,
		PestDefs:   pestDefs,
		Treatments: treatments,
	}

	for _, system := range Pipeline {
		system(w, ctx)
	}

	w.bumpVersion()

	return TickResult{
		Week:              week,
		Frost:             ctx.Frost,
		TreatmentOutcomes: ctx.TreatmentOutcomes,
	}
}

// lookupSpecies is a small helper every system uses to skip entities whose
// species vanished from the catalog (should not happen in practice, but
// tick systems never fail — they skip entities with missing
// prerequisites).
func lookupSpecies(ctx *TickContext, speciesID string) (*Species, bool) {
	if ctx.Species == nil {
		return nil, false
	}
	return ctx.Species(speciesID)
}
