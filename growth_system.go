package main

import "math"

func gaussianFit(value, ideal, sigma float64) float64 {
	if sigma <= 0 {
		sigma = 0.01
	}
	d := value - ideal
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// limitingFactor is the Liebig minimum across the six environmental
// Gaussian fits.
func limitingFactor(sp *Species, soil Soil) float64 {
	factors := []float64{
		gaussianFit(soil.PH, sp.IdealPH, sp.PHSigma),
		gaussianFit(soil.Moisture, sp.IdealMoisture, sp.MoistureSigma),
		gaussianFit(soil.TemperatureC, sp.IdealSoilTemp, sp.TempSigma),
		gaussianFit(soil.Nitrogen, sp.NutrientIdeal["nitrogen"], sp.NutrientSigma["nitrogen"]),
		gaussianFit(soil.Phosphorus, sp.NutrientIdeal["phosphorus"], sp.NutrientSigma["phosphorus"]),
		gaussianFit(soil.Potassium, sp.NutrientIdeal["potassium"], sp.NutrientSigma["potassium"]),
	}
	min := factors[0]
	for _, f := range factors[1:] {
		if f < min {
			min = f
		}
	}
	return min
}

// determineStage maps normalized lifecycle progress to a StageId using
// the cumulative midpoint of each stage's duration range as its segment
// boundary.
func determineStage(sp *Species, progress float64) StageId {
	if progress <= 0 {
		return StageSeed
	}
	if progress >= 1 {
		return StageSenescence
	}

	total := 0.0
	for _, d := range sp.Stages {
		total += d.midpoint()
	}
	if total <= 0 {
		return StageSeed
	}

	cumulative := 0.0
	for _, d := range sp.Stages {
		cumulative += d.midpoint()
		if progress <= cumulative/total {
			return d.Stage
		}
	}
	return sp.Stages[len(sp.Stages)-1].Stage
}

// growthSystem advances plant progress and stage using the limiting-factor
// model.
func growthSystem(w *World, ctx *TickContext) {
	for _, p := range w.LivingPlants() {
		sp, ok := lookupSpecies(ctx, p.SpeciesID)
		if !ok {
			continue
		}
		plot := w.PlotAt(p.Row, p.Col)
		if plot == nil {
			continue
		}

		limiting := limitingFactor(sp, plot.Soil)
		growthBuff := companionGrowthModifierSum(p)
		allelopathy := companionAllelopathySum(p)

		delta := sp.BaseGrowthRate * limiting *
			(1 - 0.7*p.Health.Stress) *
			(1 + growthBuff) *
			(1 - allelopathy) *
			p.Growth.RateModifier

		p.Growth.Progress = clamp(p.Growth.Progress+delta, 0, 1)
		p.Growth.Stage = determineStage(sp, p.Growth.Progress)
	}
}
