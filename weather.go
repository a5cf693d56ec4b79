package main

import "math"

// SeasonWeeks is the fixed run horizon, one season.
const SeasonWeeks = 30

// WeekWeather is one week's generated conditions.
type WeekWeather struct {
	Week            int
	TempHighC       float64
	TempLowC        float64
	PrecipitationMM float64
	Humidity        float64 // [0,1]
	Wind            Wind
	Frost           bool
	Special         string // event name, "" if none
}

// eventDef is a weather special-event definition. Only the fields a given
// event type actually uses are non-zero; this mirrors how evosim's
// WorldEvent struct carries a superset of fields across heterogeneous
// event kinds (GlobalMutation, GlobalDamage, BiomeChanges all on one type).
type eventDef struct {
	Name            string
	DurationWeeks   int
	MoisturePenalty float64 // drought
	FloodRisk       float64 // heavy_rain
	TempBonus       float64 // heatwave / indian_summer
	MinWeek         func(z *ClimateZone) int
}

// weatherEvents is the fixed, deterministic roll order for special
// events: each event type gets an independent Bernoulli roll and the
// first success wins, so this slice IS the tie-breaking order.
var weatherEvents = []eventDef{
	{Name: "drought", DurationWeeks: 3, MoisturePenalty: 0.15},
	{Name: "heavy_rain", DurationWeeks: 1, FloodRisk: 0.5},
	{Name: "heatwave", DurationWeeks: 2, TempBonus: 6},
	{
		Name: "indian_summer", DurationWeeks: 2, TempBonus: 4,
		MinWeek: func(z *ClimateZone) int { return 16 },
	},
	{
		Name: "early_frost", DurationWeeks: 1,
		MinWeek: func(z *ClimateZone) int { return z.FrostFreeStart + 11 },
	},
}

func eventByName(name string) (eventDef, bool) {
	for _, e := range weatherEvents {
		if e.Name == name {
			return e, true
		}
	}
	return eventDef{}, false
}

func precipMultiplier(pattern string, week int) float64 {
	t := float64(week) / (SeasonWeeks - 1)
	switch pattern {
	case "winter_wet":
		// U-shape: wet at the edges of the season, dry mid-season.
		return 0.4 + 1.2*(2*t-1)*(2*t-1)
	case "summer_wet":
		// Inverted U: dry at the edges, wet mid-season.
		return 1.6 - 1.2*(2*t-1)*(2*t-1)
	case "arid":
		return 0.3
	default: // "even"
		return 1.0
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GenerateWeather produces the fixed 30-week deterministic weather
// schedule for (zone, seed).
func GenerateWeather(zone *ClimateZone, seed uint64) []WeekWeather {
	rng := NewPRNG(seed)
	weeks := make([]WeekWeather, SeasonWeeks)

	activeEvent := ""
	activeEventWeeksLeft := 0

	for w := 0; w < SeasonWeeks; w++ {
		// 1. Temperature.
		tempBonus := 0.0
		if activeEvent != "" {
			if def, ok := eventByName(activeEvent); ok {
				tempBonus = def.TempBonus
			}
		}
		high := round1(zone.Curve[w] + rng.NextGaussian(0, zone.Variance) + tempBonus)
		low := round1(high - rng.NextFloat(8, 14))

		// 2. Precipitation.
		precip := 20.0 * precipMultiplier(zone.PrecipPattern, w)
		if activeEvent == "drought" {
			if def, ok := eventByName("drought"); ok {
				precip *= 1 - def.MoisturePenalty
			}
		}
		if activeEvent == "heavy_rain" {
			if def, ok := eventByName("heavy_rain"); ok {
				precip *= 2 + def.FloodRisk
			}
		}
		precip *= rng.Next() * 2
		if precip < 0 {
			precip = 0
		}

		// 3. Humidity.
		humidity := zone.HumidityBaseline + rng.NextGaussian(0, 0.08)
		if precip > 15 {
			humidity += 0.1
		}
		humidity = clamp(humidity, 0, 1)

		// 4. Wind.
		windIdx := rng.WeightedIndex([]float64{0.25, 0.4, 0.25, 0.1})
		wind := Wind(windIdx)

		// 5. Special events.
		special := ""
		if activeEvent != "" {
			special = activeEvent
			activeEventWeeksLeft--
			if activeEventWeeksLeft <= 0 {
				activeEvent = ""
			}
		} else {
			for _, def := range weatherEvents {
				if def.MinWeek != nil && w < def.MinWeek(zone) {
					continue
				}
				weight, ok := zone.EventWeights[def.Name]
				if !ok || weight <= 0 {
					continue
				}
				if rng.Bernoulli(weight) {
					special = def.Name
					activeEvent = def.Name
					activeEventWeeksLeft = def.DurationWeeks - 1
					break
				}
			}
		}

		// 6. Frost.
		p := 1 / (1 + math.Exp(-0.5*(float64(w)-zone.FirstFrostWeekAvg)))
		frost := rng.Bernoulli(p)
		if special == "early_frost" {
			frost = true
		} else if w >= zone.FrostFreeStart && w <= zone.FrostFreeEnd {
			frost = false
		}

		weeks[w] = WeekWeather{
			Week:            w,
			TempHighC:       high,
			TempLowC:        low,
			PrecipitationMM: precip,
			Humidity:        humidity,
			Wind:            wind,
			Frost:           frost,
			Special:         special,
		}
	}

	return weeks
}
