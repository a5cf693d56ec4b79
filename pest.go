package main

import "sort"

// pestSeedMask is XORed into the game seed to derive the pest generator's
// independent sub-stream: pest output must not depend on whether (or
// when) weather was generated from the same seed.
const pestSeedMask uint64 = 0x9e3779b97f4a7c15 ^ 0xc0ffee

// PestDef is a static pest catalog entry.
type PestDef struct {
	PestID         string     `json:"pest_id"`
	TargetFamilies []string   `json:"target_families"`
	SeverityRange  [2]float64 `json:"severity_range"`
	DurationRange  [2]float64 `json:"duration_range"`
	EarliestWeek   int        `json:"earliest_week"`
	MinGapWeeks    int        `json:"min_gap_weeks"`
	Visual         string     `json:"visual"`
}

// PestEvent is one scheduled pest arrival.
type PestEvent struct {
	PestID        string
	ArrivalWeek   int
	Severity      float64
	DurationWeeks int
}

// GeneratePests produces the deterministic pest-event schedule for
// (zone, seed), sorted ascending by arrival week.
func GeneratePests(zone *ClimateZone, pests map[string]*PestDef, seed uint64) []PestEvent {
	rng := NewPRNG(WithMask(seed, pestSeedMask))

	var ids []string
	for id := range zone.PestWeights {
		if _, ok := pests[id]; !ok {
			continue // unknown pest_ids in the zone weight map are silently ignored
		}
		if zone.PestWeights[id] <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var events []PestEvent
	for _, id := range ids {
		def := pests[id]
		weight := zone.PestWeights[id]
		blockedUntil := -1
		for w := def.EarliestWeek; w < SeasonWeeks; w++ {
			if w <= blockedUntil {
				continue
			}
			if rng.Bernoulli(weight) {
				severity := rng.NextFloat(def.SeverityRange[0], def.SeverityRange[1])
				duration := int(rng.NextFloat(def.DurationRange[0], def.DurationRange[1]))
				if duration < 1 {
					duration = 1
				}
				events = append(events, PestEvent{
					PestID:        id,
					ArrivalWeek:   w,
					Severity:      severity,
					DurationWeeks: duration,
				})
				blockedUntil = w + duration + def.MinGapWeeks - 1
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ArrivalWeek < events[j].ArrivalWeek
	})
	return events
}

// ActivePestsAt returns the pest events whose window covers week.
func ActivePestsAt(events []PestEvent, week int) []PestEvent {
	var active []PestEvent
	for _, e := range events {
		if week >= e.ArrivalWeek && week < e.ArrivalWeek+e.DurationWeeks {
			active = append(active, e)
		}
	}
	return active
}
