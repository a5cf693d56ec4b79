package main

import "testing"

func samplePestDefs() map[string]*PestDef {
	return map[string]*PestDef{
		"aphids": {
			PestID:         "aphids",
			TargetFamilies: []string{"solanaceae"},
			SeverityRange:  [2]float64{0.2, 0.6},
			DurationRange:  [2]float64{2, 4},
			EarliestWeek:   4,
			MinGapWeeks:    2,
			Visual:         "sticky_residue",
		},
	}
}

func TestGeneratePestsDeterministic(t *testing.T) {
	zone := sampleZone()
	zone.PestWeights = map[string]float64{"aphids": 0.3}
	defs := samplePestDefs()

	a := GeneratePests(zone, defs, 55)
	b := GeneratePests(zone, defs, 55)
	if len(a) != len(b) {
		t.Fatalf("event count diverged: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d diverged: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratePestsIgnoresUnknownPestIDs(t *testing.T) {
	zone := sampleZone()
	zone.PestWeights = map[string]float64{"unknown-pest": 0.9}
	events := GeneratePests(zone, samplePestDefs(), 1)
	if len(events) != 0 {
		t.Fatalf("expected no events for an unknown pest id, got %d", len(events))
	}
}

func TestGeneratePestsRespectsEarliestWeek(t *testing.T) {
	zone := sampleZone()
	zone.PestWeights = map[string]float64{"aphids": 0.9}
	defs := samplePestDefs()
	events := GeneratePests(zone, defs, 7)
	for _, e := range events {
		if e.ArrivalWeek < defs["aphids"].EarliestWeek {
			t.Errorf("pest arrived at week %d, before earliest_week %d", e.ArrivalWeek, defs["aphids"].EarliestWeek)
		}
	}
}

func TestGeneratePestsSortedByArrival(t *testing.T) {
	zone := sampleZone()
	zone.PestWeights = map[string]float64{"aphids": 0.95}
	events := GeneratePests(zone, samplePestDefs(), 3)
	for i := 1; i < len(events); i++ {
		if events[i].ArrivalWeek < events[i-1].ArrivalWeek {
			t.Fatalf("events not sorted ascending by arrival week: %+v", events)
		}
	}
}

func TestGeneratePestsIndependentOfWeatherGeneration(t *testing.T) {
	zone := sampleZone()
	zone.PestWeights = map[string]float64{"aphids": 0.4}
	defs := samplePestDefs()
	seed := uint64(2024)

	withoutWeather := GeneratePests(zone, defs, seed)

	_ = GenerateWeather(zone, seed) // consumes the unmasked main stream, must not affect pests
	withWeather := GeneratePests(zone, defs, seed)

	if len(withoutWeather) != len(withWeather) {
		t.Fatalf("pest schedule changed after generating weather first: %d vs %d events", len(withoutWeather), len(withWeather))
	}
	for i := range withoutWeather {
		if withoutWeather[i] != withWeather[i] {
			t.Fatalf("pest event %d diverged after generating weather first: %+v != %+v", i, withoutWeather[i], withWeather[i])
		}
	}
}

func TestActivePestsAtWindow(t *testing.T) {
	events := []PestEvent{
		{PestID: "aphids", ArrivalWeek: 5, DurationWeeks: 3},
	}
	if active := ActivePestsAt(events, 4); len(active) != 0 {
		t.Error("week 4 is before arrival, expected no active pests")
	}
	if active := ActivePestsAt(events, 5); len(active) != 1 {
		t.Error("week 5 is the arrival week, expected one active pest")
	}
	if active := ActivePestsAt(events, 7); len(active) != 1 {
		t.Error("week 7 is within the 3-week duration, expected one active pest")
	}
	if active := ActivePestsAt(events, 8); len(active) != 0 {
		t.Error("week 8 is past the duration window, expected no active pests")
	}
}
