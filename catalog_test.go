package main

import (
	"strings"
	"testing"
)

func sampleCatalogJSON() string {
	return `{
		"species": {
			"tomato": {
				"name": "Tomato", "family": "solanaceae", "type": "fruit",
				"base_growth_rate": 0.05,
				"stages": [
					{"stage": 0, "min_weeks": 0, "max_weeks": 1},
					{"stage": 3, "min_weeks": 4, "max_weeks": 6},
					{"stage": 6, "min_weeks": 8, "max_weeks": 10}
				],
				"ideal_ph": 6.5, "ph_sigma": 1.0,
				"ideal_moisture": 0.5, "moisture_sigma": 0.2,
				"ideal_soil_temp_c": 21, "temp_sigma": 6,
				"nutrient_ideal": {"nitrogen": 0.6, "phosphorus": 0.5, "potassium": 0.5},
				"nutrient_sigma": {"nitrogen": 0.2, "phosphorus": 0.2, "potassium": 0.2},
				"nutrient_demand": {"nitrogen": 0.02, "phosphorus": 0.01, "potassium": 0.01},
				"harvest": {"yield_potential": 10, "continuous_harvest": true, "window": {"start_week": 8, "end_week": 16}},
				"tolerance": "none"
			}
		},
		"zones": {
			"temperate": {
				"variance": 2.0, "precip_pattern": "even",
				"frost_free_start": 8, "frost_free_end": 22,
				"first_frost_week_avg": 24, "humidity_baseline": 0.5,
				"event_weights": {"drought": 0.05}, "pest_weights": {}
			}
		},
		"pests": {},
		"treatments": {
			"prune": {"counters": ["blight"], "delay": 1}
		},
		"amendments": {
			"compost": {"effect_delay_weeks": 2, "effects": {"organic_matter": 0.1}}
		}
	}`
}

func TestLoadCatalogValid(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(sampleCatalogJSON()))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	sp, ok := c.Species["tomato"]
	if !ok {
		t.Fatal("expected tomato species")
	}
	if sp.ID != "tomato" {
		t.Errorf("species ID not defaulted from map key: %q", sp.ID)
	}
	if _, ok := c.Zones["temperate"]; !ok {
		t.Fatal("expected temperate zone")
	}
	tr := c.Treatments["prune"]
	if tr.ActionID != "prune" {
		t.Errorf("treatment ActionID not defaulted from map key: %q", tr.ActionID)
	}
	if !tr.counters("blight") {
		t.Error("prune should counter blight")
	}
	if tr.counters("rust") {
		t.Error("prune should not counter rust")
	}
}

func TestLoadCatalogRejectsNonIncreasingStages(t *testing.T) {
	bad := strings.Replace(sampleCatalogJSON(),
		`{"stage": 3, "min_weeks": 4, "max_weeks": 6},`,
		`{"stage": 0, "min_weeks": 4, "max_weeks": 6},`, 1)
	if _, err := LoadCatalog(strings.NewReader(bad)); err == nil {
		t.Fatal("expected validation error for non-increasing stage durations")
	}
}

func TestLoadCatalogRejectsBadFrostWindow(t *testing.T) {
	bad := strings.Replace(sampleCatalogJSON(),
		`"frost_free_start": 8, "frost_free_end": 22,`,
		`"frost_free_start": 25, "frost_free_end": 22,`, 1)
	if _, err := LoadCatalog(strings.NewReader(bad)); err == nil {
		t.Fatal("expected validation error for frost_free_start > frost_free_end")
	}
}

func TestSpeciesLookupAndZoneLookup(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(sampleCatalogJSON()))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	lookup := c.SpeciesLookup()
	if _, ok := lookup("tomato"); !ok {
		t.Error("SpeciesLookup(tomato) should succeed")
	}
	if _, ok := lookup("nonexistent"); ok {
		t.Error("SpeciesLookup(nonexistent) should fail")
	}

	zoneLookup := c.ZoneLookup()
	if _, ok := zoneLookup("temperate"); !ok {
		t.Error("ZoneLookup(temperate) should succeed")
	}
}

func TestVulnerabilityMaxSymptomStage(t *testing.T) {
	v := Vulnerability{Symptoms: []SymptomStage{{}, {}, {}}}
	if v.maxSymptomStage() != 2 {
		t.Errorf("maxSymptomStage() = %d, want 2", v.maxSymptomStage())
	}
	empty := Vulnerability{}
	if empty.maxSymptomStage() != 0 {
		t.Errorf("maxSymptomStage() on empty symptoms = %d, want 0", empty.maxSymptomStage())
	}
}

func TestVulnerabilitySymptomAt(t *testing.T) {
	v := Vulnerability{Symptoms: []SymptomStage{
		{WeekOffset: 0}, {WeekOffset: 2}, {WeekOffset: 5},
	}}
	if s := v.symptomAt(1); s != 0 {
		t.Errorf("symptomAt(1) = %d, want 0", s)
	}
	if s := v.symptomAt(3); s != 1 {
		t.Errorf("symptomAt(3) = %d, want 1", s)
	}
	if s := v.symptomAt(100); s != 2 {
		t.Errorf("symptomAt(100) = %d, want 2", s)
	}
}
