package main

import "testing"

func sampleSpeciesWithVulnerabilities() *Species {
	return &Species{
		ID:     "tomato",
		Name:   "Tomato",
		Family: "solanaceae",
		Vulnerabilities: []Vulnerability{
			{
				ConditionID: "blight",
				MinStage:    StageSeedling,
				Symptoms: []SymptomStage{
					{WeekOffset: 0, Observation: "leaf spotting", OverlayTag: "spotting", Spreads: false},
					{WeekOffset: 2, Observation: "black mold", OverlayTag: "black_mold", Spreads: true},
				},
			},
			{
				ConditionID: "leaf_spot",
				MinStage:    StageSeedling,
				Symptoms: []SymptomStage{
					{WeekOffset: 0, Observation: "spotted leaves", OverlayTag: "spotting", Spreads: false},
				},
			},
			{
				ConditionID: "root_rot",
				MinStage:    StageSeedling,
				Symptoms: []SymptomStage{
					{WeekOffset: 0, Observation: "discolored roots", OverlayTag: "root_discoloration", Spreads: false},
				},
			},
		},
	}
}

func TestDiagnoseNoConditionsReturnsEmpty(t *testing.T) {
	p := &Plant{}
	sp := sampleSpeciesWithVulnerabilities()
	result := diagnose(p, sp, NewPRNG(1))
	if len(result.Observations) != 0 || len(result.Hypotheses) != 0 {
		t.Fatalf("expected empty result for a plant with no conditions, got %+v", result)
	}
}

func TestDiagnoseIncludesActiveConditionAsTopHypothesis(t *testing.T) {
	p := &Plant{
		Conditions: []ActiveCondition{
			{ConditionID: "blight", CurrentStage: 1, Severity: 0.5, OnsetWeek: 0},
		},
	}
	sp := sampleSpeciesWithVulnerabilities()
	result := diagnose(p, sp, NewPRNG(1))

	if len(result.Hypotheses) == 0 {
		t.Fatal("expected at least one hypothesis")
	}
	found := false
	for _, h := range result.Hypotheses {
		if h.ConditionID == "blight" && h.Kind == "active" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an 'active' hypothesis for blight, got %+v", result.Hypotheses)
	}
	if result.Hypotheses[0].ConditionID != "blight" {
		t.Errorf("top hypothesis = %+v, want blight", result.Hypotheses[0])
	}
}

func TestDiagnoseHypothesesSortedByConfidenceDescending(t *testing.T) {
	p := &Plant{
		Conditions: []ActiveCondition{
			{ConditionID: "blight", CurrentStage: 1, Severity: 0.9, OnsetWeek: 0},
		},
	}
	sp := sampleSpeciesWithVulnerabilities()
	result := diagnose(p, sp, NewPRNG(1))

	for i := 1; i < len(result.Hypotheses); i++ {
		if result.Hypotheses[i].Confidence > result.Hypotheses[i-1].Confidence {
			t.Fatalf("hypotheses not sorted descending by confidence: %+v", result.Hypotheses)
		}
	}
}

func TestDiagnoseCapsAtFiveHypotheses(t *testing.T) {
	p := &Plant{
		Conditions: []ActiveCondition{
			{ConditionID: "blight", CurrentStage: 1, Severity: 0.5, OnsetWeek: 0},
		},
	}
	sp := &Species{
		ID: "tomato",
		Vulnerabilities: []Vulnerability{
			{ConditionID: "blight", Symptoms: []SymptomStage{{Observation: "spotting", OverlayTag: "spotting"}}},
			{ConditionID: "v2", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
			{ConditionID: "v3", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
			{ConditionID: "v4", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
			{ConditionID: "v5", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
			{ConditionID: "v6", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
			{ConditionID: "v7", Symptoms: []SymptomStage{{OverlayTag: "spotting"}}},
		},
	}
	result := diagnose(p, sp, NewPRNG(1))
	if len(result.Hypotheses) > 5 {
		t.Fatalf("len(Hypotheses) = %d, want <= 5", len(result.Hypotheses))
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}
	// intersection {y} = 1, union {x,y,z} = 3
	if got := jaccard(a, b); got != 1.0/3.0 {
		t.Errorf("jaccard(a,b) = %v, want %v", got, 1.0/3.0)
	}
	if got := jaccard(map[string]bool{}, map[string]bool{}); got != 0 {
		t.Errorf("jaccard of two empty sets = %v, want 0", got)
	}
}

func TestDiagnoseDeterministicGivenSameRNGState(t *testing.T) {
	p := &Plant{
		Conditions: []ActiveCondition{
			{ConditionID: "blight", CurrentStage: 1, Severity: 0.4, OnsetWeek: 0},
		},
	}
	sp := sampleSpeciesWithVulnerabilities()

	a := diagnose(p, sp, NewPRNG(77))
	b := diagnose(p, sp, NewPRNG(77))
	if len(a.Hypotheses) != len(b.Hypotheses) {
		t.Fatalf("hypothesis count diverged across identical-seed runs: %d vs %d", len(a.Hypotheses), len(b.Hypotheses))
	}
	for i := range a.Hypotheses {
		if a.Hypotheses[i] != b.Hypotheses[i] {
			t.Fatalf("hypothesis %d diverged: %+v != %+v", i, a.Hypotheses[i], b.Hypotheses[i])
		}
	}
}
