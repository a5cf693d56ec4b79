package main

import "testing"

func TestScoreAboveSaturatesAndRamps(t *testing.T) {
	if got := scoreAbove(10, 5); got != 1 {
		t.Errorf("scoreAbove(10,5) = %v, want 1", got)
	}
	if got := scoreAbove(2.5, 5); got != 0.5 {
		t.Errorf("scoreAbove(2.5,5) = %v, want 0.5", got)
	}
	if got := scoreAbove(1, 0); got != 1 {
		t.Errorf("scoreAbove with zero threshold and positive measurement = %v, want 1", got)
	}
}

func TestScoreBelowSaturatesAndRamps(t *testing.T) {
	if got := scoreBelow(1, 5); got != 1 {
		t.Errorf("scoreBelow(1,5) = %v, want 1", got)
	}
	if got := scoreBelow(7.5, 5); got != 0.5 {
		t.Errorf("scoreBelow(7.5,5) = %v, want 0.5", got)
	}
	if got := scoreBelow(20, 5); got != 0 {
		t.Errorf("scoreBelow(20,5) = %v, want 0", got)
	}
}

func TestImmuneStageExcludesOnlySeedAndGermination(t *testing.T) {
	if !immuneStage(StageSeed) || !immuneStage(StageGermination) {
		t.Fatal("seed and germination stages should be immune")
	}
	for _, s := range []StageId{StageSeedling, StageVegetative, StageFlowering, StageFruiting, StageSenescence} {
		if immuneStage(s) {
			t.Errorf("stage %v should not be immune", s)
		}
	}
}

func TestDiseaseSystemProgressesExistingCondition(t *testing.T) {
	sp := &Species{
		ID: "tomato",
		Vulnerabilities: []Vulnerability{
			{
				ConditionID: "blight",
				MinStage:    StageSeedling,
				Symptoms: []SymptomStage{
					{WeekOffset: 0},
					{WeekOffset: 2},
				},
			},
		},
	}
	w := NewWorld(1, 1)
	p := w.AddPlant(0, 0, "tomato", 0)
	p.Growth.Stage = StageVegetative
	p.Conditions = []ActiveCondition{{ConditionID: "blight", OnsetWeek: 0, CurrentStage: 0, Severity: 0.1}}

	ctx := &TickContext{Week: 2, RNG: NewPRNG(1), Species: func(string) (*Species, bool) { return sp, true }}
	diseaseSystem(w, ctx)

	if p.Conditions[0].CurrentStage != 1 {
		t.Errorf("CurrentStage = %v, want 1 after reaching the week-2 symptom", p.Conditions[0].CurrentStage)
	}
	if p.Conditions[0].Severity <= 0.1 {
		t.Errorf("Severity should have ramped, got %v", p.Conditions[0].Severity)
	}
}

func TestProgressConditionKillsAtWeeksToDeath(t *testing.T) {
	deathWeek := 2
	v := Vulnerability{
		ConditionID:  "wilt",
		Symptoms:     []SymptomStage{{WeekOffset: 0}},
		WeeksToDeath: &deathWeek,
	}
	p := &Plant{Conditions: []ActiveCondition{{ConditionID: "wilt", OnsetWeek: 0}}}
	progressCondition(p, &p.Conditions[0], v, 2)

	if !p.Dead {
		t.Fatal("plant should die once weeksSinceOnset reaches WeeksToDeath")
	}
}

func TestDiseaseSystemSkipsImmuneStagePlants(t *testing.T) {
	sp := &Species{
		ID: "tomato",
		Vulnerabilities: []Vulnerability{
			{ConditionID: "blight", MinStage: StageSeed, Triggers: []Trigger{{Type: "humidity_high", Threshold: 0}}},
		},
	}
	w := NewWorld(1, 1)
	p := w.AddPlant(0, 0, "tomato", 0)
	p.Growth.Stage = StageSeed

	ctx := &TickContext{Week: 1, RNG: NewPRNG(1), Species: func(string) (*Species, bool) { return sp, true }}
	diseaseSystem(w, ctx)

	if len(p.Conditions) != 0 {
		t.Fatal("a seed-stage plant should never onset a condition")
	}
}
