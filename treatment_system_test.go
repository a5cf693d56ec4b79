package main

import "testing"

func TestTreatmentFeedbackSystemWaitsForFeedbackWeek(t *testing.T) {
	w := NewWorld(1, 1)
	p := w.AddPlant(0, 0, "tomato", 0)
	p.Treatments = []ActiveTreatment{{Action: "fungicide", TargetCondition: "blight", FeedbackWeek: 5}}

	ctx := &TickContext{Week: 3, Treatments: map[string]*TreatmentDef{}}
	treatmentFeedbackSystem(w, ctx)

	if len(p.Treatments) != 1 {
		t.Fatal("treatment resolved before its feedback week arrived")
	}
	if len(ctx.TreatmentOutcomes) != 0 {
		t.Fatal("no outcome should be recorded before the feedback week")
	}
}

func TestResolveTreatmentPullPlantAlwaysResolves(t *testing.T) {
	p := &Plant{}
	out := resolveTreatment(p, ActiveTreatment{Action: "pull_plant", TargetCondition: "blight"}, &TickContext{})

	if !p.Dead {
		t.Fatal("pull_plant should kill the plant unconditionally")
	}
	if out.Result != "resolved" {
		t.Errorf("Result = %q, want resolved", out.Result)
	}
}

func TestResolveTreatmentWrongDiagnosisWorsensAllConditions(t *testing.T) {
	p := &Plant{Conditions: []ActiveCondition{{ConditionID: "aphids", Severity: 0.2}}}
	out := resolveTreatment(p, ActiveTreatment{Action: "fungicide", TargetCondition: "blight"}, &TickContext{})

	if out.Result != "worsened" {
		t.Errorf("Result = %q, want worsened", out.Result)
	}
	if p.Conditions[0].Severity <= 0.2 {
		t.Fatal("an unrelated condition should worsen when the treatment targets the wrong diagnosis")
	}
}

func TestResolveTreatmentIneffectiveWhenCatalogSaysSo(t *testing.T) {
	p := &Plant{Conditions: []ActiveCondition{{ConditionID: "blight", Severity: 0.5}}}
	ctx := &TickContext{Treatments: map[string]*TreatmentDef{
		"neem_oil": {ActionID: "neem_oil", Counters: []string{"aphids"}},
	}}
	out := resolveTreatment(p, ActiveTreatment{Action: "neem_oil", TargetCondition: "blight"}, ctx)

	if out.Result != "ineffective" {
		t.Errorf("Result = %q, want ineffective", out.Result)
	}
}

func TestResolveTreatmentStabilizesHighSeverityAndResolvesLow(t *testing.T) {
	ctx := &TickContext{Treatments: map[string]*TreatmentDef{
		"fungicide": {ActionID: "fungicide", Counters: []string{"blight"}},
	}}

	high := &Plant{Conditions: []ActiveCondition{{ConditionID: "blight", Severity: 0.6}}}
	out := resolveTreatment(high, ActiveTreatment{Action: "fungicide", TargetCondition: "blight"}, ctx)
	if out.Result != "stabilized" {
		t.Errorf("high-severity Result = %q, want stabilized", out.Result)
	}
	if high.Conditions[0].Severity >= 0.6 {
		t.Fatal("severity should drop after a stabilizing treatment")
	}

	low := &Plant{Conditions: []ActiveCondition{{ConditionID: "blight", Severity: 0.2}}}
	out = resolveTreatment(low, ActiveTreatment{Action: "fungicide", TargetCondition: "blight"}, ctx)
	if out.Result != "resolved" {
		t.Errorf("low-severity Result = %q, want resolved", out.Result)
	}
	if low.HasCondition("blight") {
		t.Fatal("condition should be removed once resolved")
	}
}
