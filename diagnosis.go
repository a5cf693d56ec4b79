package main

import "sort"

// diagnosisSeedMask XORs into the game seed to derive diagnosis's
// independent red-herring sub-stream, so reading a hypothesis list never
// perturbs, or is perturbed by, the main tick RNG sequence.
const diagnosisSeedMask uint64 = 0x9e3779b97f4a7c15 ^ 0xd1a90515

// overlayTags is the static overlay-string -> descriptive-tag-set table.
// Engine-owned domain knowledge, not catalog data — a catalog's symptom
// stages reference these overlay names by convention.
var overlayTags = map[string][]string{
	"yellowing":          {"discoloration", "chlorosis"},
	"wilting":            {"wilt", "moisture_stress"},
	"spotting":           {"lesion", "discoloration"},
	"white_powder":       {"fungal", "powdery"},
	"black_mold":         {"fungal", "necrosis"},
	"curling_leaves":     {"deformation", "viral"},
	"stunted":            {"growth_deficit"},
	"holes_in_leaves":    {"chewing_damage", "insect"},
	"sticky_residue":     {"insect", "honeydew"},
	"root_discoloration": {"rot", "root_damage"},
}

// similarConditions is the static red-herring candidate table:
// conditionId -> other conditionIds a grower could plausibly confuse it
// with. Fixed order, never sorted or shuffled.
var similarConditions = map[string][]string{
	"powdery_mildew":    {"downy_mildew", "rust"},
	"blight":            {"leaf_spot", "rust"},
	"root_rot":          {"wilt", "nutrient_deficiency"},
	"aphid_infestation": {"scale_insects", "whitefly"},
	"viral_mosaic":      {"nutrient_deficiency", "curling_virus"},
}

// Hypothesis is one ranked diagnosis candidate.
type Hypothesis struct {
	ConditionID string
	Confidence  float64
	Kind        string // active | hypothesis | red_herring
}

// DiagnosisResult is what diagnoseAction returns.
type DiagnosisResult struct {
	Observations []string
	Hypotheses   []Hypothesis
}

func vulnTagSet(v Vulnerability) map[string]bool {
	tags := make(map[string]bool)
	for _, s := range v.Symptoms {
		for _, t := range overlayTags[s.OverlayTag] {
			tags[t] = true
		}
	}
	return tags
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection, union := 0, 0
	seen := make(map[string]bool, len(a)+len(b))
	for t := range a {
		seen[t] = true
	}
	for t := range b {
		seen[t] = true
	}
	union = len(seen)
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// diagnose produces up to 5 ranked hypotheses for one plant's active
// conditions. Deterministic given (plant, species, rng) — rng should be a
// sub-stream masked with diagnosisSeedMask, never the tick RNG directly.
func diagnose(p *Plant, sp *Species, rng *PRNG) DiagnosisResult {
	var result DiagnosisResult
	if len(p.Conditions) == 0 {
		return result
	}

	visibleTags := make(map[string]bool)
	for _, c := range p.Conditions {
		vuln, ok := sp.vulnerability(c.ConditionID)
		if !ok {
			continue
		}
		stage := c.CurrentStage
		if stage > vuln.maxSymptomStage() {
			stage = vuln.maxSymptomStage()
		}
		if stage < 0 || stage >= len(vuln.Symptoms) {
			continue
		}
		sym := vuln.Symptoms[stage]
		result.Observations = append(result.Observations, sym.Observation)
		for _, t := range overlayTags[sym.OverlayTag] {
			visibleTags[t] = true
		}
	}

	var hyps []Hypothesis
	included := make(map[string]bool)

	for _, c := range p.Conditions {
		vuln, ok := sp.vulnerability(c.ConditionID)
		if !ok {
			continue
		}
		maxStage := float64(vuln.maxSymptomStage())
		stageFrac := 0.0
		if maxStage > 0 {
			stageFrac = float64(c.CurrentStage) / maxStage
		}
		conf := clamp(0.4+0.35*stageFrac+0.15*c.Severity, 0.3, 0.95)
		hyps = append(hyps, Hypothesis{ConditionID: c.ConditionID, Confidence: conf, Kind: "active"})
		included[c.ConditionID] = true
	}

	for _, vuln := range sp.Vulnerabilities {
		if included[vuln.ConditionID] {
			continue
		}
		sim := jaccard(visibleTags, vulnTagSet(vuln))
		if sim > 0.15 {
			conf := clamp(0.7*sim, 0.1, 0.6)
			hyps = append(hyps, Hypothesis{ConditionID: vuln.ConditionID, Confidence: conf, Kind: "hypothesis"})
			included[vuln.ConditionID] = true
		}
	}

	// Red herrings: candidates walk p.Conditions in insertion order, then
	// each condition's similarConditions entry in table order — fully
	// deterministic before any RNG draw.
	var pool []string
	seenPool := make(map[string]bool)
	for _, c := range p.Conditions {
		for _, cand := range similarConditions[c.ConditionID] {
			if included[cand] || seenPool[cand] {
				continue
			}
			seenPool[cand] = true
			pool = append(pool, cand)
		}
	}

	count := 1
	if len(pool) > 1 && rng.Bernoulli(0.5) {
		count = 2
	}
	if count > len(pool) {
		count = len(pool)
	}
	for i := 0; i < count; i++ {
		idx := rng.NextInt(0, len(pool)-1)
		cand := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		best := 0.0
		candVuln, hasCandVuln := sp.vulnerability(cand)
		if hasCandVuln {
			candTags := vulnTagSet(candVuln)
			for _, c := range p.Conditions {
				v, ok := sp.vulnerability(c.ConditionID)
				if !ok {
					continue
				}
				if s := jaccard(vulnTagSet(v), candTags); s > best {
					best = s
				}
			}
		}
		conf := clamp(0.6*best+0.1, 0.1, 0.55)
		hyps = append(hyps, Hypothesis{ConditionID: cand, Confidence: conf, Kind: "red_herring"})
		included[cand] = true
	}

	sort.SliceStable(hyps, func(i, j int) bool {
		return hyps[i].Confidence > hyps[j].Confidence
	})
	if len(hyps) > 5 {
		hyps = hyps[:5]
	}
	result.Hypotheses = hyps
	return result
}
