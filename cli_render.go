package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

func (m *ReplModel) renderStatus() string {
	s := m.session
	have, max := s.turn.Energy()
	var b strings.Builder
	fmt.Fprintf(&b, "week %d/%d  phase %s  energy %d/%d\n", s.turn.Week(), SeasonWeeks-1, s.turn.Phase(), have, max)
	fmt.Fprintf(&b, "zone %s  plants %d  weeds %d  score %.2f\n", s.zoneID, len(s.world.LivingPlants()), len(s.world.Weeds()), s.score.Total(s.world))
	if s.ended {
		fmt.Fprintf(&b, "run ended: %s\n", s.endReason)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderGrid() string {
	s := m.session
	var b strings.Builder
	for r := 0; r < s.world.Rows; r++ {
		for c := 0; c < s.world.Cols; c++ {
			switch {
			case s.world.PlantAt(r, c) != nil:
				b.WriteByte('P')
			case s.world.WeedAt(r, c) != nil:
				b.WriteByte('w')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderWeather() string {
	s := m.session
	week := s.turn.Week()
	if week >= len(s.weather) {
		return "no weather data for this week"
	}
	w := s.weather[week]
	special := w.Special
	if special == "" {
		special = "none"
	}
	return fmt.Sprintf("week %d: high %.1fC low %.1fC precip %.1fmm humidity %.2f wind %s frost=%v special=%s",
		week, w.TempHighC, w.TempLowC, w.PrecipitationMM, w.Humidity, w.Wind, w.Frost, special)
}

func (m *ReplModel) renderPlants() string {
	s := m.session
	plants := s.world.LivingPlants()
	if len(plants) == 0 {
		return "no living plants"
	}
	var b strings.Builder
	for _, p := range plants {
		fmt.Fprintf(&b, "#%d %s (%d,%d) stage=%s health=%.2f conditions=%d\n",
			p.ID, p.SpeciesID, p.Row, p.Col, p.Growth.Stage, p.Health.Value, len(p.Conditions))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderSpeciesList() string {
	var b strings.Builder
	for id := range m.catalog.Species {
		fmt.Fprintf(&b, "%s\n", id)
	}
	if b.Len() == 0 {
		return "no species in catalog"
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderSpecies(id string) string {
	sp, ok := m.catalog.Species[id]
	if !ok {
		return "unknown species " + id
	}
	return fmt.Sprintf("%s (%s, %s): ideal pH %.1f, moisture %.2f, soil temp %.1fC, harvest window %d-%d weeks",
		sp.Name, sp.Family, sp.Type, sp.IdealPH, sp.IdealMoisture, sp.IdealSoilTemp, sp.Harvest.Window.StartWeek, sp.Harvest.Window.EndWeek)
}

func (m *ReplModel) renderAmendments() string {
	var b strings.Builder
	for id, def := range m.catalog.Amendments {
		fmt.Fprintf(&b, "%s: effect in %d week(s)\n", id, def.EffectDelayWeeks)
	}
	if b.Len() == 0 {
		return "no amendments in catalog"
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderLog(n int) string {
	events := m.session.log.Events()
	if len(events) == 0 {
		return "log is empty"
	}
	if n > len(events) {
		n = len(events)
	}
	recent := events[len(events)-n:]
	now := time.Now().Unix()
	var b strings.Builder
	for _, e := range recent {
		fmt.Fprintf(&b, "[%d] %s %s\n", e.Index, e.Kind, formatEventAge(e.Timestamp, now))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderInspect(r, c int) string {
	s := m.session
	p := s.world.PlantAt(r, c)
	if p == nil {
		return fmt.Sprintf("(%d,%d): empty plot", r, c)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s stage=%s progress=%.2f health=%.2f stress=%.2f\n",
		p.ID, p.SpeciesID, p.Growth.Stage, p.Growth.Progress, p.Health.Value, p.Health.Stress)
	for _, cond := range p.Conditions {
		fmt.Fprintf(&b, "  condition %s stage=%d severity=%.2f onset=week %d\n", cond.ConditionID, cond.CurrentStage, cond.Severity, cond.OnsetWeek)
	}
	if p.Harvest.Ripe {
		offset := s.turn.Week() - p.PlantedWeek
		if sp, ok := m.catalog.Species[p.SpeciesID]; ok {
			offset -= sp.Harvest.Window.StartWeek
		}
		fmt.Fprintf(&b, "  ripe: %s, quality %.2f, remaining %d\n", formatHarvestWeek(offset), p.Harvest.Quality, p.Harvest.Remaining)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ReplModel) renderSoil(r, c int) string {
	plot := m.session.world.PlotAt(r, c)
	if plot == nil {
		return fmt.Sprintf("(%d,%d) out of bounds", r, c)
	}
	soil := plot.Soil
	return fmt.Sprintf("pH=%.2f N=%.2f P=%.2f K=%.2f organic=%.2f moisture=%.2f compaction=%.2f biology=%.2f temp=%.1fC",
		soil.PH, soil.Nitrogen, soil.Phosphorus, soil.Potassium, soil.OrganicMatter, soil.Moisture, soil.Compaction, soil.Biology, soil.TemperatureC)
}

func (m *ReplModel) renderDusk(result TickResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "week %d resolved\n", result.Week)
	if result.Frost.KillingFrost {
		fmt.Fprintf(&b, "killing frost: %s\n", strings.Join(result.Frost.Killed, ", "))
	}
	for _, o := range result.TreatmentOutcomes {
		fmt.Fprintf(&b, "treatment on #%d (%s/%s): %s\n", o.PlantID, o.ConditionID, o.Action, o.Result)
	}
	return strings.TrimRight(b.String(), "\n")
}

// save writes the session's event log to path as a raw-event JSON array.
func (m *ReplModel) save(path string) error {
	raw := m.session.log.ToJSON()
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	if m.logger != nil {
		m.logger.Infof("saved %s (%s)", path, formatBytes(len(data)))
	}
	return nil
}
