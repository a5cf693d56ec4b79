package main

import "github.com/google/uuid"

// GameSession wires the World, turn manager, event log, RNG streams, and
// pre-generated weather/pest schedules together and exposes the action
// API.
type GameSession struct {
	ID uuid.UUID

	zoneID string
	seed   uint64

	catalog *Catalog
	zone    *ClimateZone

	world *World
	turn  *TurnManager
	log   *EventLog

	rng     *PRNG
	diagRNG *PRNG

	weather []WeekWeather
	pests   []PestEvent

	score     *ScoreTracker
	logger    *Logger
	spectator *Spectator

	lastDusk  *TickResult
	ended     bool
	endReason string
}

// NewSession constructs a session over a gridRows x gridCols plot grid
// (default 3x3), emits RUN_START, and drives the turn manager from its
// DAWN zero-state into week 0's ACT phase so the player sees a "week-1
// energy preview" immediately.
func NewSession(catalog *Catalog, zoneID string, seed uint64, rows, cols int) (*GameSession, *SessionError) {
	zone, ok := catalog.Zones[zoneID]
	if !ok {
		return nil, newErr(ErrUnknownZone, "zone %q not found", zoneID)
	}
	if rows <= 0 {
		rows = 3
	}
	if cols <= 0 {
		cols = 3
	}

	s := &GameSession{
		ID:      uuid.New(),
		zoneID:  zoneID,
		seed:    seed,
		logger:  NewLogger(nil, "session"),
		catalog: catalog,
		zone:    zone,
		world:   NewWorld(rows, cols),
		log:     NewEventLog(),
		rng:     NewPRNG(seed),
		diagRNG: NewPRNG(WithMask(seed, diagnosisSeedMask)),
		weather: GenerateWeather(zone, seed),
		pests:   GeneratePests(zone, catalog.Pests, seed),
		score:   NewScoreTracker(),
	}
	s.turn = NewTurnManager(s.onPhaseChange)

	s.log.Append(EventRunStart, func(e *GameEvent) {
		e.Seed = int64(seed)
		e.Zone = zoneID
	})

	s.turn.advancePhase() // DAWN -> PLAN
	if err := s.turn.beginWork(s.weather[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// onPhaseChange is the TurnManager callback: DUSK
// runs the tick and immediately steps into ADVANCE (DUSK has no content
// beyond the tick itself, nothing for a host to pause on); ADVANCE
// resolves frost- or catastrophe-driven run termination but does NOT
// auto-advance further — AdvancePhase/AdvanceToNextWeek give the host
// control over when DAWN/PLAN's stale-energy window ends (an open
// question resolved in DESIGN.md).
func (s *GameSession) onPhaseChange(from, to Phase) {
	switch to {
	case PhaseDusk:
		s.runTick()
		s.turn.advancePhase()
	case PhaseAdvance:
		s.resolveAdvance()
	}
}

func (s *GameSession) runTick() {
	week := s.turn.Week()
	result := RunTick(s.world, s.weather[week], week, s.rng, s.catalog.SpeciesLookup(), s.zone, s.pests, s.catalog.Pests, s.catalog.Treatments)
	s.lastDusk = &result
}

func (s *GameSession) resolveAdvance() {
	if s.lastDusk != nil && s.lastDusk.Frost.KillingFrost {
		s.endRun("frost")
		return
	}
	if len(s.world.Plants()) > 0 && len(s.world.LivingPlants()) == 0 {
		s.endRun("catastrophe")
	}
	// Running past the last pre-generated week is already refused by
	// BeginWork (week >= SeasonWeeks); no separate end-of-season reason
	// exists in the RUN_END enum.
}

func (s *GameSession) endRun(reason string) {
	s.ended = true
	s.endReason = reason
	s.log.Append(EventRunEnd, func(e *GameEvent) {
		e.Reason = reason
	})
}

// Abandon ends the run early at the player's request. A no-op if the run
// has already ended some other way.
func (s *GameSession) Abandon() {
	if s.ended {
		return
	}
	s.endRun("abandon")
}

// AdvancePhase performs one generic phase transition (turn.advancePhase),
// logging ADVANCE_WEEK exactly when the week counter increments.
func (s *GameSession) AdvancePhase() {
	if s.ended {
		return
	}
	from := s.turn.Phase()
	s.turn.advancePhase()
	if from == PhaseAdvance && s.turn.Phase() == PhaseDawn {
		s.log.Append(EventAdvanceWeek, func(e *GameEvent) {
			e.Week = s.turn.Week()
		})
	}
}

// BeginWork opens ACT for the current week using that week's pre-generated
// weather.
func (s *GameSession) BeginWork() *SessionError {
	if s.ended {
		return newErr(ErrRunEnded, "run has ended")
	}
	week := s.turn.Week()
	if week >= SeasonWeeks {
		return newErr(ErrRunEnded, "season complete")
	}
	return s.turn.beginWork(s.weather[week])
}

// AdvanceToInteractive progresses through the non-interactive phases
// (ADVANCE, DAWN, PLAN) until ACT is reached or the run ends. Backs the
// "advance" REPL command: runs phase(s) until interactive. A no-op if
// already in ACT.
func (s *GameSession) AdvanceToInteractive() *SessionError {
	for !s.ended && s.turn.Phase() != PhaseAct {
		switch s.turn.Phase() {
		case PhaseAdvance, PhaseDawn:
			s.AdvancePhase()
		case PhasePlan:
			if err := s.BeginWork(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// AdvanceToNextWeek drives ADVANCE -> DAWN -> PLAN -> ACT in one call, used
// by replay to process one ADVANCE_WEEK event.
func (s *GameSession) AdvanceToNextWeek() *SessionError {
	if s.ended {
		return newErr(ErrRunEnded, "run has ended")
	}
	if s.turn.Phase() != PhaseAdvance {
		return wrongPhaseErr(PhaseAdvance, s.turn.Phase())
	}
	s.AdvancePhase()
	if s.ended {
		return nil
	}
	s.AdvancePhase()
	return s.BeginWork()
}

func (s *GameSession) requireAct() *SessionError {
	if s.ended {
		return newErr(ErrRunEnded, "run has ended")
	}
	if s.turn.Phase() != PhaseAct {
		return wrongPhaseErr(PhaseAct, s.turn.Phase())
	}
	return nil
}

func (s *GameSession) precheckEnergy(cost int) *SessionError {
	have, _ := s.turn.Energy()
	if have < cost {
		return insufficientEnergyErr(have, cost)
	}
	return nil
}

func (s *GameSession) notifyWorldChanged() {
	s.world.bumpVersion()
	if s.spectator != nil {
		s.spectator.NotifyChanged()
	}
}

// AttachSpectator wires a broadcaster so future notifyWorldChanged calls
// push snapshots to connected clients. Optional — a headless CLI session
// never calls this.
func (s *GameSession) AttachSpectator(sp *Spectator) {
	s.spectator = sp
}

// consumeLastDuskResult returns and clears the most recent tick's outcome
// — callers format the week's summary from it once.
func (s *GameSession) consumeLastDuskResult() *TickResult {
	r := s.lastDusk
	s.lastDusk = nil
	return r
}

// plantAction creates a plant entity at (row,col).
func (s *GameSession) plantAction(speciesID string, row, col int) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	if _, ok := s.catalog.Species[speciesID]; !ok {
		return errResult(newErr(ErrUnknownSpecies, "unknown species %q", speciesID))
	}
	if s.world.PlotAt(row, col) == nil {
		return errResult(newErr(ErrOutOfBounds, "(%d,%d) out of bounds", row, col))
	}
	if s.world.PlantAt(row, col) != nil {
		return errResult(newErr(ErrPlotOccupied, "(%d,%d) already occupied", row, col))
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	p := s.world.AddPlant(row, col, speciesID, s.turn.Week())
	s.log.Append(EventPlant, func(e *GameEvent) {
		e.SpeciesID = speciesID
		e.Row = row
		e.Col = col
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(p)
}

// amendAction queues a PendingAmendment on the plot.
func (s *GameSession) amendAction(amendmentID string, row, col int) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	def, ok := s.catalog.Amendments[amendmentID]
	if !ok {
		return errResult(newErr(ErrUnknownAmendment, "unknown amendment %q", amendmentID))
	}
	plot := s.world.PlotAt(row, col)
	if plot == nil {
		return errResult(newErr(ErrOutOfBounds, "(%d,%d) out of bounds", row, col))
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	week := s.turn.Week()
	plot.Pending = append(plot.Pending, PendingAmendment{
		Type:             amendmentID,
		AppliedWeek:      week,
		EffectDelayWeeks: def.EffectDelayWeeks,
		Effects:          def.Effects,
	})
	s.log.Append(EventAmend, func(e *GameEvent) {
		e.AmendmentType = amendmentID
		e.Row = row
		e.Col = col
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(nil)
}

// diagnoseAction runs the diagnosis hypothesis generator for the plant at
// (row,col).
func (s *GameSession) diagnoseAction(row, col int) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	p := s.world.PlantAt(row, col)
	if p == nil {
		return errResult(newErr(ErrNoPlantHere, "(%d,%d) has no plant", row, col))
	}
	sp, ok := s.catalog.Species[p.SpeciesID]
	if !ok {
		return errResult(newErr(ErrUnknownSpecies, "unknown species %q", p.SpeciesID))
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	result := diagnose(p, sp, s.diagRNG)
	s.log.Append(EventDiagnose, func(e *GameEvent) {
		e.Row = row
		e.Col = col
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(result)
}

// interveneAction queues an ActiveTreatment on the plant at (row,col).
func (s *GameSession) interveneAction(action string, row, col int, targetCondition string) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	p := s.world.PlantAt(row, col)
	if p == nil {
		return errResult(newErr(ErrNoPlantHere, "(%d,%d) has no plant", row, col))
	}
	def, ok := s.catalog.Treatments[action]
	if !ok {
		return errResult(newErr(ErrUnknownTreatment, "unknown treatment %q", action))
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	week := s.turn.Week()
	delay := def.Delay
	if delay != 1 && delay != 2 {
		delay = 1
	}
	p.Treatments = append(p.Treatments, ActiveTreatment{
		Action:          action,
		TargetCondition: targetCondition,
		AppliedWeek:     week,
		FeedbackWeek:    week + delay,
	})
	s.log.Append(EventIntervene, func(e *GameEvent) {
		e.PlantID = p.ID
		e.Action = action
		e.TargetCondition = targetCondition
		e.Row = row
		e.Col = col
		e.Week = week
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(nil)
}

// scoutAction has no state effect beyond the energy cost.
func (s *GameSession) scoutAction(target string) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	s.log.Append(EventScout, func(e *GameEvent) {
		e.Target = target
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(nil)
}

// harvestAction decrements a plant's remaining yield and records its value
// toward the season's score, the player-facing half of the
// continuous-harvest reset mechanism.
func (s *GameSession) harvestAction(row, col int) ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	p := s.world.PlantAt(row, col)
	if p == nil {
		return errResult(newErr(ErrNoPlantHere, "(%d,%d) has no plant", row, col))
	}
	if !p.Harvest.Ripe || p.Harvest.Remaining <= 0 {
		return errResult(newErr(ErrNoPlantHere, "(%d,%d) has nothing ripe to harvest", row, col))
	}
	if err := s.precheckEnergy(1); err != nil {
		return errResult(err)
	}

	s.score.RecordHarvest(p.Harvest.Quality, 1)
	p.Harvest.Remaining--
	p.Harvest.Ripe = false

	s.log.Append(EventHarvest, func(e *GameEvent) {
		e.PlantID = p.ID
		e.Row = row
		e.Col = col
	})
	s.notifyWorldChanged()
	s.turn.spendEnergy(1)
	return okResult(nil)
}

// LoadSession reconstructs a session from a saved event log: a load is
// createSession(zone, seed) followed by replaying every event. RUN_START
// must be first or the save is rejected; PLANT/AMEND/DIAGNOSE/INTERVENE/
// SCOUT/HARVEST events re-invoke the corresponding action method so the
// rebuilt World matches what produced the original log, and ADVANCE_WEEK
// events drive the turn manager forward through the same
// endActions/AdvanceToNextWeek path a live session uses. Action events
// that fail to apply are logged and skipped rather than aborting the whole
// load; a failure while replaying an ADVANCE_WEEK event aborts the load
// with that error.
func LoadSession(catalog *Catalog, events []RawEvent, logger *Logger) (*GameSession, *SessionError) {
	if len(events) == 0 || events[0].Kind != EventRunStart {
		return nil, newErr(ErrInvalidSave, "save must begin with RUN_START")
	}
	first := events[0]
	s, err := NewSession(catalog, first.Zone, uint64(first.Seed), 0, 0)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		s.logger = logger
	}

	for _, e := range events[1:] {
		switch e.Kind {
		case EventAdvanceWeek:
			if s.turn.Phase() == PhaseAct {
				if res := s.endActions(); !res.OK {
					return nil, res.Err
				}
			}
			if s.ended {
				continue
			}
			if err := s.AdvanceToNextWeek(); err != nil {
				return nil, err
			}
			continue
		case EventRunEnd:
			s.endRun(e.Reason)
			continue
		case EventPlant:
			if res := s.plantAction(e.SpeciesID, e.Row, e.Col); !res.OK {
				s.logger.Warnf("replay: skipped malformed PLANT event: %s", res.Message)
			}
		case EventAmend:
			if res := s.amendAction(e.AmendmentType, e.Row, e.Col); !res.OK {
				s.logger.Warnf("replay: skipped malformed AMEND event: %s", res.Message)
			}
		case EventDiagnose:
			if res := s.diagnoseAction(e.Row, e.Col); !res.OK {
				s.logger.Warnf("replay: skipped malformed DIAGNOSE event: %s", res.Message)
			}
		case EventIntervene:
			if res := s.interveneAction(e.Action, e.Row, e.Col, e.TargetCondition); !res.OK {
				s.logger.Warnf("replay: skipped malformed INTERVENE event: %s", res.Message)
			}
		case EventScout:
			if res := s.scoutAction(e.Target); !res.OK {
				s.logger.Warnf("replay: skipped malformed SCOUT event: %s", res.Message)
			}
		case EventHarvest:
			if res := s.harvestAction(e.Row, e.Col); !res.OK {
				s.logger.Warnf("replay: skipped malformed HARVEST event: %s", res.Message)
			}
		}
	}
	return s, nil
}

// endActions transitions out of ACT and runs the tick via the phase
// callback
func (s *GameSession) endActions() ActionResult {
	if err := s.requireAct(); err != nil {
		return errResult(err)
	}
	if err := s.turn.endActions(); err != nil {
		return errResult(err)
	}
	return okResult(nil)
}
