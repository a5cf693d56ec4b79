package main

// EntityID is an opaque handle into the World.
type EntityID int

// Plot is the PlotSlot+Soil+SunExposure+PendingAmendments component group
// for one grid cell. Plots are created once at session start and never
// destroyed.
type Plot struct {
	ID      EntityID
	Row     int
	Col     int
	Soil    Soil
	Sun     SunExposure
	Pending []PendingAmendment
}

// Plant is the component group for one living-or-dead plant entity.
// Optional components are nil-or-zero-valued pointers/fields rather than
// sentinel booleans scattered through the struct. Dead and SelfSeeded are
// presence markers (a nil *Perennial means "not a perennial";
// Dead/SelfSeeded are bool fields because their absence IS false, there
// is no richer payload to make optional).
type Plant struct {
	ID          EntityID
	Row         int
	Col         int
	SpeciesID   string
	PlantedWeek int

	Growth     Growth
	Health     Health
	Conditions []ActiveCondition
	Treatments []ActiveTreatment
	Companions []CompanionBuff
	Harvest    HarvestState

	Perennial *Perennial

	Dead       bool
	SelfSeeded bool
}

// HasCondition reports whether the plant already carries conditionID; a
// plant never carries the same condition twice.
func (p *Plant) HasCondition(conditionID string) bool {
	for _, c := range p.Conditions {
		if c.ConditionID == conditionID {
			return true
		}
	}
	return false
}

func (p *Plant) conditionIndex(conditionID string) int {
	for i, c := range p.Conditions {
		if c.ConditionID == conditionID {
			return i
		}
	}
	return -1
}

// RemoveCondition deletes conditionID from the plant's active list, if
// present, preserving the order of the rest.
func (p *Plant) RemoveCondition(conditionID string) {
	idx := p.conditionIndex(conditionID)
	if idx < 0 {
		return
	}
	p.Conditions = append(p.Conditions[:idx], p.Conditions[idx+1:]...)
}

// WeedPatch is the component group for weed growth occupying a plot.
type WeedPatch struct {
	ID   EntityID
	Row  int
	Col  int
	Weed Weed
}

// World is the exclusive owner of all entities and components.
// Iteration over plants/weeds is insertion-order-stable, which is what
// lets RNG-consuming systems be replay-safe despite not sorting entities
// by any other key.
type World struct {
	Rows int
	Cols int

	plots [][]*Plot

	plants      map[EntityID]*Plant
	plantOrder  []EntityID
	weeds       map[EntityID]*WeedPatch
	weedOrder   []EntityID
	nextID      EntityID
	version     int
}

// NewWorld creates a Rows x Cols grid of plot entities with a neutral
// starting soil profile.
func NewWorld(rows, cols int) *World {
	w := &World{
		Rows:   rows,
		Cols:   cols,
		plants: make(map[EntityID]*Plant),
		weeds:  make(map[EntityID]*WeedPatch),
	}
	w.plots = make([][]*Plot, rows)
	for r := 0; r < rows; r++ {
		w.plots[r] = make([]*Plot, cols)
		for c := 0; c < cols; c++ {
			id := w.allocID()
			w.plots[r][c] = &Plot{
				ID:  id,
				Row: r,
				Col: c,
				Sun: SunFull,
				Soil: Soil{
					PH:            6.5,
					Nitrogen:      0.5,
					Phosphorus:    0.5,
					Potassium:     0.5,
					OrganicMatter: 0.3,
					Moisture:      0.5,
					Compaction:    0.2,
					Biology:       0.3,
					TemperatureC:  20,
				},
			}
		}
	}
	return w
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

func (w *World) inBounds(row, col int) bool {
	return row >= 0 && row < w.Rows && col >= 0 && col < w.Cols
}

// PlotAt returns the plot at (row,col), or nil if out of bounds.
func (w *World) PlotAt(row, col int) *Plot {
	if !w.inBounds(row, col) {
		return nil
	}
	return w.plots[row][col]
}

// PlantAt returns the plant occupying (row,col), if any. At most one
// plant can ever occupy a plot.
func (w *World) PlantAt(row, col int) *Plant {
	for _, id := range w.plantOrder {
		p := w.plants[id]
		if p.Row == row && p.Col == col {
			return p
		}
	}
	return nil
}

// WeedAt returns the weed patch occupying (row,col), if any.
func (w *World) WeedAt(row, col int) *WeedPatch {
	for _, id := range w.weedOrder {
		wp := w.weeds[id]
		if wp.Row == row && wp.Col == col {
			return wp
		}
	}
	return nil
}

// AddPlant creates a new plant entity at (row,col). Callers must have
// already checked the plot is empty and in bounds.
func (w *World) AddPlant(row, col int, speciesID string, week int) *Plant {
	id := w.allocID()
	p := &Plant{
		ID:          id,
		Row:         row,
		Col:         col,
		SpeciesID:   speciesID,
		PlantedWeek: week,
		Growth:      Growth{Progress: 0, Stage: StageSeed, RateModifier: 1},
		Health:      Health{Value: 1, Stress: 0},
	}
	w.plants[id] = p
	w.plantOrder = append(w.plantOrder, id)
	return p
}

// AddSeedling is like AddPlant but starts partway through growth, used by
// runner spread.
func (w *World) AddSeedling(row, col int, speciesID string, week int, progress float64, stage StageId, health, stress float64) *Plant {
	p := w.AddPlant(row, col, speciesID, week)
	p.Growth.Progress = progress
	p.Growth.Stage = stage
	p.Health.Value = health
	p.Health.Stress = stress
	return p
}

// AddWeed creates a new weed entity at (row,col).
func (w *World) AddWeed(row, col int, severity float64) *WeedPatch {
	id := w.allocID()
	wp := &WeedPatch{ID: id, Row: row, Col: col, Weed: Weed{Severity: severity}}
	w.weeds[id] = wp
	w.weedOrder = append(w.weedOrder, id)
	return wp
}

// Plants returns all plant entities in stable insertion order.
func (w *World) Plants() []*Plant {
	out := make([]*Plant, 0, len(w.plantOrder))
	for _, id := range w.plantOrder {
		out = append(out, w.plants[id])
	}
	return out
}

// LivingPlants returns all non-Dead plant entities in stable order.
func (w *World) LivingPlants() []*Plant {
	var out []*Plant
	for _, id := range w.plantOrder {
		if p := w.plants[id]; !p.Dead {
			out = append(out, p)
		}
	}
	return out
}

// Weeds returns all weed entities in stable insertion order.
func (w *World) Weeds() []*WeedPatch {
	out := make([]*WeedPatch, 0, len(w.weedOrder))
	for _, id := range w.weedOrder {
		out = append(out, w.weeds[id])
	}
	return out
}

// Plots returns every plot in row-major order.
func (w *World) Plots() []*Plot {
	out := make([]*Plot, 0, w.Rows*w.Cols)
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			out = append(out, w.plots[r][c])
		}
	}
	return out
}

// ChebyshevNeighbors returns all in-bounds cells within radius of
// (row,col), excluding (row,col) itself, in row-major scan order.
func ChebyshevNeighbors(w *World, row, col, radius int) []struct{ Row, Col int } {
	var out []struct{ Row, Col int }
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if w.inBounds(r, c) {
				out = append(out, struct{ Row, Col int }{r, c})
			}
		}
	}
	return out
}

func chebyshevDistance(r1, c1, r2, c2 int) int {
	dr := r1 - r2
	if dr < 0 {
		dr = -dr
	}
	dc := c1 - c2
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// Version returns the monotonically increasing change counter, bumped by
// notifyWorldChanged.
func (w *World) Version() int {
	return w.version
}

func (w *World) bumpVersion() {
	w.version++
}
