// Package telemetry persists headless simulation runs to SQLite for later
// analysis: one row per run, batched event and ship-snapshot rows keyed to
// it. Recording is optional; the simulation never depends on it.
package telemetry

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// batchSize is how many pending rows accumulate before a flush.
const batchSize = 256

// Run is one recorded simulation run.
type Run struct {
	ID        uint `gorm:"primarykey"`
	StartedAt time.Time
	Scenario  string
	Seed      int64
	SimTime   float64 // simulated seconds covered by the run
}

// SimEvent mirrors one sim.Event row.
type SimEvent struct {
	ID       uint `gorm:"primarykey"`
	RunID    uint `gorm:"index"`
	Tick     int
	Category string
	Key      string
	Detail   string
	Value    float64
}

// ShipSnapshot is one ship's state at a sampled tick.
type ShipSnapshot struct {
	ID      uint `gorm:"primarykey"`
	RunID   uint `gorm:"index"`
	Tick    int
	ShipID  uint32
	Hull    string
	Faction string
	X       float64
	Y       float64
	Health  float64
}

// Recorder batches rows for a single run into a SQLite database.
type Recorder struct {
	db        *gorm.DB
	run       Run
	events    []SimEvent
	snapshots []ShipSnapshot
}

// Open connects to the SQLite file at dsn (":memory:" works), migrates the
// schema and registers a new run row.
func Open(dsn, scenario string, seed int64) (*Recorder, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open telemetry db: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &SimEvent{}, &ShipSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrate telemetry schema: %w", err)
	}
	r := &Recorder{
		db:  db,
		run: Run{StartedAt: time.Now(), Scenario: scenario, Seed: seed},
	}
	if err := db.Create(&r.run).Error; err != nil {
		return nil, fmt.Errorf("create run row: %w", err)
	}
	return r, nil
}

// RunID returns the database id of the current run.
func (r *Recorder) RunID() uint { return r.run.ID }

// RecordEvent queues one event row.
func (r *Recorder) RecordEvent(tick int, category, key, detail string, value float64) error {
	r.events = append(r.events, SimEvent{
		RunID:    r.run.ID,
		Tick:     tick,
		Category: category,
		Key:      key,
		Detail:   detail,
		Value:    value,
	})
	if len(r.events) >= batchSize {
		return r.flushEvents()
	}
	return nil
}

// RecordSnapshot queues one ship snapshot row.
func (r *Recorder) RecordSnapshot(tick int, shipID uint32, hull, faction string, x, y, health float64) error {
	r.snapshots = append(r.snapshots, ShipSnapshot{
		RunID:   r.run.ID,
		Tick:    tick,
		ShipID:  shipID,
		Hull:    hull,
		Faction: faction,
		X:       x,
		Y:       y,
		Health:  health,
	})
	if len(r.snapshots) >= batchSize {
		return r.flushSnapshots()
	}
	return nil
}

func (r *Recorder) flushEvents() error {
	if len(r.events) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(r.events, batchSize).Error; err != nil {
		return fmt.Errorf("flush events: %w", err)
	}
	r.events = r.events[:0]
	return nil
}

func (r *Recorder) flushSnapshots() error {
	if len(r.snapshots) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(r.snapshots, batchSize).Error; err != nil {
		return fmt.Errorf("flush snapshots: %w", err)
	}
	r.snapshots = r.snapshots[:0]
	return nil
}

// Close flushes pending rows and finalises the run row with the covered
// simulation time.
func (r *Recorder) Close(simTime float64) error {
	if err := r.flushEvents(); err != nil {
		return err
	}
	if err := r.flushSnapshots(); err != nil {
		return err
	}
	r.run.SimTime = simTime
	if err := r.db.Save(&r.run).Error; err != nil {
		return fmt.Errorf("finalise run row: %w", err)
	}
	return nil
}

// EventCount returns the persisted event rows for this run. Used by tests
// and post-run summaries.
func (r *Recorder) EventCount() (int64, error) {
	var n int64
	err := r.db.Model(&SimEvent{}).Where("run_id = ?", r.run.ID).Count(&n).Error
	return n, err
}
