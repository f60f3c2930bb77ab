// Package highscore persists the best score across runs. It follows
// HighscoreChangedEvent in memory and writes a small YAML record through
// gdata when the player dies.
package highscore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/plus3/spacecourier/events"
)

const (
	recordObject   = "highscore"
	recordProperty = "best"
)

// Backend is the subset of *gdata.Manager the tracker needs.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Record is the persisted best score.
type Record struct {
	Best      int       `yaml:"best"`
	Session   string    `yaml:"session"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// Open creates a gdata backend for appName. On platforms without writable
// storage it returns a nil Backend and the error; a Tracker with a nil
// Backend keeps scores in memory only.
func Open(appName string) (Backend, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open highscore storage: %w", err)
	}
	return manager, nil
}

// Tracker keeps the best score in memory. Save writes it out.
type Tracker struct {
	backend Backend
	session uuid.UUID
	logger  *zap.Logger
	record  Record
	dirty   bool
	now     func() time.Time
}

// NewTracker loads the stored record. A missing or unreadable record starts
// from zero; unreadable records are logged.
func NewTracker(backend Backend, session uuid.UUID, logger *zap.Logger) *Tracker {
	t := &Tracker{
		backend: backend,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
	if err := t.load(); err != nil {
		logger.Warn("highscore unreadable, starting from zero", zap.Error(err))
	}
	return t
}

func (t *Tracker) load() error {
	if t.backend == nil || !t.backend.ObjectPropExists(recordObject, recordProperty) {
		return nil
	}

	data, err := t.backend.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return fmt.Errorf("load highscore: %w", err)
	}

	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("decode highscore: %w", err)
	}
	t.record = record
	return nil
}

// Best returns the best known score.
func (t *Tracker) Best() int {
	return t.record.Best
}

// Record returns a copy of the current record.
func (t *Tracker) Record() Record {
	return t.record
}

// Submit records score if it beats the current best. It reports whether
// the best score changed. Nothing is written until Save.
func (t *Tracker) Submit(score int) bool {
	if score <= t.record.Best {
		return false
	}

	t.record = Record{
		Best:      score,
		Session:   t.session.String(),
		UpdatedAt: t.now().UTC(),
	}
	t.dirty = true
	return true
}

// Save writes the record if it changed since the last successful save.
// Without a backend it only clears the pending change.
func (t *Tracker) Save() error {
	if !t.dirty {
		return nil
	}
	if t.backend == nil {
		t.dirty = false
		return nil
	}

	data, err := yaml.Marshal(t.record)
	if err != nil {
		return fmt.Errorf("encode highscore: %w", err)
	}
	if err := t.backend.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("save highscore: %w", err)
	}

	t.dirty = false
	t.logger.Debug("highscore saved", zap.Int("best", t.record.Best))
	return nil
}

// Attach subscribes the tracker to bus. New bests are only kept in memory;
// the record is saved once per run, on player death. Save failures are
// returned to the bus, which reports them as listener errors.
func (t *Tracker) Attach(bus *events.Bus) []events.Subscription {
	return []events.Subscription{
		events.On(bus, func(e events.HighscoreChangedEvent) error {
			t.Submit(e.NewHighscore)
			return nil
		}),
		events.On(bus, func(e events.PlayerDeathEvent) error {
			t.Submit(e.Score)
			return t.Save()
		}),
	}
}
