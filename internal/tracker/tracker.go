// Package tracker holds the build collection and applies its lifecycle
// operations.
//
// Mutations are pure functions over a slice of builds (see Apply, Remove,
// NextStage). Store wraps them with the persist-then-notify step and owns
// the single in-memory copy. Store is not safe for concurrent use; callers
// that serve concurrent requests must serialize access.
package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/kitlog/internal/models"
	"go.uber.org/zap"
)

// Persister loads and saves the whole collection.
type Persister interface {
	Load() ([]models.Build, error)
	Save(builds []models.Build) error
}

// State is the tracker's complete in-memory state.
type State struct {
	Builds []models.Build
	Filter string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithOnChange registers a callback invoked after every persisted mutation,
// so views can be re-derived.
func WithOnChange(fn func(State)) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store is the single owner of the build collection.
type Store struct {
	persister Persister
	state     State
	now       func() time.Time
	newID     func() string
	log       *zap.Logger
	onChange  func(State)
}

// New creates an empty Store backed by p. Call Open to load saved builds.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		state:     State{Filter: FilterAll},
		now:       time.Now,
		newID:     uuid.NewString,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open replaces the collection with the persisted one. Unreadable storage
// is logged and the store starts empty; Open never fails on read errors.
func (s *Store) Open() {
	builds, err := s.persister.Load()
	if err != nil {
		s.log.Warn("unable to load saved builds, starting empty", zap.Error(err))
		s.state.Builds = nil
		return
	}
	s.state.Builds = Normalize(builds, s.newID)
	s.log.Debug("loaded builds", zap.Int("count", len(s.state.Builds)))
}

// Create validates opts, appends a new build and persists.
func (s *Store) Create(opts CreateOpts) (models.Build, error) {
	if err := Validate(opts); err != nil {
		return models.Build{}, err
	}
	id, err := s.uniqueID()
	if err != nil {
		return models.Build{}, err
	}
	b := NewBuild(opts, id, s.now())
	builds := append(slices.Clone(s.state.Builds), b)
	if err := s.commit(builds); err != nil {
		return models.Build{}, err
	}
	s.log.Debug("created build", zap.String("id", b.ID), zap.String("kit", b.KitName), zap.String("status", b.Status))
	return b, nil
}

// Update merges changes into the build with id. Unknown ids are ignored.
func (s *Store) Update(id string, c Changes) error {
	builds, ok := Apply(s.state.Builds, id, c, s.now())
	if !ok {
		s.log.Debug("update: no such build", zap.String("id", id))
		return nil
	}
	if err := s.commit(builds); err != nil {
		return err
	}
	s.log.Debug("updated build", zap.String("id", id))
	return nil
}

// AdvanceStage moves the build one stage forward (+1) or back (-1). At a
// boundary, or for an unknown id, nothing is written.
func (s *Store) AdvanceStage(id string, direction int) error {
	if direction != 1 && direction != -1 {
		return fmt.Errorf("tracker: %w: direction must be +1 or -1, got %d", ErrValidation, direction)
	}
	b, ok := s.Get(id)
	if !ok {
		return nil
	}
	next, moved := NextStage(b.Status, direction)
	if !moved {
		return nil
	}
	return s.Update(id, Changes{Status: &next})
}

// Delete removes the build with id, if present.
func (s *Store) Delete(id string) error {
	builds, found := Remove(s.state.Builds, id)
	if err := s.commit(builds); err != nil {
		return err
	}
	s.log.Debug("deleted build", zap.String("id", id), zap.Bool("found", found))
	return nil
}

// ResetAll clears the collection. Confirmation is the caller's job.
func (s *Store) ResetAll() error {
	if err := s.commit(nil); err != nil {
		return err
	}
	s.log.Debug("reset all builds")
	return nil
}

// LoadSamples overwrites the collection with the demo builds.
func (s *Store) LoadSamples() error {
	if err := s.commit(Samples(s.now(), s.newID)); err != nil {
		return err
	}
	s.log.Debug("loaded sample builds", zap.Int("count", len(s.state.Builds)))
	return nil
}

// Get returns the build with id.
func (s *Store) Get(id string) (models.Build, bool) {
	if i := indexOf(s.state.Builds, id); i >= 0 {
		return s.state.Builds[i], true
	}
	return models.Build{}, false
}

// Builds returns a copy of the collection in stored order.
func (s *Store) Builds() []models.Build {
	return slices.Clone(s.state.Builds)
}

// Filter returns the active filter.
func (s *Store) Filter() string { return s.state.Filter }

// SetFilter validates and sets the active filter. It is never persisted.
func (s *Store) SetFilter(f string) error {
	parsed, err := ParseFilter(f)
	if err != nil {
		return err
	}
	s.state.Filter = parsed
	return nil
}

// Summary derives counts over the full collection.
func (s *Store) Summary() Summary {
	return DeriveSummary(s.state.Builds)
}

// View derives the list for the active filter.
func (s *Store) View() View {
	return DeriveView(s.state.Builds, s.state.Filter)
}

// commit installs builds as the new state, persists and notifies.
func (s *Store) commit(builds []models.Build) error {
	s.state.Builds = builds
	if err := s.persister.Save(slices.Clone(builds)); err != nil {
		return fmt.Errorf("tracker: persist: %w", err)
	}
	if s.onChange != nil {
		s.onChange(State{Builds: slices.Clone(builds), Filter: s.state.Filter})
	}
	return nil
}

// uniqueID generates an id not already in the collection, retrying once on
// collision.
func (s *Store) uniqueID() (string, error) {
	for i := 0; i < 2; i++ {
		id := s.newID()
		if id != "" && indexOf(s.state.Builds, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("tracker: failed to generate unique ID after retries")
}
