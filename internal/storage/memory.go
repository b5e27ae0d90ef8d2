package storage

import (
	"slices"

	"github.com/zulandar/kitlog/internal/models"
)

// Memory is an in-process persister, mainly for tests. LoadErr and SaveErr
// inject failures.
type Memory struct {
	Builds  []models.Build
	Saves   int
	LoadErr error
	SaveErr error
}

// NewMemory returns a Memory seeded with builds.
func NewMemory(builds ...models.Build) *Memory {
	return &Memory{Builds: builds}
}

// Load returns a copy of the stored builds.
func (m *Memory) Load() ([]models.Build, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return slices.Clone(m.Builds), nil
}

// Save stores a copy of builds and counts the write.
func (m *Memory) Save(builds []models.Build) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Builds = slices.Clone(builds)
	m.Saves++
	return nil
}
