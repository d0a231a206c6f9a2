package storage

import (
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	bestObject   = "best"
	bestProperty = "time"
)

// DefaultAppName is the save-data application name.
const DefaultAppName = "thecube"

type bestRecord struct {
	Millis    int64     `yaml:"millis"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// SaveDataStore keeps the best time in the platform save-data directory. A
// store without a manager keeps the value in memory only.
type SaveDataStore struct {
	manager *gdata.Manager
	best    int64
}

// OpenSaveData opens the save-data store for app.
func OpenSaveData(app string) (*SaveDataStore, error) {
	if app == "" {
		app = DefaultAppName
	}
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return NewSaveDataStore(m), nil
}

// NewSaveDataStore wraps a manager, which may be nil.
func NewSaveDataStore(m *gdata.Manager) *SaveDataStore {
	return &SaveDataStore{manager: m}
}

// LoadBest returns the stored best time, or 0.
func (s *SaveDataStore) LoadBest() (int64, error) {
	if s.manager == nil {
		return s.best, nil
	}
	if !s.manager.ObjectPropExists(bestObject, bestProperty) {
		return 0, nil
	}
	data, err := s.manager.LoadObjectProp(bestObject, bestProperty)
	if err != nil {
		return 0, fmt.Errorf("failed to load best time: %w", err)
	}
	var rec bestRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("failed to unmarshal best time: %w", err)
	}
	return rec.Millis, nil
}

// SaveBest replaces the stored best time.
func (s *SaveDataStore) SaveBest(ms int64) error {
	if ms < 0 {
		return ErrNegativeTime
	}
	s.best = ms
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(bestRecord{Millis: ms, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal best time: %w", err)
	}
	if err := s.manager.SaveObjectProp(bestObject, bestProperty, data); err != nil {
		return fmt.Errorf("failed to save best time: %w", err)
	}
	return nil
}

// ClearBest resets the stored best time to zero.
func (s *SaveDataStore) ClearBest() error {
	return s.SaveBest(0)
}

// Close is a no-op; every save is written through.
func (s *SaveDataStore) Close() error { return nil }
