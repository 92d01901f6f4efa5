package forecast

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"InsightDesk/internal/model"
)

// Service builds scenario tables for request handlers. Concurrent requests for
// the same assumptions share one computation, and the last snapshot is kept so
// an unchanged form does not recompute.
type Service struct {
	group singleflight.Group

	mu       sync.Mutex
	lastKey  model.ScenarioAssumptions
	lastRows model.ScenarioTable
	hasLast  bool
}

// NewService creates a Service with an empty snapshot.
func NewService() *Service {
	return &Service{}
}

// Build returns the scenario table for a. cached reports whether the result
// came from the stored snapshot.
func (s *Service) Build(a model.ScenarioAssumptions) (table model.ScenarioTable, cached bool, err error) {
	if t, ok := s.snapshot(a); ok {
		return t, true, nil
	}

	v, err, _ := s.group.Do(fmt.Sprintf("%+v", a), func() (any, error) {
		t, err := BuildScenarios(a)
		if err != nil {
			return nil, err
		}
		s.store(a, t)
		return t, nil
	})
	if err != nil {
		return model.ScenarioTable{}, false, err
	}
	return v.(model.ScenarioTable), false, nil
}

func (s *Service) snapshot(a model.ScenarioAssumptions) (model.ScenarioTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasLast && s.lastKey == a {
		return s.lastRows, true
	}
	return model.ScenarioTable{}, false
}

func (s *Service) store(a model.ScenarioAssumptions, t model.ScenarioTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastKey, s.lastRows, s.hasLast = a, t, true
}
