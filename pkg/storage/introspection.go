package storage

import (
	"time"

	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Objects     int            `json:"objects"`
	PerClass    map[string]int `json:"per_class"`
	BackendType string         `json:"backend_type"`
	Watching    bool           `json:"watching"`
	LastPersist *time.Time     `json:"last_persist,omitempty"`
	LastReload  *time.Time     `json:"last_reload,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Engine) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	backendType := "unknown"
	if comp, ok := s.backend.(introspection.Component); ok {
		backendType = comp.ComponentType()
	}

	perClass := make(map[string]int)
	for _, e := range s.objects {
		perClass[e.Class()]++
	}

	return EngineState{
		Objects:     len(s.objects),
		PerClass:    perClass,
		BackendType: backendType,
		Watching:    s.watching,
		LastPersist: s.lastPersist,
		LastReload:  s.lastReload,
	}
}

// ComponentType implements introspection.Component.
func (s *Engine) ComponentType() string {
	return "engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
