package notes

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Loaded      bool   `json:"loaded"`
	Notes       int    `json:"notes"`
	Tags        int    `json:"tags"`
	Theme       string `json:"theme"`
	StableIDs   bool   `json:"stable_ids"`
	StorageType string `json:"storage_type"`
	Storage     any    `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storageType := "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	var storageState any
	if intro, ok := s.storage.(introspection.Introspectable); ok {
		storageState = intro.State()
	}

	return ServiceState{
		Loaded:      s.notes.Loaded() && s.tags.Loaded() && s.dark.Loaded(),
		Notes:       len(s.notes.Get()),
		Tags:        len(s.tags.Get()),
		Theme:       s.Theme().String(),
		StableIDs:   s.stableIDs,
		StorageType: storageType,
		Storage:     storageState,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
