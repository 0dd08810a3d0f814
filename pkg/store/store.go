package store

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/arremate/leilao-finder/pkg/types"
)

// Listener receives a snapshot of the full state after every applied
// update. Snapshots are deep copies and safe to keep.
type Listener func(types.FilterState)

// FilterStore is the single source of truth for the filter state. All
// mutation goes through UpdateFilter, ResetFilters and SetFilters; each
// call is atomic and applies its cross-facet cascade before any listener
// observes the new state.
type FilterStore struct {
	mu        sync.RWMutex
	state     types.FilterState
	expanded  map[string]bool
	listeners map[int]Listener
	nextId    int
	log       *slog.Logger
}

func New(contentType types.ContentType, log *slog.Logger) *FilterStore {
	if log == nil {
		log = slog.Default()
	}
	return &FilterStore{
		state:     types.DefaultFilterState(contentType),
		expanded:  make(map[string]bool),
		listeners: make(map[int]Listener),
		log:       log,
	}
}

// Filters returns a snapshot of the current state.
func (s *FilterStore) Filters() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ActiveFilters counts the facets currently differing from their defaults.
func (s *FilterStore) ActiveFilters() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveCount()
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *FilterStore) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextId
	s.nextId++
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// UpdateFilter applies one facet change plus its reset cascade. A value of
// the wrong type for the facet is rejected with an error and leaves the
// state untouched.
func (s *FilterStore) UpdateFilter(key types.FacetKey, value any) error {
	s.mu.Lock()
	changed, err := s.applyUpdate(key, value)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn("rejected filter update", "facet", key, "err", err)
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
	return nil
}

func (s *FilterStore) applyUpdate(key types.FacetKey, value any) (bool, error) {
	switch key {
	case types.FacetContentType:
		newType, ok := contentTypeValue(value)
		if !ok {
			return false, fmt.Errorf("facet %s expects a content type, got %T", key, value)
		}
		if !newType.Valid() {
			return false, fmt.Errorf("unknown content type %q", newType)
		}
		if newType == s.state.ContentType {
			return false, nil
		}
		previous := s.state.ContentType
		s.state.ContentType = newType
		// Leaving a domain clears its exclusive facets so no stale filter
		// produces an empty result set under the new type.
		for _, facet := range types.CrossDomainFacets[previous] {
			s.state.ResetFacet(facet)
		}
		return true, nil
	case types.FacetLocation:
		loc, ok := value.(types.Location)
		if !ok {
			return false, fmt.Errorf("facet %s expects a location, got %T", key, value)
		}
		if loc.State != s.state.Location.State {
			// A city only makes sense under the state it was picked for.
			loc.City = ""
		}
		if loc == s.state.Location {
			return false, nil
		}
		s.state.Location = loc
		return true, nil
	case types.FacetVehicleTypes, types.FacetPropertyTypes:
		list, ok := value.([]string)
		if !ok {
			return false, fmt.Errorf("facet %s expects a string list, got %T", key, value)
		}
		current := s.state.VehicleTypes
		if key == types.FacetPropertyTypes {
			current = s.state.PropertyTypes
		}
		if typesEqual(current, list) {
			return false, nil
		}
		if key == types.FacetVehicleTypes {
			s.state.VehicleTypes = append([]string{}, list...)
		} else {
			s.state.PropertyTypes = append([]string{}, list...)
		}
		return true, nil
	case types.FacetPrice, types.FacetYear, types.FacetUsefulArea:
		r, ok := value.(types.RangeValues)
		if !ok {
			return false, fmt.Errorf("facet %s expects range values, got %T", key, value)
		}
		target := s.rangeField(key)
		if *target == r {
			return false, nil
		}
		*target = r
		return true, nil
	}

	// Plain string facets, with the brand cascade resolved from the table.
	str, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("facet %s expects a string, got %T", key, value)
	}
	target := s.stringField(key)
	if target == nil {
		return false, fmt.Errorf("unknown facet %q", key)
	}
	if *target == str {
		return false, nil
	}
	*target = str
	for _, dependent := range types.ResetCascade[key] {
		s.state.ResetFacet(dependent)
	}
	return true, nil
}

func (s *FilterStore) rangeField(key types.FacetKey) *types.RangeValues {
	switch key {
	case types.FacetPrice:
		return &s.state.Price
	case types.FacetYear:
		return &s.state.Year
	default:
		return &s.state.UsefulArea
	}
}

func (s *FilterStore) stringField(key types.FacetKey) *string {
	switch key {
	case types.FacetCategory:
		return &s.state.Category
	case types.FacetBrand:
		return &s.state.Brand
	case types.FacetModel:
		return &s.state.Model
	case types.FacetColor:
		return &s.state.Color
	case types.FacetFormat:
		return &s.state.Format
	case types.FacetOrigin:
		return &s.state.Origin
	case types.FacetPlace:
		return &s.state.Place
	}
	return nil
}

// ResetFilters restores every facet to its default, keeping the current
// content type.
func (s *FilterStore) ResetFilters() {
	s.mu.Lock()
	s.state = types.DefaultFilterState(s.state.ContentType)
	snapshot := s.state.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// SetFilters replaces the whole state in one step. Used by the URL reader
// on load so intermediate states are never observable.
func (s *FilterStore) SetFilters(state types.FilterState) {
	s.mu.Lock()
	s.state = state.Clone()
	snapshot := s.state.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *FilterStore) notify(snapshot types.FilterState) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()
	for _, l := range listeners {
		l(snapshot)
	}
}

// SetSectionExpanded records presentation-only accordion state. It is kept
// on the store for convenience but takes no part in filtering.
func (s *FilterStore) SetSectionExpanded(section string, open bool) {
	s.mu.Lock()
	s.expanded[section] = open
	s.mu.Unlock()
}

func (s *FilterStore) SectionExpanded(section string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded[section]
}

func contentTypeValue(value any) (types.ContentType, bool) {
	switch v := value.(type) {
	case types.ContentType:
		return v, true
	case string:
		return types.ContentType(v), true
	}
	return "", false
}

// typesEqual compares type selections as sets; order is irrelevant.
func typesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}
