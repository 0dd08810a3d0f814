package tracking

import (
	"time"

	"github.com/arremate/leilao-finder/pkg/types"
)

// Tracking receives browsing telemetry. Implementations must never block a
// request; publishing happens on the caller's goroutine only if it is
// already asynchronous.
type Tracking interface {
	TrackSession(sessionId, userAgent string)
	TrackSearch(sessionId string, filters *types.FilterState, sort types.SortOption, page, resultCount int)
	TrackFilterChange(sessionId string, facet types.FacetKey, activeFilters int)
	Close() error
}

type SessionEvent struct {
	SessionId string `json:"sessionId"`
	UserAgent string `json:"userAgent"`
	Timestamp int64  `json:"ts"`
}

type SearchEvent struct {
	SessionId   string             `json:"sessionId"`
	ContentType types.ContentType  `json:"contentType"`
	Filters     *types.FilterState `json:"filters"`
	Sort        types.SortOption   `json:"sort"`
	Page        int                `json:"page"`
	ResultCount int                `json:"results"`
	Timestamp   int64              `json:"ts"`
}

type FilterChangeEvent struct {
	SessionId     string         `json:"sessionId"`
	Facet         types.FacetKey `json:"facet"`
	ActiveFilters int            `json:"activeFilters"`
	Timestamp     int64          `json:"ts"`
}

func now() int64 {
	return time.Now().Unix()
}

// NoopTracking is used when no broker is configured.
type NoopTracking struct{}

func (NoopTracking) TrackSession(string, string) {}
func (NoopTracking) TrackSearch(string, *types.FilterState, types.SortOption, int, int) {
}
func (NoopTracking) TrackFilterChange(string, types.FacetKey, int) {}
func (NoopTracking) Close() error                                  { return nil }
