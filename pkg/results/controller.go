package results

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arremate/leilao-finder/pkg/engine"
	"github.com/arremate/leilao-finder/pkg/source"
	"github.com/arremate/leilao-finder/pkg/store"
	"github.com/arremate/leilao-finder/pkg/types"
)

const DefaultPageSize = 12

// LoadErrorMessage is the only user-visible failure text this controller
// produces; the rendering layer pairs it with a retry affordance.
const LoadErrorMessage = "failed to load items"

// Snapshot is the view the rendering layer consumes. IsInitialLoading is
// true only before the first successful fetch of the current content type;
// later recomputes flag IsTransitioning instead so the skeleton is shown
// just once.
type Snapshot struct {
	Items            []types.Item           `json:"items"`
	IsInitialLoading bool                   `json:"isInitialLoading"`
	IsTransitioning  bool                   `json:"isTransitioning"`
	CurrentPage      int                    `json:"currentPage"`
	TotalPages       int                    `json:"totalPages"`
	Statistics       engine.ItemsStatistics `json:"statistics"`
	Error            string                 `json:"error,omitempty"`
}

// Controller derives the paginated item window from the filter store and
// the data source. It owns page and sort, reacts to store changes and
// signals page resets outward instead of rendering out-of-range pages.
type Controller struct {
	mu       sync.Mutex
	store    *store.FilterStore
	source   source.Source
	pageSize int
	log      *slog.Logger

	page        int
	sort        types.SortOption
	raw         []types.Item
	loadedFor   types.ContentType
	hasLoaded   bool
	snapshot    Snapshot
	unsubscribe func()

	// PageReset is invoked when the requested page exceeds the total so
	// the routing layer can rewrite the URL; PageChanged forwards explicit
	// page requests together with their pre-change scroll position.
	PageReset   func(page int)
	PageChanged func(page, scrollY int)
}

func NewController(filterStore *store.FilterStore, src source.Source, pageSize int, log *slog.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		store:    filterStore,
		source:   src,
		pageSize: pageSize,
		log:      log,
		page:     1,
		sort:     types.DefaultSort,
		snapshot: Snapshot{IsInitialLoading: true, CurrentPage: 1, TotalPages: 1, Items: []types.Item{}},
	}
	return c
}

// Start subscribes to the filter store; every applied filter change resets
// to the first page and recomputes.
func (c *Controller) Start(ctx context.Context) {
	c.unsubscribe = c.store.Subscribe(func(types.FilterState) {
		c.mu.Lock()
		c.page = 1
		c.mu.Unlock()
		c.Recompute(ctx)
	})
	c.Recompute(ctx)
}

func (c *Controller) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Snapshot returns the current view. The items slice is shared but never
// mutated afterwards.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// SetSort changes the comparator and recomputes from page one.
func (c *Controller) SetSort(ctx context.Context, sort types.SortOption) {
	c.mu.Lock()
	c.sort = sort
	c.page = 1
	c.mu.Unlock()
	c.Recompute(ctx)
}

func (c *Controller) Sort() types.SortOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

// SetPage requests a page, carrying the caller's scroll position at the
// moment of the request. The position is forwarded, not re-derived later,
// because the viewport may have moved by the time the URL settles.
func (c *Controller) SetPage(ctx context.Context, page, scrollY int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	changed := c.PageChanged
	c.mu.Unlock()
	if changed != nil {
		changed(page, scrollY)
	}
	c.Recompute(ctx)
}

// Retry re-runs the fetch after a load failure.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	c.raw = nil
	c.hasLoaded = false
	c.mu.Unlock()
	c.Recompute(ctx)
}

// Recompute runs the full pipeline: fetch (when the content type changed
// or nothing is loaded), filter, sort, paginate. Fetch failures surface as
// a user-visible message and clear the loading state; the filter state is
// never touched.
func (c *Controller) Recompute(ctx context.Context) {
	filters := c.store.Filters()

	c.mu.Lock()
	needsFetch := !c.hasLoaded || c.loadedFor != filters.ContentType
	if c.hasLoaded {
		c.snapshot.IsTransitioning = true
	}
	page := c.page
	sort := c.sort
	c.mu.Unlock()

	if needsFetch {
		items, err := c.source.ListItems(ctx, filters.ContentType)
		if err != nil {
			c.log.Error("listing fetch failed", "contentType", filters.ContentType, "err", err)
			c.mu.Lock()
			c.snapshot = Snapshot{
				Items:       []types.Item{},
				CurrentPage: 1,
				TotalPages:  1,
				Error:       LoadErrorMessage,
			}
			c.mu.Unlock()
			return
		}
		c.mu.Lock()
		c.raw = items
		c.loadedFor = filters.ContentType
		c.hasLoaded = true
		c.mu.Unlock()
	}

	c.mu.Lock()
	raw := c.raw
	c.mu.Unlock()

	filtered := engine.ApplyFilters(raw, &filters)
	sorted := engine.SortItems(filtered, sort)
	totalPages := engine.TotalPages(len(sorted), c.pageSize)

	if page > totalPages {
		// Out of range is a recoverable condition: snap back to the first
		// page and tell the routing layer instead of rendering an empty
		// window.
		page = 1
		c.mu.Lock()
		c.page = 1
		reset := c.PageReset
		c.mu.Unlock()
		if reset != nil {
			reset(1)
		}
	}

	window := engine.PageSlice(sorted, page, c.pageSize)

	c.mu.Lock()
	c.snapshot = Snapshot{
		Items:       window,
		CurrentPage: page,
		TotalPages:  totalPages,
		Statistics:  engine.CalculateItemsStatistics(sorted, filters.ContentType),
	}
	c.mu.Unlock()
}
