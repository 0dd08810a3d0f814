package urlsync

import (
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/arremate/leilao-finder/pkg/types"
)

// History is the navigation side of the embedding client. Writes always use
// replace semantics; filter churn must never grow the history stack.
type History interface {
	Replace(query url.Values)
}

// ScrollPort captures and restores the viewport position around a URL
// write.
type ScrollPort interface {
	Capture() int
	Restore(y int)
}

// Timer is the cancellable handle of a scheduled debounce write.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounce; tests inject a manual implementation so no
// real timers are involved.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type phase int

const (
	phaseIdle phase = iota
	phaseWriting
	phaseRestoring
)

const DefaultDebounce = 300 * time.Millisecond

// Options configures a Synchronizer.
type Options struct {
	History  History
	Scroll   ScrollPort
	Clock    Clock
	Debounce time.Duration
	// Continuous mirrors every state change into the URL (debounced), the
	// mobile flow. When false changes are staged until Apply is called,
	// the desktop flow.
	Continuous bool
	// Settle is invoked between the URL commit and the scroll restore,
	// giving the embedding client one hook to let its re-render finish.
	Settle func()
	Log    *slog.Logger
}

// Synchronizer owns the write path from filter state to the URL. A single
// write cycle runs capture scroll, encode, commit, settle, restore scroll;
// the reentrancy guard keeps a newer change from starting a second cycle
// until the in-flight one has fully completed. Skipped writes are not
// queued: whatever state is current when the guard releases is what gets
// written next.
type Synchronizer struct {
	mu    sync.Mutex
	opts  Options
	state types.FilterState
	sort  types.SortOption
	page  int

	lastState types.FilterState
	lastPage  int
	seeded    bool

	timer         Timer
	phase         phase
	dirty         bool
	pendingScroll *int
}

func NewSynchronizer(opts Options) *Synchronizer {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Settle == nil {
		opts.Settle = func() {}
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Synchronizer{
		opts: opts,
		sort: types.DefaultSort,
		page: 1,
	}
}

// Seed primes the synchronizer from the initial URL read so the first write
// compares against what the URL already encodes instead of defaults.
func (s *Synchronizer) Seed(state types.FilterState, sort types.SortOption, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	s.sort = sort
	s.page = page
	s.lastState = state.Clone()
	s.lastPage = page
	s.seeded = true
}

// OnFiltersChanged records the newest state. In continuous mode it also
// schedules a debounced write; a pending write is cancelled first so only
// the state after the user stops changing filters is written.
func (s *Synchronizer) OnFiltersChanged(state types.FilterState) {
	s.mu.Lock()
	s.state = state.Clone()
	if !s.opts.Continuous {
		s.mu.Unlock()
		return
	}
	s.scheduleLocked()
	s.mu.Unlock()
}

// SetSort records a new sort option and schedules like a filter change.
func (s *Synchronizer) SetSort(sort types.SortOption) {
	s.mu.Lock()
	s.sort = sort
	if s.opts.Continuous {
		s.scheduleLocked()
	}
	s.mu.Unlock()
}

// SetPage requests a page change, carrying the pre-change scroll position
// explicitly because the viewport may move before the write settles. Page
// changes always write immediately.
func (s *Synchronizer) SetPage(page int, scrollY int) {
	s.mu.Lock()
	s.page = page
	s.pendingScroll = &scrollY
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.runWrite()
}

// Apply commits the staged state immediately, the desktop flow's explicit
// apply signal.
func (s *Synchronizer) Apply() {
	s.mu.Lock()
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.runWrite()
}

// Flush cancels any pending debounce and writes right away. Used on
// teardown so the last state is not lost with the timer.
func (s *Synchronizer) Flush() {
	s.Apply()
}

func (s *Synchronizer) scheduleLocked() {
	s.cancelTimerLocked()
	s.timer = s.opts.Clock.AfterFunc(s.opts.Debounce, s.runWrite)
}

func (s *Synchronizer) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// runWrite executes one write cycle, or marks the cycle dirty when another
// one is still in flight.
func (s *Synchronizer) runWrite() {
	s.mu.Lock()
	if s.phase != phaseIdle {
		// Guard held: remember that newer state exists and let the
		// in-flight cycle pick it up on release.
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.phase = phaseWriting
	state := s.state.Clone()
	sort := s.sort
	page := s.page

	// Page handling: a page explicitly requested through SetPage wins;
	// otherwise a changed filter set resets to the first page and an
	// unchanged one preserves whatever the URL already encodes.
	if s.seeded && !statesEqual(&state, &s.lastState) && page == s.lastPage {
		page = 1
		s.page = 1
	}

	scrollY := 0
	if s.pendingScroll != nil {
		scrollY = *s.pendingScroll
		s.pendingScroll = nil
	} else if s.opts.Scroll != nil {
		scrollY = s.opts.Scroll.Capture()
	}
	s.mu.Unlock()

	query := EncodeQuery(&state, sort, page)
	if s.opts.History != nil {
		s.opts.History.Replace(query)
	}
	s.opts.Log.Debug("url rewritten", "params", len(query), "page", page)

	s.mu.Lock()
	s.phase = phaseRestoring
	s.lastState = state
	s.lastPage = page
	s.seeded = true
	s.mu.Unlock()

	s.opts.Settle()
	if s.opts.Scroll != nil {
		s.opts.Scroll.Restore(scrollY)
	}

	s.mu.Lock()
	s.phase = phaseIdle
	rerun := s.dirty
	s.dirty = false
	s.mu.Unlock()

	if rerun {
		s.runWrite()
	}
}

func statesEqual(a, b *types.FilterState) bool {
	for _, key := range types.AllFacets {
		if !types.FacetEqual(a, b, key) {
			return false
		}
	}
	return true
}
