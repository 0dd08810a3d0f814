package urlsync

import (
	"net/url"
	"testing"
	"time"

	"github.com/arremate/leilao-finder/pkg/types"
)

// fakeHistory keeps a stack so tests can assert pure replace semantics: the
// stack length never grows however many writes happen.
type fakeHistory struct {
	stack    []url.Values
	replaces int
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{stack: []url.Values{{}}}
}

func (h *fakeHistory) Replace(query url.Values) {
	h.stack[len(h.stack)-1] = query
	h.replaces++
}

func (h *fakeHistory) current() url.Values {
	return h.stack[len(h.stack)-1]
}

type fakeScroll struct {
	y        int
	restored []int
}

func (s *fakeScroll) Capture() int  { return s.y }
func (s *fakeScroll) Restore(y int) { s.restored = append(s.restored, y) }

// manualClock hands out timers that only fire when the test says so.
type manualClock struct {
	pending []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) Timer {
	t := &manualTimer{f: f}
	c.pending = append(c.pending, t)
	return t
}

// fire runs every pending timer that has not been stopped.
func (c *manualClock) fire() {
	pending := c.pending
	c.pending = nil
	for _, t := range pending {
		if !t.stopped {
			t.f()
		}
	}
}

func newTestSync(continuous bool) (*Synchronizer, *fakeHistory, *fakeScroll, *manualClock) {
	history := newFakeHistory()
	scroll := &fakeScroll{}
	clock := &manualClock{}
	s := NewSynchronizer(Options{
		History:    history,
		Scroll:     scroll,
		Clock:      clock,
		Continuous: continuous,
	})
	s.Seed(types.DefaultFilterState(types.ContentVehicle), types.DefaultSort, 1)
	return s, history, scroll, clock
}

func TestDebounceCoalescesChanges(t *testing.T) {
	s, history, _, clock := newTestSync(true)

	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "fiat"
	s.OnFiltersChanged(state)
	state.Brand = "ford"
	s.OnFiltersChanged(state)
	state.Brand = "toyota"
	s.OnFiltersChanged(state)

	if history.replaces != 0 {
		t.Fatalf("nothing may be written before the debounce fires, got %d", history.replaces)
	}
	clock.fire()
	if history.replaces != 1 {
		t.Fatalf("rapid changes must coalesce into one write, got %d", history.replaces)
	}
	if got := history.current().Get("brand"); got != "toyota" {
		t.Fatalf("only the final state is written, got brand=%q", got)
	}
}

func TestNoHistoryPollution(t *testing.T) {
	s, history, _, clock := newTestSync(true)

	state := types.DefaultFilterState(types.ContentVehicle)
	for _, brand := range []string{"fiat", "ford", "honda", "toyota", "chevrolet"} {
		state.Brand = brand
		s.OnFiltersChanged(state)
		clock.fire()
	}

	if len(history.stack) != 1 {
		t.Fatalf("history stack grew to %d entries, replace semantics violated", len(history.stack))
	}
	if history.replaces != 5 {
		t.Fatalf("expected 5 replaces, got %d", history.replaces)
	}
}

func TestStagedModeWritesOnlyOnApply(t *testing.T) {
	s, history, _, clock := newTestSync(false)

	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "toyota"
	s.OnFiltersChanged(state)
	clock.fire()
	if history.replaces != 0 {
		t.Fatalf("staged mode must not write without Apply, got %d writes", history.replaces)
	}

	s.Apply()
	if history.replaces != 1 {
		t.Fatalf("Apply must write immediately, got %d writes", history.replaces)
	}
	if history.current().Get("brand") != "toyota" {
		t.Fatalf("unexpected query: %v", history.current())
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	s, history, _, _ := newTestSync(false)
	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "toyota"
	s.OnFiltersChanged(state)
	s.SetPage(4, 0)

	if history.current().Get("page") != "4" {
		t.Fatalf("expected page 4 encoded, got %v", history.current())
	}

	// A filter change relative to what the URL encodes resets to page 1,
	// which is pruned from the query.
	state.Brand = "fiat"
	s.OnFiltersChanged(state)
	s.Apply()
	if history.current().Has("page") {
		t.Fatalf("page must reset on filter change, got %v", history.current())
	}

	// An unchanged filter set preserves the page.
	s.SetPage(2, 0)
	s.Apply()
	if history.current().Get("page") != "2" {
		t.Fatalf("page must be preserved when filters are unchanged, got %v", history.current())
	}
}

func TestScrollCaptureAndRestore(t *testing.T) {
	s, _, scroll, _ := newTestSync(false)
	scroll.y = 420

	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "toyota"
	s.OnFiltersChanged(state)
	s.Apply()

	if len(scroll.restored) != 1 || scroll.restored[0] != 420 {
		t.Fatalf("scroll position not restored, got %v", scroll.restored)
	}
}

func TestSetPageCarriesExplicitScroll(t *testing.T) {
	s, _, scroll, _ := newTestSync(false)
	scroll.y = 999 // would be captured if the explicit position were ignored

	s.SetPage(2, 120)
	if len(scroll.restored) != 1 || scroll.restored[0] != 120 {
		t.Fatalf("explicit scroll position must win, got %v", scroll.restored)
	}
}

func TestReentrancyGuardSerializesWrites(t *testing.T) {
	history := newFakeHistory()
	clock := &manualClock{}
	var s *Synchronizer
	reentered := false
	s = NewSynchronizer(Options{
		History: history,
		Clock:   clock,
		Settle: func() {
			// A change arriving while the write cycle is still in flight
			// must not start a second concurrent cycle.
			if !reentered {
				reentered = true
				state := types.DefaultFilterState(types.ContentVehicle)
				state.Brand = "fiat"
				s.OnFiltersChanged(state)
				s.Apply()
				if history.replaces != 1 {
					t.Errorf("nested write ran inside the guard: %d replaces", history.replaces)
				}
			}
		},
	})
	s.Seed(types.DefaultFilterState(types.ContentVehicle), types.DefaultSort, 1)

	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "toyota"
	s.OnFiltersChanged(state)
	s.Apply()

	// The guarded change is written once the first cycle releases.
	if history.replaces != 2 {
		t.Fatalf("expected deferred second write, got %d", history.replaces)
	}
	if history.current().Get("brand") != "fiat" {
		t.Fatalf("latest state must win after guard release, got %v", history.current())
	}
}

func TestDebouncedWriteCancelledByNewChange(t *testing.T) {
	s, history, _, clock := newTestSync(true)

	state := types.DefaultFilterState(types.ContentVehicle)
	state.Brand = "fiat"
	s.OnFiltersChanged(state)
	first := clock.pending[len(clock.pending)-1]

	state.Brand = "toyota"
	s.OnFiltersChanged(state)

	if !first.stopped {
		t.Fatal("previous debounce timer must be cancelled by a newer change")
	}
	clock.fire()
	if history.replaces != 1 {
		t.Fatalf("expected a single write, got %d", history.replaces)
	}
}
