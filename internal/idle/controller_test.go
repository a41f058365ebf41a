package idle

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

type fakeNav struct {
	count int64
}

func (f *fakeNav) NavigateHome() { atomic.AddInt64(&f.count, 1) }

func (f *fakeNav) navigations() int64 { return atomic.LoadInt64(&f.count) }

const timeout = 180 * time.Second

func waitNavigations(t *testing.T, nav *fakeNav, want int64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if nav.navigations() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d navigations, got %d", want, nav.navigations())
}

func TestArmOnRouteChange(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	if c.Armed() {
		t.Fatalf("controller must start disarmed on home")
	}

	c.RouteChanged("/map")
	if !c.Armed() {
		t.Fatalf("expected armed on a kiosk page")
	}

	mock.Add(timeout)
	waitNavigations(t, nav, 1)
	if c.Armed() {
		t.Fatalf("expiry must disarm")
	}
	if c.Path() != "/" {
		t.Fatalf("expiry must return home, got %q", c.Path())
	}
}

func TestActivityResetsSingleTimer(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	c.RouteChanged("/news")

	// A burst of activity events, each well inside the quiet period.
	for i := 0; i < 10; i++ {
		mock.Add(timeout / 2)
		c.Activity("touchstart")
	}

	// Just short of a full quiet period after the last event: nothing fires.
	mock.Add(timeout - time.Second)
	if n := nav.navigations(); n != 0 {
		t.Fatalf("timer fired early after %d navigations", n)
	}

	// Crossing the period after the *last* activity fires exactly once.
	mock.Add(2 * time.Second)
	waitNavigations(t, nav, 1)
}

func TestDisarmOnHomeAndAdmin(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	c.RouteChanged("/gallery")
	c.RouteChanged("/admin/map")
	if c.Armed() {
		t.Fatalf("admin pages must disarm")
	}
	mock.Add(10 * timeout)
	if nav.navigations() != 0 {
		t.Fatalf("no redirect may fire while disarmed")
	}

	c.RouteChanged("/about")
	c.RouteChanged("/")
	if c.Armed() {
		t.Fatalf("home page must disarm")
	}
	mock.Add(10 * timeout)
	if nav.navigations() != 0 {
		t.Fatalf("no redirect may fire while disarmed")
	}
}

func TestStopPreventsStaleNavigation(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)

	c.RouteChanged("/map")
	c.Stop()

	mock.Add(10 * timeout)
	time.Sleep(10 * time.Millisecond)
	if nav.navigations() != 0 {
		t.Fatalf("stopped controller must not navigate")
	}

	// Dead controllers ignore further input.
	c.Activity("click")
	c.RouteChanged("/map")
	if c.Armed() {
		t.Fatalf("stopped controller must stay disarmed")
	}
}

func TestUnrecognizedActivityIgnored(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	c.RouteChanged("/map")
	mock.Add(timeout / 2)
	c.Activity("hover")

	// The original timer keeps its schedule.
	mock.Add(timeout / 2)
	waitNavigations(t, nav, 1)
}

func TestManualReset(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	c.RouteChanged("/map")
	mock.Add(timeout - time.Second)
	c.Reset()

	mock.Add(timeout - time.Second)
	if nav.navigations() != 0 {
		t.Fatalf("reset must restart the full quiet period")
	}
	mock.Add(2 * time.Second)
	waitNavigations(t, nav, 1)
}

func TestResetNoopWhileExempt(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	c := NewController(mock, timeout, nav, nil)
	defer c.Stop()

	c.Reset() // still on home
	if c.Armed() {
		t.Fatalf("reset on home must not arm")
	}
}

func TestArmBumpsVisitCounter(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	var bumps int64
	c := NewController(mock, timeout, nav, func() { atomic.AddInt64(&bumps, 1) })
	defer c.Stop()

	c.RouteChanged("/map")
	c.Activity("click") // already armed, no second bump
	c.RouteChanged("/news")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && atomic.LoadInt64(&bumps) < 1 {
		time.Sleep(time.Millisecond)
	}
	if got := atomic.LoadInt64(&bumps); got != 1 {
		t.Fatalf("expected one bump per arm transition, got %d", got)
	}
}

func TestActivityStampsCallback(t *testing.T) {
	mock := clock.NewMock()
	nav := &fakeNav{}
	var stamps int64
	c := NewController(mock, timeout, nav, nil)
	c.SetOnActivity(func() { atomic.AddInt64(&stamps, 1) })
	defer c.Stop()

	c.Activity("click") // disarmed: no stamp
	c.RouteChanged("/map")
	c.Activity("hover") // unrecognized: no stamp
	c.Activity("click")
	c.Activity("touchstart")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && atomic.LoadInt64(&stamps) < 2 {
		time.Sleep(time.Millisecond)
	}
	if got := atomic.LoadInt64(&stamps); got != 2 {
		t.Fatalf("expected a stamp per recognized armed activity, got %d", got)
	}
}
