package idle

import (
	"strings"
	"sync"
	"time"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/display"

	"github.com/benbjohnson/clock"
)

// recognized user-input event kinds that reset the quiet-period timer.
var activityKinds = map[string]struct{}{
	"mousedown":  {},
	"mousemove":  {},
	"keypress":   {},
	"scroll":     {},
	"touchstart": {},
	"touchmove":  {},
	"touchend":   {},
	"click":      {},
	"dblclick":   {},
}

// Controller is the unattended-session state machine. Armed means a timer is
// counting down toward a forced return to the home screen; Disarmed means the
// kiosk is already home (or an administrator is using it) and no timer runs.
// At most one timer is pending at any time.
type Controller struct {
	clk        clock.Clock
	timeout    time.Duration
	nav        display.Navigator
	onArm      func() // fire-and-forget visit accounting
	onActivity func() // fire-and-forget activity stamp

	mu           sync.Mutex
	timer        *clock.Timer
	armed        bool
	alive        bool
	path         string
	lastActivity time.Time
}

func NewController(clk clock.Clock, timeout time.Duration, nav display.Navigator, onArm func()) *Controller {
	if clk == nil {
		clk = clock.New()
	}
	return &Controller{
		clk:     clk,
		timeout: timeout,
		nav:     nav,
		onArm:   onArm,
		alive:   true,
		path:    "/",
	}
}

// SetOnActivity registers a callback fired whenever a recognized input event
// resets an armed session.
func (c *Controller) SetOnActivity(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onActivity = fn
}

// RouteChanged re-evaluates Armed/Disarmed for the new page. The home page
// and every administrative page disarm; anything else arms a fresh timer.
func (c *Controller) RouteChanged(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	c.path = path
	if exemptPath(path) {
		c.disarmLocked()
		return
	}
	c.armLocked()
}

// Activity handles a recognized user-input event: cancel the pending timer
// and schedule a new full quiet period. Unrecognized kinds are ignored.
func (c *Controller) Activity(kind string) {
	if _, ok := activityKinds[kind]; !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive || !c.armed {
		return
	}
	c.lastActivity = c.clk.Now()
	c.rescheduleLocked()
	if c.onActivity != nil {
		go c.onActivity()
	}
}

// Reset is the manual escape hatch for containing pages (e.g. after a modal
// closes without a raw input event reaching the document).
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive || exemptPath(c.path) {
		return
	}
	c.lastActivity = c.clk.Now()
	c.armLocked()
}

// Stop cancels any pending timer and marks the controller dead so an expiry
// racing with teardown cannot navigate from a torn-down context.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alive = false
	c.cancelLocked()
	c.armed = false
}

func (c *Controller) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

func (c *Controller) expire() {
	c.mu.Lock()
	if !c.alive || !c.armed {
		c.mu.Unlock()
		return
	}
	c.armed = false
	c.timer = nil
	c.path = "/"
	nav := c.nav
	c.mu.Unlock()

	if nav != nil {
		nav.NavigateHome()
	}
}

func (c *Controller) armLocked() {
	wasArmed := c.armed
	c.armed = true
	c.rescheduleLocked()
	if !wasArmed && c.onArm != nil {
		go c.onArm()
	}
}

func (c *Controller) disarmLocked() {
	c.cancelLocked()
	c.armed = false
}

// rescheduleLocked cancels the pending timer before scheduling the next one,
// preserving the single-timer invariant.
func (c *Controller) rescheduleLocked() {
	c.cancelLocked()
	c.timer = c.clk.AfterFunc(c.timeout, c.expire)
}

func (c *Controller) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func exemptPath(path string) bool {
	return path == "/" || strings.HasPrefix(path, "/admin")
}
