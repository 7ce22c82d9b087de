package autolink

import (
	"fmt"
	"time"
)

// Defaults applied by New. Each can be overridden through the
// corresponding setter before the first Tick.
const (
	DefaultMaxAttempts       = 5
	DefaultConnectionTimeout = 15 * time.Second
	DefaultReconnectDelay    = 30 * time.Second
	DefaultName              = "Connection"
)

// ConnectFunc attempts to initiate a connection. It returns whether an
// attempt was initiated, not whether the connection succeeded. It must
// not block; the expected pattern is to start the connection and return,
// leaving progress to be observed through the StatusFunc.
type ConnectFunc func() bool

// StatusFunc reports whether the connection is currently up. It is
// called on every Tick, so it must be cheap, typically a flag read.
type StatusFunc func() bool

// LogFunc receives a human-readable message. The same signature is used
// for both the log and the error channel.
type LogFunc func(message string)

// Supervisor decides, on each Tick, whether a reconnect attempt should
// be initiated for a single logical connection. It tracks attempt
// counts and disables itself after the configured ceiling is reached.
//
// The Supervisor owns no transport state and performs no I/O itself;
// connecting and status probing are delegated to the registered
// ConnectFunc and StatusFunc. A Supervisor supervises exactly one
// connection; create one instance per connection.
//
// A Supervisor is not safe for concurrent use. All methods must be
// called from a single goroutine, or the caller must serialize access
// externally. This mirrors the intended usage of driving Tick from one
// owning loop.
type Supervisor struct {
	name string

	// enabled controls whether Tick may initiate reconnect attempts.
	// It is cleared automatically once attempts reaches maxAttempts
	// while the connection is down.
	enabled bool

	// wasConnected is the connectivity as of the last observed
	// transition; Tick compares the probe result against it to detect
	// connect and disconnect edges.
	wasConnected bool

	// attempts counts decisions to try, not successes. It resets to
	// zero on Enable, on Reset, and on an observed transition to
	// connected.
	attempts    int
	maxAttempts int

	// lastAttempt and connStart are zero when unset. An unset
	// lastAttempt lets the first reconnect attempt fire immediately
	// rather than waiting out reconnectDelay.
	lastAttempt time.Time
	connStart   time.Time

	reconnectDelay time.Duration

	// connTimeout is recorded for a stalled-connection check that is
	// not currently enforced. SetConnectionTimeout is advisory.
	connTimeout time.Duration

	connect ConnectFunc
	status  StatusFunc
	logFn   LogFunc
	errFn   LogFunc

	// now is swapped out in tests.
	now func() time.Time
}

// New returns a Supervisor with reconnection enabled and default
// thresholds. An empty name falls back to DefaultName; the name appears
// only in log and error text.
func New(name string) *Supervisor {
	if name == "" {
		name = DefaultName
	}
	return &Supervisor{
		name:           name,
		enabled:        true,
		maxAttempts:    DefaultMaxAttempts,
		reconnectDelay: DefaultReconnectDelay,
		connTimeout:    DefaultConnectionTimeout,
		now:            time.Now,
	}
}

// SetMaxAttempts sets the ceiling on reconnect attempts before the
// Supervisor disables itself. It takes effect on the next Tick; lowering
// it below the current attempt count causes the next Tick to disable.
func (s *Supervisor) SetMaxAttempts(maxAttempts int) {
	s.maxAttempts = maxAttempts
}

// SetReconnectDelay sets the minimum spacing between consecutive
// reconnect attempts.
func (s *Supervisor) SetReconnectDelay(delay time.Duration) {
	s.reconnectDelay = delay
}

// SetConnectionTimeout records a budget for a stalled connection
// attempt. The value is stored but no timeout is currently enforced.
func (s *Supervisor) SetConnectionTimeout(timeout time.Duration) {
	s.connTimeout = timeout
}

// SetName sets the label used in log and error text.
func (s *Supervisor) SetName(name string) {
	s.name = name
}

// SetConnectFunc registers the connector. Tick is a no-op until both
// the connector and the status probe are registered.
func (s *Supervisor) SetConnectFunc(fn ConnectFunc) {
	s.connect = fn
}

// SetStatusFunc registers the status probe. Tick is a no-op until both
// the connector and the status probe are registered.
func (s *Supervisor) SetStatusFunc(fn StatusFunc) {
	s.status = fn
}

// SetLogFunc registers the log sink. A nil sink drops log messages.
func (s *Supervisor) SetLogFunc(fn LogFunc) {
	s.logFn = fn
}

// SetErrorFunc registers the error sink. A nil sink drops error
// messages; nothing the Supervisor reports is fatal.
func (s *Supervisor) SetErrorFunc(fn LogFunc) {
	s.errFn = fn
}

// Enable turns automatic reconnection on and resets the attempt
// counter, allowing a Supervisor that exhausted its attempt budget to
// resume. It is idempotent.
func (s *Supervisor) Enable() {
	s.enabled = true
	s.attempts = 0
	s.log("auto-reconnect enabled")
}

// Disable turns automatic reconnection off. It does not clear the
// attempt counter (use Reset for that) and cannot abort an attempt
// already handed to the connector. It is idempotent.
func (s *Supervisor) Disable() {
	s.enabled = false
	s.log("auto-reconnect disabled")
}

// Reset clears the attempt counter and both recorded timestamps,
// leaving the enabled flag untouched. Callers use it after an
// out-of-band manual reconnect to give the Supervisor a clean slate
// without re-enabling it if it had been disabled.
func (s *Supervisor) Reset() {
	s.attempts = 0
	s.lastAttempt = time.Time{}
	s.connStart = time.Time{}
}

// OnConnectionAttemptStarted records that the caller initiated a
// connection attempt outside the Tick path. It stamps both the attempt
// time and the connection-start time; it does not change the attempt
// counter or the enabled flag.
func (s *Supervisor) OnConnectionAttemptStarted() {
	now := s.now()
	s.connStart = now
	s.lastAttempt = now
}

// OnConnectionStatusChanged updates the Supervisor's view of
// connectivity. Tick calls it internally when the probe result changes;
// callers with their own event source may also call it directly.
//
// A transition to connected resets the attempt counter. A transition to
// disconnected, while enabled, stamps the attempt time so that the
// first reconnect waits out the configured delay.
func (s *Supervisor) OnConnectionStatusChanged(connected bool) {
	if connected && !s.wasConnected {
		s.attempts = 0
		s.connStart = time.Time{}
		s.log("connected successfully")
	} else if !connected && s.wasConnected {
		if s.enabled {
			s.lastAttempt = s.now()
			s.log("disconnected, will attempt reconnect")
		}
	}
	s.wasConnected = connected
}

// Tick runs one round of the reconnect decision. Call it regularly,
// e.g. from the owning loop or a ticker.
//
// Each call probes current connectivity, applies transition bookkeeping
// if the status changed, initiates a reconnect attempt when the
// connection is down, reconnection is enabled, the attempt budget is
// not exhausted, and the reconnect delay has elapsed, and finally
// disables reconnection once the budget is exhausted while the
// connection is still down.
//
// Tick is a no-op until both the connector and the status probe are
// registered. A connector that reports it could not initiate an attempt
// is surfaced through the error sink; the attempt still counts against
// the budget.
func (s *Supervisor) Tick() {
	if s.status == nil || s.connect == nil {
		return
	}

	connected := s.status()

	if connected != s.wasConnected {
		s.OnConnectionStatusChanged(connected)
	}

	if !connected && s.enabled &&
		s.attempts < s.maxAttempts &&
		s.delayElapsed() {
		s.attempts++
		now := s.now()
		s.lastAttempt = now
		s.connStart = now

		s.log(fmt.Sprintf("reconnecting (%d/%d)", s.attempts, s.maxAttempts))

		if !s.connect() {
			s.reportError("reconnect attempt failed to start")
		}
	}

	// Runs every Tick, not only right after an attempt, so it also
	// fires when maxAttempts was lowered below the current count.
	if s.attempts >= s.maxAttempts && !connected && s.enabled {
		s.enabled = false
		s.reportError("auto-reconnect disabled after max attempts")
	}
}

// Enabled reports whether automatic reconnection is currently active.
func (s *Supervisor) Enabled() bool {
	return s.enabled
}

// Attempts returns the number of reconnect attempts since the last
// success or reset.
func (s *Supervisor) Attempts() int {
	return s.attempts
}

// MaxAttempts returns the configured attempt ceiling.
func (s *Supervisor) MaxAttempts() int {
	return s.maxAttempts
}

// LastAttempt returns when the most recent attempt or disconnect was
// recorded. The zero time means no attempt has been recorded.
func (s *Supervisor) LastAttempt() time.Time {
	return s.lastAttempt
}

// Connected returns the last known connectivity as observed by Tick or
// reported through OnConnectionStatusChanged.
func (s *Supervisor) Connected() bool {
	return s.wasConnected
}

func (s *Supervisor) delayElapsed() bool {
	if s.lastAttempt.IsZero() {
		return true
	}
	return s.now().Sub(s.lastAttempt) > s.reconnectDelay
}

func (s *Supervisor) log(msg string) {
	if s.logFn != nil {
		s.logFn(s.name + " " + msg)
	}
}

func (s *Supervisor) reportError(msg string) {
	if s.errFn != nil {
		s.errFn(s.name + " " + msg)
	}
}
