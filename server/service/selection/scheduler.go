package selection

import "time"

// Scheduler is the side-effect boundary around the double-tap timer: a
// single-shot, cancellable delayed callback. Injecting it keeps the machine
// testable without a real clock.
type Scheduler interface {
	// Schedule runs fn after d and returns a cancel function. Cancel is
	// idempotent; canceling after fn ran is a no-op.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production scheduler on top of time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}
