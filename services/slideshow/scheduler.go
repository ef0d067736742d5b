package slideshow

import (
	"sync"
	"time"
)

// A Timer is a live repeating schedule.
type Timer interface {
	// Stop cancels the schedule. Calling Stop more than once is harmless.
	Stop()
}

// A Scheduler runs fn every interval until the returned Timer is stopped.
// Every must not call fn synchronously.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
}

// TickerScheduler schedules on the wall clock, one goroutine per live timer.
type TickerScheduler struct {
	dispatch func(func())
}

// NewTickerScheduler creates a wall-clock scheduler. When dispatch is not nil
// each tick is handed to it instead of being run on the timer goroutine, so
// callers with an event loop can serialize ticks with their other input.
func NewTickerScheduler(dispatch func(func())) *TickerScheduler {
	return &TickerScheduler{dispatch: dispatch}
}

// Every starts a time.Ticker backed timer.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}

	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn, s.dispatch)

	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) run(fn func(), dispatch func(func())) {
	defer t.ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			if dispatch != nil {
				dispatch(fn)
			} else {
				fn()
			}
		}
	}
}

// Stop does not wait for the timer goroutine; a tick already taken from the
// ticker may still be delivered.
func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.done) })
}
