package motion

import (
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultInterval spaces consecutive paced motor commands.
const DefaultInterval = 10 * time.Millisecond

// Pacer is a cancellable repeating tick source.
type Pacer interface {
	Start()
	// Stop is safe to call on an inactive pacer.
	Stop()
	Active() bool
}

// ClockPacer ticks on a clock.Ticker. The owner selects on C and calls
// Scheduler.Tick for every value received.
type ClockPacer struct {
	clock    clock.Clock
	interval time.Duration
	ticker   *clock.Ticker
}

func NewClockPacer(clk clock.Clock, interval time.Duration) *ClockPacer {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ClockPacer{clock: clk, interval: interval}
}

func (p *ClockPacer) Start() {
	if p.ticker != nil {
		return
	}
	p.ticker = p.clock.Ticker(p.interval)
}

func (p *ClockPacer) Stop() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	p.ticker = nil
}

func (p *ClockPacer) Active() bool {
	return p.ticker != nil
}

// C returns the tick channel, or nil while the pacer is stopped so a select
// on it never fires.
func (p *ClockPacer) C() <-chan time.Time {
	if p.ticker == nil {
		return nil
	}
	return p.ticker.C
}
