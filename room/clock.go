package room

import "time"

// Clock is the repeating task behind a room's ticks.
type Clock interface {
	C() <-chan time.Time
	Stop()
}

type tickerClock struct {
	t *time.Ticker
}

func NewTickerClock(hz int) Clock {
	if hz <= 0 {
		hz = 1
	}
	return &tickerClock{t: time.NewTicker(time.Second / time.Duration(hz))}
}

func (c *tickerClock) C() <-chan time.Time { return c.t.C }

func (c *tickerClock) Stop() { c.t.Stop() }
