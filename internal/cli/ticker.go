package cli

import "time"

// clockTicker adapts time.Ticker to quiz.Ticker. Since Go 1.23 no stale tick
// is received after Stop or Reset returns.
type clockTicker struct {
	interval time.Duration
	ticker   *time.Ticker
}

func newClockTicker(interval time.Duration) *clockTicker {
	ticker := time.NewTicker(interval)
	ticker.Stop()
	return &clockTicker{interval: interval, ticker: ticker}
}

func (c *clockTicker) Start() {
	c.ticker.Reset(c.interval)
}

func (c *clockTicker) Stop() {
	c.ticker.Stop()
}

func (c *clockTicker) C() <-chan time.Time {
	return c.ticker.C
}
