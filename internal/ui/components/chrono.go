package components

import (
	"fmt"
	"time"
)

// Chrono is the session chronometer with an optional countdown. It does
// not tick by itself: the screen re-renders on its live tick and Chrono
// reads the clock on demand. It satisfies drill.Timers.
type Chrono struct {
	now       func() time.Time
	countdown time.Duration
	start     time.Time
	elapsed   time.Duration
	running   bool
}

// NewChrono creates a stopped chrono. A zero countdown disables it.
func NewChrono(countdown time.Duration, now func() time.Time) *Chrono {
	if now == nil {
		now = time.Now
	}
	return &Chrono{now: now, countdown: countdown}
}

// Reset zeroes the chrono and starts it.
func (c *Chrono) Reset() {
	c.elapsed = 0
	c.start = c.now()
	c.running = true
}

// Stop freezes the chrono.
func (c *Chrono) Stop() {
	if !c.running {
		return
	}
	c.elapsed += c.now().Sub(c.start)
	c.running = false
}

// Running reports whether the chrono is counting.
func (c *Chrono) Running() bool { return c.running }

// Elapsed returns the time counted so far.
func (c *Chrono) Elapsed() time.Duration {
	if c.running {
		return c.elapsed + c.now().Sub(c.start)
	}
	return c.elapsed
}

// HasCountdown reports whether a countdown is configured.
func (c *Chrono) HasCountdown() bool { return c.countdown > 0 }

// Remaining returns the countdown time left, never negative.
func (c *Chrono) Remaining() time.Duration {
	return max(c.countdown-c.Elapsed(), 0)
}

// Expired reports whether the countdown has run out.
func (c *Chrono) Expired() bool {
	return c.HasCountdown() && c.Remaining() == 0
}

// View renders "mm:ss", followed by the countdown when configured.
func (c *Chrono) View() string {
	s := FormatClock(c.Elapsed())
	if c.HasCountdown() {
		s += "  ⏳ " + FormatClock(c.Remaining())
	}
	return s
}

// FormatClock renders d as mm:ss, or h:mm:ss past an hour.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
