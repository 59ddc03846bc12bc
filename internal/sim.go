// Package internal holds the simulated clock and pins shared by package tests
// and the --sim demo mode.
package internal

import (
	"sync"
	"time"

	"github.com/guidecane/firmware/pkg/hal"
)

// SimClock is a deterministic hal.Clock: Sleep advances simulated time
// instantly instead of blocking.
type SimClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewSimClock() *SimClock {
	return &SimClock{now: time.Unix(0, 0)}
}

func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves simulated time forward
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Edge is one recorded output transition
type Edge struct {
	At   time.Time
	High bool
}

// SimOut records every transition of an output line with its simulated timestamp
type SimOut struct {
	mu    sync.Mutex
	clock hal.Clock
	level bool
	edges []Edge
}

func NewSimOut(clock hal.Clock) *SimOut {
	return &SimOut{clock: clock}
}

func (o *SimOut) High() { o.set(true) }
func (o *SimOut) Low()  { o.set(false) }

func (o *SimOut) set(level bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.level == level {
		return
	}
	o.level = level
	o.edges = append(o.edges, Edge{At: o.clock.Now(), High: level})
}

// Edges returns a copy of all recorded transitions
func (o *SimOut) Edges() []Edge {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Edge, len(o.edges))
	copy(out, o.edges)
	return out
}

// RisingEdges counts transitions to high
func (o *SimOut) RisingEdges() int {
	n := 0
	for _, e := range o.Edges() {
		if e.High {
			n++
		}
	}
	return n
}

// LastRise returns the timestamp of the most recent transition to high
func (o *SimOut) LastRise() (time.Time, bool) {
	edges := o.Edges()
	for i := len(edges) - 1; i >= 0; i-- {
		if edges[i].High {
			return edges[i].At, true
		}
	}
	return time.Time{}, false
}

// SimIn is a settable input line (defaults high, i.e. a released active-low button)
type SimIn struct {
	mu    sync.Mutex
	level bool
}

func NewSimIn() *SimIn {
	return &SimIn{level: true}
}

func (i *SimIn) Read() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.level
}

func (i *SimIn) Set(level bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.level = level
}

// FnIn adapts a closure into a hal.DigitalIn
type FnIn func() bool

func (f FnIn) Read() bool { return f() }

// NewEchoSim models the sensor echo line: it goes high `delay` after the most
// recent trigger rise and stays high for `width`. A zero width means no echo
// ever comes back (sensor timeout path).
func NewEchoSim(clock hal.Clock, trigger *SimOut, delay, width time.Duration) hal.DigitalIn {
	return FnIn(func() bool {
		rise, ok := trigger.LastRise()
		if !ok || width == 0 {
			return false
		}
		since := clock.Now().Sub(rise)
		return since >= delay && since < delay+width
	})
}
