// Package tone drives the buzzer. Playback is deliberately blocking: while a
// pattern renders, the caller's loop does not sample, poll or drain anything,
// which is what keeps navigation feedback from mixing into an active alert.
package tone

import (
	"time"

	"github.com/guidecane/firmware/pkg/hal"
)

// Step is one element of a pattern: a tone at Freq for Duration, or a rest
// when Freq is zero.
type Step struct {
	Freq     int
	Duration time.Duration
}

// Pattern is a sequence of tones and rests rendered back to back
type Pattern []Step

// Duration returns the total blocking time of the pattern
func (p Pattern) Duration() time.Duration {
	var total time.Duration
	for _, s := range p {
		total += s.Duration
	}
	return total
}

// Actuator renders tones on a digital output by toggling it at the half period
type Actuator struct {
	pin   hal.DigitalOut
	clock hal.Clock
}

func NewActuator(pin hal.DigitalOut, clock hal.Clock) *Actuator {
	return &Actuator{pin: pin, clock: clock}
}

// Play emits a square wave at freqHz for the given duration, then leaves the
// line low. Blocks the calling goroutine for the full duration.
func (a *Actuator) Play(freqHz int, duration time.Duration) {
	if freqHz <= 0 {
		a.clock.Sleep(duration)
		return
	}
	half := time.Second / time.Duration(2*freqHz)
	cycles := int(duration / (2 * half))
	for i := 0; i < cycles; i++ {
		a.pin.High()
		a.clock.Sleep(half)
		a.pin.Low()
		a.clock.Sleep(half)
	}
}

// PlayPattern renders each step in order, blocking until the whole pattern is done
func (a *Actuator) PlayPattern(p Pattern) {
	for _, s := range p {
		a.Play(s.Freq, s.Duration)
	}
}
