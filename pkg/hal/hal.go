// Package hal abstracts the digital I/O and timing primitives the firmware
// drives, so the control core can run against real GPIO or a simulation.
package hal

import "time"

// DigitalOut is a single output line (sensor trigger, buzzer)
type DigitalOut interface {
	High()
	Low()
}

// DigitalIn is a single input line. Read returns true when the line is
// electrically high (for the SOS button, high means released: active-low with pull-up).
type DigitalIn interface {
	Read() bool
}

// Clock supplies time to the loop and the blocking tone/pulse primitives
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// WallClock returns the real time Clock
func WallClock() Clock { return wallClock{} }
