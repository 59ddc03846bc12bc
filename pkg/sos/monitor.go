// Package sos debounces the physical emergency button and enforces the
// post-trigger cooldown window.
package sos

import (
	"time"

	"github.com/guidecane/firmware/pkg/hal"
	"github.com/guidecane/firmware/pkg/util"
)

// State is an enum for the monitor's cooldown state machine
type State int

const (
	// Idle indicates the monitor will trigger on the next qualifying press
	Idle State = iota
	// Cooldown indicates a trigger fired recently and presses are absorbed
	Cooldown
)

func (s State) String() string {
	return []string{"Idle", "Cooldown"}[s]
}

// Monitor detects falling edges on the active-low SOS button. The outer loop's
// ~10ms cadence is the implicit debounce floor.
type Monitor struct {
	button      hal.DigitalIn
	cooldown    time.Duration
	state       State
	lastLevel   bool
	triggeredAt time.Time
}

// NewMonitor wires the monitor to the button line with the standard cooldown
func NewMonitor(button hal.DigitalIn) *Monitor {
	return NewMonitorWithCooldown(button, util.SOSCooldown)
}

func NewMonitorWithCooldown(button hal.DigitalIn, cooldown time.Duration) *Monitor {
	return &Monitor{button: button, cooldown: cooldown, state: Idle, lastLevel: true}
}

// State returns the current cooldown state
func (m *Monitor) State() State { return m.state }

// Poll samples the button once and returns true exactly once per qualifying
// press. While in Cooldown all button activity is absorbed until the dwell
// elapses.
func (m *Monitor) Poll(now time.Time) bool {
	level := m.button.Read()
	defer func() { m.lastLevel = level }()

	if m.state == Cooldown {
		if now.Sub(m.triggeredAt) >= m.cooldown {
			m.state = Idle
		} else {
			return false
		}
	}

	// falling edge: released (high) on the previous poll, pressed (low) now
	if m.lastLevel && !level {
		m.state = Cooldown
		m.triggeredAt = now
		return true
	}
	return false
}
