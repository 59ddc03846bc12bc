// Package arbiter runs the firmware control loop: it polls the SOS button and
// the range sampler on their cadences, resolves priority among the three alert
// sources and drives the buzzer and the status channel.
package arbiter

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/guidecane/firmware/pkg/hal"
	"github.com/guidecane/firmware/pkg/models"
	"github.com/guidecane/firmware/pkg/obstacle"
	"github.com/guidecane/firmware/pkg/tone"
	"github.com/guidecane/firmware/pkg/util"
)

// Sampler produces one smoothed distance reading
type Sampler interface {
	StableSample() models.DistanceSample
}

// SOSMonitor reports a one-shot trigger per qualifying button press
type SOSMonitor interface {
	Poll(now time.Time) bool
}

// Player renders a tone pattern, blocking until it completes
type Player interface {
	PlayPattern(tone.Pattern)
}

// Notifier pushes a status string to the companion app
type Notifier interface {
	Notify(msg string) error
}

// Arbiter owns the loop state. It also implements models.TransportListener:
// transport callbacks land here and are handed to the loop through the slot.
type Arbiter struct {
	clock    hal.Clock
	sampler  Sampler
	sos      SOSMonitor
	player   Player
	notifier Notifier
	log      *logrus.Entry

	slot         *commandSlot
	lastLevel    obstacle.Level
	lastSampleAt time.Time

	mutex *sync.Mutex
	state models.ConnectionState
}

// New builds the arbiter. The notifier may be nil at construction and wired
// afterwards with SetNotifier, since the transport needs the arbiter as its
// listener before it exists.
func New(clock hal.Clock, sampler Sampler, sos SOSMonitor, player Player, notifier Notifier) *Arbiter {
	return &Arbiter{
		clock:     clock,
		sampler:   sampler,
		sos:       sos,
		player:    player,
		notifier:  notifier,
		log:       logrus.WithField("component", "arbiter"),
		slot:      newCommandSlot(),
		lastLevel: obstacle.Clear,
		mutex:     &sync.Mutex{},
		state:     models.Disconnected,
	}
}

// SetNotifier wires the status channel. Must be called before Run.
func (a *Arbiter) SetNotifier(n Notifier) {
	a.notifier = n
}

// Run executes the loop until the context ends. There is no terminal state on
// the device itself; this runs from power-on until reset.
func (a *Arbiter) Run(ctx context.Context) {
	for ctx.Err() == nil {
		a.Tick()
		a.clock.Sleep(util.LoopTick)
	}
}

// Tick is one loop iteration, in strict priority order: SOS fully preempts,
// obstacle alerts run on the sampler cadence, navigation feedback only renders
// while no warning or danger level is active.
func (a *Arbiter) Tick() {
	now := a.clock.Now()

	if a.sos.Poll(now) {
		a.log.Warn("SOS triggered")
		a.player.PlayPattern(tone.SOSPattern())
		a.notify(models.NoteSOS)
		return
	}

	if a.lastSampleAt.IsZero() || now.Sub(a.lastSampleAt) >= util.SampleCadence {
		a.lastSampleAt = now
		sample := a.sampler.StableSample()
		level := obstacle.Classify(sample)
		if obstacle.ShouldAlert(level, a.lastLevel) {
			a.player.PlayPattern(tone.LevelPattern(level))
			a.notify(models.ObstacleNote(level.String()))
		}
		a.lastLevel = level
	}

	if a.lastLevel < obstacle.Warning {
		a.drainCommand()
	}
}

func (a *Arbiter) drainCommand() {
	cmd, ok := a.slot.Take()
	if !ok {
		return
	}
	if !cmd.Known() {
		a.log.WithField("cmd", cmd.String()).Warn("unrecognized command dropped")
		return
	}
	pattern, _ := tone.NavPattern(cmd)
	a.player.PlayPattern(pattern)
	a.notify(models.NoteAck)
}

func (a *Arbiter) notify(msg string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(msg); err != nil {
		a.log.WithField("msg", msg).WithError(err).Warn("notify failed")
	}
}

// ConnectionState returns the last transport-reported link state
func (a *Arbiter) ConnectionState() models.ConnectionState {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.state
}

// OnConnect implements models.TransportListener
func (a *Arbiter) OnConnect(addr string) {
	a.mutex.Lock()
	a.state = models.Connected
	a.mutex.Unlock()
	a.log.WithField("addr", addr).Info("companion connected")
}

// OnDisconnect implements models.TransportListener. Detection carries on
// regardless; only notifications stop.
func (a *Arbiter) OnDisconnect(addr string) {
	a.mutex.Lock()
	a.state = models.Disconnected
	a.mutex.Unlock()
	a.log.WithField("addr", addr).Info("companion disconnected")
}

// OnCommandWritten implements models.TransportListener. Runs on the transport
// goroutine; the slot is the only shared state it touches.
func (a *Arbiter) OnCommandWritten(data []byte) {
	if len(data) == 0 {
		return
	}
	a.slot.Put(models.NavCommand(data[0]))
}

// OnInternalError implements models.TransportListener
func (a *Arbiter) OnInternalError(err error) {
	a.log.WithError(err).Error("transport error")
}
