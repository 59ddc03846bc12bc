package arbiter

import (
	"context"
	"reflect"
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/guidecane/firmware/internal"
	"github.com/guidecane/firmware/pkg/models"
	"github.com/guidecane/firmware/pkg/tone"
	"github.com/guidecane/firmware/pkg/util"
)

type scriptedSampler struct {
	samples []models.DistanceSample
	calls   int
}

func (s *scriptedSampler) StableSample() models.DistanceSample {
	if s.calls >= len(s.samples) {
		return models.InvalidSample
	}
	d := s.samples[s.calls]
	s.calls++
	return d
}

type stubSOS struct {
	fire bool
}

func (s *stubSOS) Poll(time.Time) bool {
	f := s.fire
	s.fire = false
	return f
}

type capturePlayer struct {
	patterns []tone.Pattern
}

func (p *capturePlayer) PlayPattern(pat tone.Pattern) {
	p.patterns = append(p.patterns, pat)
}

type captureNotifier struct {
	msgs []string
}

func (n *captureNotifier) Notify(msg string) error {
	n.msgs = append(n.msgs, msg)
	return nil
}

type harness struct {
	arb      *Arbiter
	clock    *internal.SimClock
	sampler  *scriptedSampler
	sos      *stubSOS
	player   *capturePlayer
	notifier *captureNotifier
}

func getTestArbiter(samples ...models.DistanceSample) *harness {
	h := &harness{
		clock:    internal.NewSimClock(),
		sampler:  &scriptedSampler{samples: samples},
		sos:      &stubSOS{},
		player:   &capturePlayer{},
		notifier: &captureNotifier{},
	}
	h.arb = New(h.clock, h.sampler, h.sos, h.player, h.notifier)
	return h
}

// tickCadence runs one Tick and advances past the sampler cadence so the next
// Tick polls the sensor again.
func (h *harness) tickCadence() {
	h.arb.Tick()
	h.clock.Advance(util.SampleCadence)
}

func TestDangerReAlertsEveryCycle(t *testing.T) {
	h := getTestArbiter(25, 25, 25)
	h.tickCadence()
	h.tickCadence()
	h.tickCadence()
	assert.DeepEqual(t, h.notifier.msgs, []string{"OBS:DANGER", "OBS:DANGER", "OBS:DANGER"})
	assert.Equal(t, len(h.player.patterns), 3)
}

func TestClearIsIdempotent(t *testing.T) {
	h := getTestArbiter(200, 200, 200)
	h.tickCadence()
	h.tickCadence()
	h.tickCadence()
	// level never changed from the initial clear: nothing to report
	assert.Equal(t, len(h.notifier.msgs), 0)
	assert.Equal(t, len(h.player.patterns), 0)
}

func TestInvalidWindowStaysSilent(t *testing.T) {
	h := getTestArbiter(models.InvalidSample, models.InvalidSample, models.InvalidSample, 200)
	for i := 0; i < 4; i++ {
		h.tickCadence()
	}
	assert.Equal(t, len(h.notifier.msgs), 0)
}

func TestLevelTransitionNotifies(t *testing.T) {
	h := getTestArbiter(100, 50, 200)
	h.tickCadence()
	h.tickCadence()
	h.tickCadence()
	assert.DeepEqual(t, h.notifier.msgs, []string{"OBS:NOTICE", "OBS:WARN", "OBS:CLEAR"})
}

func TestSamplerCadenceGate(t *testing.T) {
	h := getTestArbiter(100, 100)
	h.arb.Tick()
	assert.Equal(t, h.sampler.calls, 1)

	// ticks inside the 300ms window must not poll the sensor
	h.clock.Advance(util.LoopTick)
	h.arb.Tick()
	h.clock.Advance(util.LoopTick)
	h.arb.Tick()
	assert.Equal(t, h.sampler.calls, 1)

	h.clock.Advance(util.SampleCadence)
	h.arb.Tick()
	assert.Equal(t, h.sampler.calls, 2)
}

func TestSOSPreemptsEverything(t *testing.T) {
	h := getTestArbiter(25)
	h.sos.fire = true
	h.arb.OnCommandWritten([]byte("R"))
	h.arb.Tick()

	assert.DeepEqual(t, h.notifier.msgs, []string{"SOS"})
	assert.Equal(t, h.sampler.calls, 0)
	assert.Equal(t, len(h.player.patterns), 1)
	assert.Assert(t, reflect.DeepEqual(h.player.patterns[0], tone.SOSPattern()))
}

func TestNavMaskedWhileWarning(t *testing.T) {
	h := getTestArbiter(50, 50, 200)
	h.arb.OnCommandWritten([]byte("R"))
	h.tickCadence() // warning: command stays buffered
	h.tickCadence() // still warning
	assert.DeepEqual(t, h.notifier.msgs, []string{"OBS:WARN"})

	h.tickCadence() // clear again: buffered command drains
	assert.DeepEqual(t, h.notifier.msgs, []string{"OBS:WARN", "OBS:CLEAR", "OK"})
	right, _ := tone.NavPattern(models.CmdRight)
	last := h.player.patterns[len(h.player.patterns)-1]
	assert.Assert(t, reflect.DeepEqual(last, right))
}

func TestCommandSlotLastWriteWins(t *testing.T) {
	h := getTestArbiter(200)
	h.arb.OnCommandWritten([]byte("R"))
	h.arb.OnCommandWritten([]byte("L"))
	h.tickCadence()

	assert.DeepEqual(t, h.notifier.msgs, []string{"OK"})
	left, _ := tone.NavPattern(models.CmdLeft)
	assert.Equal(t, len(h.player.patterns), 1)
	assert.Assert(t, reflect.DeepEqual(h.player.patterns[0], left))
}

func TestUnknownCommandDroppedWithoutAck(t *testing.T) {
	h := getTestArbiter(200)
	h.arb.OnCommandWritten([]byte("Q"))
	h.tickCadence()
	assert.Equal(t, len(h.notifier.msgs), 0)
	assert.Equal(t, len(h.player.patterns), 0)

	// slot was drained, not left behind
	_, ok := h.arb.slot.Take()
	assert.Assert(t, !ok)
}

func TestConnectionStateFollowsTransport(t *testing.T) {
	h := getTestArbiter()
	assert.Equal(t, h.arb.ConnectionState(), models.Disconnected)
	h.arb.OnConnect("AA:BB")
	assert.Equal(t, h.arb.ConnectionState(), models.Connected)
	h.arb.OnDisconnect("AA:BB")
	assert.Equal(t, h.arb.ConnectionState(), models.Disconnected)
}

func TestDetectionContinuesWhileDisconnected(t *testing.T) {
	h := getTestArbiter(25)
	h.arb.OnDisconnect("AA:BB")
	h.tickCadence()
	// the tone still plays; only the wire notification would be skipped by
	// the transport itself
	assert.Equal(t, len(h.player.patterns), 1)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	h := getTestArbiter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.arb.Run(ctx)
	assert.Equal(t, h.sampler.calls, 0)
}

func TestSlotOverwriteAndDrain(t *testing.T) {
	s := newCommandSlot()
	_, ok := s.Take()
	assert.Assert(t, !ok)
	s.Put(models.CmdRight)
	s.Put(models.CmdLeft)
	cmd, ok := s.Take()
	assert.Assert(t, ok)
	assert.Equal(t, cmd, models.CmdLeft)
	_, ok = s.Take()
	assert.Assert(t, !ok)
}
