// Package sensor reads the ultrasonic ranger: trigger pulse out, echo pulse
// width in, converted to centimeters with a hard deadline so a missing echo
// can never hang the loop.
package sensor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/guidecane/firmware/pkg/hal"
	"github.com/guidecane/firmware/pkg/models"
	"github.com/guidecane/firmware/pkg/util"
)

const (
	settleLow   = 2 * time.Microsecond
	triggerHigh = 10 * time.Microsecond
	pollGap     = 2 * time.Microsecond

	// distance_cm = echo_µs * speed_of_sound_cm_per_µs / 2 (round trip)
	cmPerMicrosecond = 0.0343
)

// Sampler measures distance via a trigger/echo pin pair
type Sampler struct {
	trigger hal.DigitalOut
	echo    hal.DigitalIn
	clock   hal.Clock
	timeout time.Duration
	log     *logrus.Entry
}

func NewSampler(trigger hal.DigitalOut, echo hal.DigitalIn, clock hal.Clock) *Sampler {
	return &Sampler{
		trigger: trigger,
		echo:    echo,
		clock:   clock,
		timeout: util.EchoTimeout,
		log:     logrus.WithField("component", "sensor"),
	}
}

// Sample fires one trigger pulse and measures the echo width. Returns the
// invalid sentinel when no echo arrives inside the deadline or the computed
// distance is out of the usable range.
func (s *Sampler) Sample() models.DistanceSample {
	s.trigger.Low()
	s.clock.Sleep(settleLow)
	s.trigger.High()
	s.clock.Sleep(triggerHigh)
	s.trigger.Low()

	deadline := s.clock.Now().Add(s.timeout)

	// wait for the echo line to assert
	for !s.echo.Read() {
		if !s.clock.Now().Before(deadline) {
			return models.InvalidSample
		}
		s.clock.Sleep(pollGap)
	}
	start := s.clock.Now()
	deadline = start.Add(s.timeout)

	// measure how long it stays asserted
	for s.echo.Read() {
		if !s.clock.Now().Before(deadline) {
			return models.InvalidSample
		}
		s.clock.Sleep(pollGap)
	}
	width := s.clock.Now().Sub(start)

	cm := float64(width.Microseconds()) * cmPerMicrosecond / 2
	if cm <= 0 || cm > util.MaxRangeCM {
		return models.InvalidSample
	}
	return models.DistanceSample(cm)
}

// StableSample takes three sequential reads spaced apart and averages the
// valid ones. An all-invalid window yields the invalid sentinel, which
// classifies as clear downstream.
func (s *Sampler) StableSample() models.DistanceSample {
	var sum float64
	var valid int
	for i := 0; i < 3; i++ {
		if i > 0 {
			s.clock.Sleep(util.SampleGap)
		}
		if d := s.Sample(); d.Valid() {
			sum += float64(d)
			valid++
		}
	}
	if valid == 0 {
		s.log.Debug("all reads invalid in smoothing window")
		return models.InvalidSample
	}
	return models.DistanceSample(sum / float64(valid))
}
