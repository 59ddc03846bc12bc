package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guidecane/firmware/internal"
	"github.com/guidecane/firmware/pkg/arbiter"
	"github.com/guidecane/firmware/pkg/ble"
	"github.com/guidecane/firmware/pkg/config"
	"github.com/guidecane/firmware/pkg/hal"
	"github.com/guidecane/firmware/pkg/sensor"
	"github.com/guidecane/firmware/pkg/sos"
	"github.com/guidecane/firmware/pkg/tone"
)

var (
	flagConfig  string
	flagSim     bool
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "guidecane",
		Short: "GuideCane firmware control core",
		Long: `Runs the GuideCane control loop: ultrasonic obstacle detection, SOS
button monitoring and BLE navigation commands, arbitrated onto the buzzer.

Real hardware needs /dev/gpiomem and an hci device. Use --sim to run the
loop against simulated pins without hardware.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.Flags().BoolVar(&flagSim, "sim", false, "Run against simulated pins (no hardware required)")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)
	log := logrus.WithField("component", "main")

	clock := hal.WallClock()
	trigger, echo, buzzer, button, err := wirePins(cfg, clock)
	if err != nil {
		return err
	}

	sampler := sensor.NewSampler(trigger, echo, clock)
	monitor := sos.NewMonitor(button)
	player := tone.NewActuator(buzzer, clock)

	arb := arbiter.New(clock, sampler, monitor, player, nil)
	transport := ble.NewTransport(cfg.DeviceName, arb)
	arb.SetNotifier(transport)

	if flagSim {
		log.Info("sim mode: BLE transport not started")
	} else if err := transport.Start(); err != nil {
		// the cane keeps detecting obstacles even with no radio
		log.WithError(err).Warn("BLE transport unavailable, running without command channel")
	} else {
		defer transport.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("device", cfg.DeviceName).Info("control loop starting")
	arb.Run(ctx)
	log.Info("control loop stopped")
	return nil
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if flagVerbose {
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)
}

func wirePins(cfg *config.Config, clock hal.Clock) (hal.DigitalOut, hal.DigitalIn, hal.DigitalOut, hal.DigitalIn, error) {
	if flagSim {
		trigger := internal.NewSimOut(clock)
		return trigger, wanderingEcho(clock, trigger), internal.NewSimOut(clock), internal.NewSimIn(), nil
	}
	if err := hal.OpenRpio(); err != nil {
		return nil, nil, nil, nil, err
	}
	return hal.NewRpioOut(cfg.Pins.Trigger), hal.NewRpioIn(cfg.Pins.Echo),
		hal.NewRpioOut(cfg.Pins.Buzzer), hal.NewRpioButton(cfg.Pins.Button), nil
}

// wanderingEcho synthesizes echo pulses for a target drifting between 20cm and
// 350cm, so sim mode exercises every obstacle level.
func wanderingEcho(clock hal.Clock, trigger *internal.SimOut) hal.DigitalIn {
	dist := 200.0
	var lastRise time.Time
	var width time.Duration
	return internal.FnIn(func() bool {
		rise, ok := trigger.LastRise()
		if !ok {
			return false
		}
		if rise != lastRise {
			lastRise = rise
			dist += (rand.Float64() - 0.5) * 40
			if dist < 20 {
				dist = 20
			}
			if dist > 350 {
				dist = 350
			}
			width = time.Duration(dist*2/0.0343) * time.Microsecond
		}
		since := clock.Now().Sub(rise)
		return since >= 200*time.Microsecond && since < 200*time.Microsecond+width
	})
}
