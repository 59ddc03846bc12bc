package hal

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// RpioOut drives a GPIO output line through /dev/gpiomem
type RpioOut struct {
	pin rpio.Pin
}

func (o RpioOut) High() { o.pin.High() }
func (o RpioOut) Low()  { o.pin.Low() }

// RpioIn reads a GPIO input line
type RpioIn struct {
	pin rpio.Pin
}

func (i RpioIn) Read() bool { return i.pin.Read() == rpio.High }

// OpenRpio maps the GPIO range. Must be called once before constructing pins.
func OpenRpio() error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "rpio.Open issue")
	}
	return nil
}

// CloseRpio unmaps the GPIO range
func CloseRpio() error { return rpio.Close() }

// NewRpioOut configures the BCM pin as an output, initially low
func NewRpioOut(bcm uint8) RpioOut {
	pin := rpio.Pin(bcm)
	pin.Output()
	pin.Low()
	return RpioOut{pin}
}

// NewRpioIn configures the BCM pin as an input
func NewRpioIn(bcm uint8) RpioIn {
	pin := rpio.Pin(bcm)
	pin.Input()
	return RpioIn{pin}
}

// NewRpioButton configures the BCM pin as an active-low input with the pull-up enabled
func NewRpioButton(bcm uint8) RpioIn {
	pin := rpio.Pin(bcm)
	pin.Input()
	pin.PullUp()
	return RpioIn{pin}
}
