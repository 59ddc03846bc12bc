package util

import "time"

const (
	// DeviceName is the fixed name the firmware advertises over BLE
	DeviceName = "GuideCane"
	// CaneServiceUUID represents UUID for the ble service carrying both firmware characteristics
	CaneServiceUUID = "00010000-0001-1000-8000-00805F9B34FB"
	// CommandCharUUID represents UUID for the ble characteristic which handles navigation command writes from the companion app
	CommandCharUUID = "00010000-0002-1000-8000-00805F9B34FB"
	// StatusCharUUID represents UUID for the ble characteristic which pushes status notifications to the companion app
	StatusCharUUID = "00010000-0003-1000-8000-00805F9B34FB"
)

const (
	// LoopTick is the cadence of the arbiter control loop
	LoopTick = 10 * time.Millisecond
	// SampleCadence is how often the range sampler is polled for a fresh reading
	SampleCadence = 300 * time.Millisecond
	// SampleGap is the spacing between the individual reads of one stable sample
	SampleGap = 10 * time.Millisecond
	// EchoTimeout bounds the wait for the sensor echo pulse (~4.3m round trip)
	EchoTimeout = 25 * time.Millisecond
	// SOSCooldown is the dwell after an SOS trigger during which further presses are absorbed
	SOSCooldown = 10 * time.Second
	// MaxRangeCM is the usable ceiling of the ultrasonic sensor
	MaxRangeCM = 400.0
)
