package models

// InvalidSample is the sentinel distance for a timed out or out-of-range read
const InvalidSample = DistanceSample(-1)

// DistanceSample is a smoothed or raw sensor reading in centimeters.
// A negative value means no usable echo came back.
type DistanceSample float64

func (d DistanceSample) Valid() bool { return d > 0 }

// ConnectionState is an enum for the companion app link status
type ConnectionState int

const (
	// Disconnected indicates no companion app is subscribed for notifications
	Disconnected ConnectionState = iota
	// Connected indicates a companion app is subscribed and notifications will be attempted
	Connected
)

func (s ConnectionState) String() string {
	return []string{"Disconnected", "Connected"}[s]
}

// NavCommand is a single character navigation instruction from the companion app
type NavCommand byte

const (
	CmdRight    NavCommand = 'R'
	CmdLeft     NavCommand = 'L'
	CmdStraight NavCommand = 'S'
	CmdUTurn    NavCommand = 'U'
	CmdArrived  NavCommand = 'A'
	CmdStop     NavCommand = 'X'
)

// Known reports whether the command maps to a tone pattern and deserves an ack
func (c NavCommand) Known() bool {
	switch c {
	case CmdRight, CmdLeft, CmdStraight, CmdUTurn, CmdArrived, CmdStop:
		return true
	}
	return false
}

func (c NavCommand) String() string { return string(rune(c)) }

// Notification payloads pushed on the status characteristic
const (
	NoteAck = "OK"
	NoteSOS = "SOS"

	noteObstaclePrefix = "OBS:"
)

// ObstacleNote builds the status payload for an obstacle level name (e.g. "OBS:DANGER")
func ObstacleNote(level string) string {
	return noteObstaclePrefix + level
}
