// Package obstacle maps smoothed distance readings to proximity levels and
// decides when a level deserves an audible alert.
package obstacle

import "github.com/guidecane/firmware/pkg/models"

// Thresholds in centimeters, inclusive upper bounds
const (
	DangerCM  = 30.0
	WarningCM = 80.0
	NoticeCM  = 150.0
)

// Classify derives the proximity level from a smoothed sample. Invalid samples
// classify as Clear: absence of signal must not read as a false obstacle.
func Classify(s models.DistanceSample) Level {
	switch {
	case !s.Valid() || float64(s) > NoticeCM:
		return Clear
	case float64(s) > WarningCM:
		return Notice
	case float64(s) > DangerCM:
		return Warning
	default:
		return Danger
	}
}

// ShouldAlert reports whether a freshly classified level warrants a tone and
// notification. Level transitions always alert; Danger re-alerts every cycle
// so proximity at that severity never goes silent.
func ShouldAlert(newLevel, lastLevel Level) bool {
	return newLevel != lastLevel || newLevel == Danger
}
