package tone

import (
	"time"

	"github.com/guidecane/firmware/pkg/models"
	"github.com/guidecane/firmware/pkg/obstacle"
)

const (
	freqLow    = 600
	freqMid    = 1200
	freqNav    = 1800
	freqHigh   = 2000
	freqDanger = 2800
	freqSOS    = 2500
)

const (
	beep    = 80 * time.Millisecond
	pause   = 60 * time.Millisecond
	navBeep = 60 * time.Millisecond
	navGap  = 50 * time.Millisecond

	dot       = 70 * time.Millisecond
	dash      = 210 * time.Millisecond
	morseGap  = 70 * time.Millisecond
	letterGap = 210 * time.Millisecond
)

func repeated(freq int, n int, on, off time.Duration) Pattern {
	p := Pattern{}
	for i := 0; i < n; i++ {
		p = append(p, Step{freq, on})
		if i < n-1 {
			p = append(p, Step{0, off})
		}
	}
	return p
}

var levelPatterns = map[obstacle.Level]Pattern{
	obstacle.Clear:   {{freqLow, beep}},
	obstacle.Notice:  repeated(freqMid, 2, beep, pause),
	obstacle.Warning: repeated(freqHigh, 3, beep, pause),
	// 5 x (80ms tone + 60ms pause): blocks the loop for ~700ms
	obstacle.Danger: {
		{freqDanger, beep}, {0, pause},
		{freqDanger, beep}, {0, pause},
		{freqDanger, beep}, {0, pause},
		{freqDanger, beep}, {0, pause},
		{freqDanger, beep}, {0, pause},
	},
}

func morse(symbols ...time.Duration) Pattern {
	p := Pattern{}
	for i, d := range symbols {
		p = append(p, Step{freqSOS, d})
		if i < len(symbols)-1 {
			p = append(p, Step{0, morseGap})
		}
	}
	return p
}

// sosPattern is Morse S-O-S, ~1.9s of blocking playback
var sosPattern = func() Pattern {
	p := morse(dot, dot, dot)
	p = append(p, Step{0, letterGap})
	p = append(p, morse(dash, dash, dash)...)
	p = append(p, Step{0, letterGap})
	p = append(p, morse(dot, dot, dot)...)
	return p
}()

var navPatterns = map[models.NavCommand]Pattern{
	models.CmdRight:    {{freqNav, navBeep}, {0, navGap}, {freqHigh, navBeep}},
	models.CmdLeft:     {{freqHigh, navBeep}, {0, navGap}, {freqNav, navBeep}},
	models.CmdStraight: {{freqNav, 3 * navBeep}},
	models.CmdUTurn:    repeated(freqNav, 3, navBeep, navGap),
	models.CmdArrived:  {{freqMid, navBeep}, {freqNav, navBeep}, {freqHigh, navBeep}},
	models.CmdStop:     {{freqLow, 4 * navBeep}},
}

// LevelPattern returns the alert pattern for an obstacle level
func LevelPattern(level obstacle.Level) Pattern {
	return levelPatterns[level]
}

// SOSPattern returns the emergency triad
func SOSPattern() Pattern {
	return sosPattern
}

// NavPattern returns the feedback pattern for a navigation command, or false
// if the command is unrecognized.
func NavPattern(cmd models.NavCommand) (Pattern, bool) {
	p, ok := navPatterns[cmd]
	return p, ok
}
