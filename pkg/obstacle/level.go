package obstacle

// Level is an enum for all obstacle proximity severities, ordered low to high
type Level int

const (
	// Clear indicates no obstacle within the notice threshold (or no valid reading)
	Clear Level = iota
	// Notice indicates an obstacle between 80cm and 150cm
	Notice
	// Warning indicates an obstacle between 30cm and 80cm
	Warning
	// Danger indicates an obstacle at 30cm or closer
	Danger
)

func (l Level) String() string {
	return []string{"CLEAR", "NOTICE", "WARN", "DANGER"}[l]
}
