package obstacle

import (
	"testing"

	"gotest.tools/assert"

	"github.com/guidecane/firmware/pkg/models"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		cm       float64
		expected Level
	}{
		{400, Clear},
		{151, Clear},
		{150, Notice},
		{100, Notice},
		{81, Notice},
		{80, Warning},
		{50, Warning},
		{31, Warning},
		{30, Danger},
		{25, Danger},
		{1, Danger},
	}
	for _, c := range cases {
		assert.Equal(t, Classify(models.DistanceSample(c.cm)), c.expected)
	}
}

func TestClassifyInvalidIsClear(t *testing.T) {
	assert.Equal(t, Classify(models.InvalidSample), Clear)
	assert.Equal(t, Classify(models.DistanceSample(0)), Clear)
}

func TestShouldAlertOnTransition(t *testing.T) {
	assert.Assert(t, ShouldAlert(Notice, Clear))
	assert.Assert(t, ShouldAlert(Clear, Notice))
	assert.Assert(t, ShouldAlert(Warning, Danger))
}

func TestShouldAlertIdempotence(t *testing.T) {
	// two consecutive identical levels stay silent, except danger
	assert.Assert(t, !ShouldAlert(Clear, Clear))
	assert.Assert(t, !ShouldAlert(Notice, Notice))
	assert.Assert(t, !ShouldAlert(Warning, Warning))
	assert.Assert(t, ShouldAlert(Danger, Danger))
}

func TestLevelNames(t *testing.T) {
	assert.Equal(t, Clear.String(), "CLEAR")
	assert.Equal(t, Notice.String(), "NOTICE")
	assert.Equal(t, Warning.String(), "WARN")
	assert.Equal(t, Danger.String(), "DANGER")
}
