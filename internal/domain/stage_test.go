package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_Next(t *testing.T) {
	assert.Equal(t, StageCollect, StageStart.Next())
	assert.Equal(t, StageWeather, StageCollect.Next())
	assert.Equal(t, StageImage, StageWeather.Next())
	assert.Equal(t, StagePresent, StageImage.Next())
	assert.Equal(t, StageEnd, StagePresent.Next())
	assert.Equal(t, StageEnd, StageEnd.Next())
	assert.Equal(t, StageEnd, Stage("UNKNOWN").Next())
}

func TestStages_Order(t *testing.T) {
	assert.Equal(t, []Stage{StageCollect, StageWeather, StageImage, StagePresent}, Stages())
}

func TestStage_IsTerminal(t *testing.T) {
	assert.True(t, StageEnd.IsTerminal())
	for _, s := range Stages() {
		assert.False(t, s.IsTerminal(), "stage %s", s)
	}
}
