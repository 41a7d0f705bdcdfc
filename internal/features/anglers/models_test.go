package anglers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPForNextLevel(1))
	assert.Equal(t, 500, XPForNextLevel(5))
}

func TestApplyExperience_NoLevelUp(t *testing.T) {
	a := &Angler{Level: 1, Experience: 50}
	gained := a.ApplyExperience(30)
	assert.Equal(t, 0, gained)
	assert.Equal(t, 1, a.Level)
	assert.Equal(t, 80, a.Experience)
}

func TestApplyExperience_SingleLevelUp(t *testing.T) {
	a := &Angler{Level: 1, Experience: 90}
	gained := a.ApplyExperience(25)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, a.Level)
	// Остаток переносится на следующий уровень.
	assert.Equal(t, 15, a.Experience)
}

func TestApplyExperience_MultiLevelUp(t *testing.T) {
	a := &Angler{Level: 1, Experience: 0}
	// 100 (уровень 1→2) + 200 (уровень 2→3) + 50 остатка.
	gained := a.ApplyExperience(350)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, a.Level)
	assert.Equal(t, 50, a.Experience)
}

func TestApplyExperience_ExactBoundary(t *testing.T) {
	a := &Angler{Level: 2, Experience: 0}
	gained := a.ApplyExperience(200)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 3, a.Level)
	assert.Equal(t, 0, a.Experience)
}
