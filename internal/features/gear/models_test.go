package gear

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPondAvailable(t *testing.T) {
	p := &Pond{MinLevel: 3}
	assert.False(t, p.Available(2))
	assert.True(t, p.Available(3))
	assert.True(t, p.Available(10))
}

func TestRodStarter(t *testing.T) {
	assert.True(t, (&Rod{Price: 0}).Starter())
	assert.False(t, (&Rod{Price: 50}).Starter())
}
