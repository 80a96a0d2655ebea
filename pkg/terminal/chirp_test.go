package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChirper_RateLimited(t *testing.T) {
	played := 0
	c := newChirper(1, func() { played++ }, zap.NewNop())

	assert.True(t, c.Enabled())
	assert.True(t, c.Play())
	assert.False(t, c.Play(), "burst of one per second")
	assert.Equal(t, 1, played)
}

func TestChirper_Disabled(t *testing.T) {
	c := NewChirper(false, 8, nil)

	assert.False(t, c.Enabled())
	assert.False(t, c.Play())
	c.Close()
}

func TestChirper_NonPositiveRate(t *testing.T) {
	c := newChirper(0, func() {}, zap.NewNop())
	assert.True(t, c.Play())
}
