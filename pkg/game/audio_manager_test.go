package game

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickTone(t *testing.T) {
	pcm, err := ClickTone(48000, 880, 60*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, pcm, 2880*4)

	sample := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[i*4:]))
	}

	var peak int16
	for i := 0; i < 2880; i++ {
		s := sample(i)
		// 左右声道相同
		assert.Equal(t, s, int16(binary.LittleEndian.Uint16(pcm[i*4+2:])))
		if s > peak {
			peak = s
		}
	}
	assert.Greater(t, peak, int16(20000), "tone should be audible")

	tail := sample(2879)
	assert.Less(t, abs16(tail), int16(100), "tone fades out")
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAudioManager_WithoutContext(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	am := NewAudioManager(nil, sm, nil)

	assert.True(t, am.Enabled())
	assert.False(t, am.PlayClick(), "no audio context means nothing plays")

	sm.SetSoundEnabled(false)
	assert.False(t, am.Enabled())
}

func TestAudioManager_NilSettings(t *testing.T) {
	am := NewAudioManager(nil, nil, nil)
	assert.True(t, am.Enabled())
}
