package companion

import (
	"errors"
	"testing"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRegistry 每个伙伴使用独立元素，共享指针、帧循环和时钟
func newTestRegistry(h *harness) (*Registry, map[string]*recordingElement) {
	elements := make(map[string]*recordingElement)
	factory := func(cfg config.CompanionConfig) (*Controller, error) {
		el := newRecordingElement()
		deps := h.deps()
		deps.Element = el
		c, err := New(cfg, deps)
		if err != nil {
			return nil, err
		}
		elements[c.ID()] = el
		return c, nil
	}
	return NewRegistry(factory, nil), elements
}

func TestRegistry_AddStartsCompanion(t *testing.T) {
	h := newHarness()
	r, _ := newTestRegistry(h)

	a, err := r.Add(mustConfig(t, config.CompanionOptions{Name: "a"}))
	require.NoError(t, err)
	b, err := r.Add(mustConfig(t, config.CompanionOptions{Name: "b"}))
	require.NoError(t, err)

	assert.True(t, a.Running())
	assert.True(t, b.Running())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []*Controller{a, b}, r.List())

	got, ok := r.Get(b.ID())
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_AddFailure(t *testing.T) {
	h := newHarness()
	r, _ := newTestRegistry(h)

	_, err := r.Add(config.CompanionConfig{Name: "broken", FollowSpeed: 2, IdleRate: 0.05})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, 0, r.Len())

	boom := errors.New("boom")
	r = NewRegistry(func(config.CompanionConfig) (*Controller, error) { return nil, boom }, nil)
	_, err = r.Add(mustConfig(t, config.CompanionOptions{}))
	assert.ErrorIs(t, err, boom)

	r = NewRegistry(nil, nil)
	_, err = r.Add(mustConfig(t, config.CompanionOptions{}))
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestRegistry_AddAllStopsAtFirstError(t *testing.T) {
	h := newHarness()
	r, _ := newTestRegistry(h)

	err := r.AddAll([]config.CompanionConfig{
		mustConfig(t, config.CompanionOptions{Name: "ok"}),
		{Name: "bad", FollowSpeed: -1, IdleRate: 0.05},
		mustConfig(t, config.CompanionOptions{Name: "never"}),
	})
	require.Error(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RemoveDestroys(t *testing.T) {
	h := newHarness()
	r, elements := newTestRegistry(h)

	a, err := r.Add(mustConfig(t, config.CompanionOptions{}))
	require.NoError(t, err)
	b, err := r.Add(mustConfig(t, config.CompanionOptions{}))
	require.NoError(t, err)

	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a), "重复移除返回 false")
	assert.False(t, a.Running())
	assert.True(t, elements[a.ID()].detached)
	assert.False(t, elements[b.ID()].detached)
	assert.Equal(t, []*Controller{b}, r.List())

	r.RemoveAll()
	assert.Equal(t, 0, r.Len())
	assert.True(t, elements[b.ID()].detached)
	assert.Equal(t, 0, h.pointer.Listeners())
}

func TestRegistry_TogglePause(t *testing.T) {
	h := newHarness()
	r, _ := newTestRegistry(h)

	assert.False(t, r.TogglePause(), "空集合保持非运行")

	a, err := r.Add(mustConfig(t, config.CompanionOptions{}))
	require.NoError(t, err)
	b, err := r.Add(mustConfig(t, config.CompanionOptions{}))
	require.NoError(t, err)

	// 任一伙伴运行即全部暂停
	b.Stop()
	assert.False(t, r.TogglePause())
	assert.False(t, a.Running())
	assert.False(t, b.Running())

	assert.True(t, r.TogglePause())
	assert.True(t, a.Running())
	assert.True(t, b.Running())

	r.PauseAll()
	assert.Equal(t, 0, h.pointer.Listeners())
	r.ResumeAll()
	assert.Equal(t, 6, h.pointer.Listeners())
}

func TestRegistry_ListIsCopy(t *testing.T) {
	h := newHarness()
	r, _ := newTestRegistry(h)
	_, err := r.Add(mustConfig(t, config.CompanionOptions{}))
	require.NoError(t, err)

	list := r.List()
	list[0] = nil
	assert.NotNil(t, r.List()[0])
}
