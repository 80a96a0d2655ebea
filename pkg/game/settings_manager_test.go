package game

import (
	"testing"
)

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	if p.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if p.DebugOverlay {
		t.Error("DebugOverlay: got true, want false")
	}
	if !p.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
}

func TestSettingsManager_Persistence(t *testing.T) {
	storage := openTestStorage(t, "cursorbuddy_test_settings")

	sm := NewSettingsManager(storage, nil)
	sm.SetFullscreen(true)
	sm.SetDebugOverlay(true)
	sm.SetSoundEnabled(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 新实例应读到已保存的偏好
	reloaded := NewSettingsManager(storage, nil)
	p := reloaded.Preferences()
	if !p.Fullscreen || !p.DebugOverlay || p.SoundEnabled {
		t.Errorf("unexpected preferences after reload: %+v", p)
	}
}

func TestSettingsManager_NilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	sm.SetDebugOverlay(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if sm.Preferences().DebugOverlay {
		t.Error("degraded Load should reset to defaults")
	}
}
