//go:build mobile

package mobile

import (
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/embedded"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// loadCompanions 优先使用用户保存的清单，否则使用内置清单
func loadCompanions(gm *gdata.Manager, logger *zap.Logger) ([]config.CompanionConfig, error) {
	m, found, err := game.NewManifestStore(gm, logger).Load()
	if err != nil {
		logger.Warn("stored manifest is invalid, using built-in", zap.Error(err))
		found = false
	}
	if !found {
		data, err := embedded.DefaultManifest()
		if err != nil {
			return nil, err
		}
		if m, err = config.ParseManifest(data); err != nil {
			return nil, err
		}
	}
	return m.Resolve()
}
