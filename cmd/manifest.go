package cmd

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/embedded"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// 清单来源
const (
	sourceFile    = "file"
	sourceStored  = "stored"
	sourceBuiltin = "builtin"
)

// storage 打开用户存储，失败时返回 nil 进入降级模式
func (c *cli) storage() *gdata.Manager {
	m, err := c.openStorage()
	if err != nil {
		c.logger.Warn("data storage unavailable, running without persistence", zap.Error(err))
		return nil
	}
	return m
}

// loadManifest 依次尝试：指定的文件、用户存储中的清单、内置默认清单
//
// 返回清单与来源名称。
func (c *cli) loadManifest(path string, gm *gdata.Manager) (*config.Manifest, string, error) {
	if path != "" {
		m, err := config.LoadManifest(path)
		if err != nil {
			return nil, sourceFile, err
		}
		return m, sourceFile, nil
	}

	store := game.NewManifestStore(gm, c.logger)
	m, found, err := store.Load()
	if err != nil {
		return nil, sourceStored, err
	}
	if found {
		return m, sourceStored, nil
	}

	data, err := embedded.DefaultManifest()
	if err != nil {
		return nil, sourceBuiltin, fmt.Errorf("failed to read built-in manifest: %w", err)
	}
	m, err = config.ParseManifest(data)
	if err != nil {
		return nil, sourceBuiltin, err
	}
	return m, sourceBuiltin, nil
}

// companions 解析清单中的全部伙伴配置
func (c *cli) companions(gm *gdata.Manager) ([]config.CompanionConfig, error) {
	m, source, err := c.loadManifest(c.cfg.Manifest, gm)
	if err != nil {
		return nil, err
	}
	configs, err := m.Resolve()
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: manifest from %s has no companions", config.ErrInvalidConfiguration, source)
	}
	c.logger.Info("manifest loaded",
		zap.String("source", source),
		zap.Int("companions", len(configs)))
	return configs, nil
}
