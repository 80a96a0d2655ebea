package game

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// 存储路径常量
const (
	manifestObject   = "companions"
	manifestProperty = "manifest"
)

// ManifestStore 用户级伙伴清单存储
// 清单以 YAML 原文保存在 gdata 中，读取时解析并校验
type ManifestStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，不存储任何内容）
	logger       *zap.Logger
}

// NewManifestStore 创建清单存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - logger: 可为 nil
func NewManifestStore(gdataManager *gdata.Manager, logger *zap.Logger) *ManifestStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManifestStore{gdataManager: gdataManager, logger: logger.Named("manifest-store")}
}

// Available 是否可以持久化
func (s *ManifestStore) Available() bool {
	return s.gdataManager != nil
}

// Exists 是否已保存过清单
func (s *ManifestStore) Exists() bool {
	if s.gdataManager == nil {
		return false
	}
	return s.gdataManager.ObjectPropExists(manifestObject, manifestProperty)
}

// Load 读取已保存的清单
//
// 返回：
//   - *config.Manifest: 解析后的清单，未保存时为 nil
//   - bool: 是否存在已保存的清单
//   - error: 读取或解析失败
func (s *ManifestStore) Load() (*config.Manifest, bool, error) {
	if !s.Exists() {
		return nil, false, nil
	}

	data, err := s.gdataManager.LoadObjectProp(manifestObject, manifestProperty)
	if err != nil {
		return nil, true, fmt.Errorf("failed to load stored manifest: %w", err)
	}

	m, err := config.ParseManifest(data)
	if err != nil {
		return nil, true, err
	}

	s.logger.Debug("stored manifest loaded", zap.Int("companions", len(m.Companions)))
	return m, true, nil
}

// Save 保存清单原文
//
// 保存前会先解析校验，拒绝写入无效清单。降级模式下返回 nil。
func (s *ManifestStore) Save(data []byte) error {
	if _, err := config.ParseManifest(data); err != nil {
		return err
	}
	if s.gdataManager == nil {
		s.logger.Warn("no data directory available, manifest not stored")
		return nil
	}

	if err := s.gdataManager.SaveObjectProp(manifestObject, manifestProperty, data); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	s.logger.Info("manifest stored", zap.Int("bytes", len(data)))
	return nil
}
