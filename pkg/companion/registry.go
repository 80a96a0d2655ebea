package companion

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"go.uber.org/zap"
)

// Factory 根据配置为新伙伴创建宿主资源（元素、事件流等）并构造控制器
// 由宿主（桌面或终端）提供
type Factory func(cfg config.CompanionConfig) (*Controller, error)

// Registry 伙伴集合的生命周期管理
//
// 调用方持有并管理 Registry 本身；不存在包级单例。
type Registry struct {
	factory    Factory
	logger     *zap.Logger
	companions []*Controller
}

// NewRegistry 创建伙伴集合
func NewRegistry(factory Factory, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factory: factory,
		logger:  logger.Named("registry"),
	}
}

// Add 创建并启动一个伙伴，追加到集合末尾
func (r *Registry) Add(cfg config.CompanionConfig) (*Controller, error) {
	if r.factory == nil {
		return nil, fmt.Errorf("%w: registry has no factory", config.ErrInvalidConfiguration)
	}
	c, err := r.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create companion %q: %w", cfg.Name, err)
	}
	c.Start()
	r.companions = append(r.companions, c)
	r.logger.Info("companion added",
		zap.String("id", c.ID()),
		zap.String("name", c.Name()),
		zap.Int("count", len(r.companions)))
	return c, nil
}

// AddAll 依次添加多个伙伴，遇到第一个错误即返回
func (r *Registry) AddAll(configs []config.CompanionConfig) error {
	for _, cfg := range configs {
		if _, err := r.Add(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Remove 销毁并移除指定伙伴，不在集合中时返回 false
func (r *Registry) Remove(c *Controller) bool {
	for i, existing := range r.companions {
		if existing == c {
			existing.Destroy()
			r.companions = append(r.companions[:i], r.companions[i+1:]...)
			r.logger.Info("companion removed", zap.String("id", c.ID()), zap.Int("count", len(r.companions)))
			return true
		}
	}
	return false
}

// RemoveAll 销毁并移除全部伙伴
func (r *Registry) RemoveAll() {
	for _, c := range r.companions {
		c.Destroy()
	}
	r.logger.Info("all companions removed", zap.Int("count", len(r.companions)))
	r.companions = nil
}

// PauseAll 停止全部伙伴（保留在集合中）
func (r *Registry) PauseAll() {
	for _, c := range r.companions {
		c.Stop()
	}
}

// ResumeAll 重新启动全部伙伴
func (r *Registry) ResumeAll() {
	for _, c := range r.companions {
		c.Start()
	}
}

// TogglePause 全部暂停或全部恢复：任一伙伴在运行则全部暂停，否则全部恢复
// 返回切换后是否处于运行状态
func (r *Registry) TogglePause() bool {
	for _, c := range r.companions {
		if c.Running() {
			r.PauseAll()
			return false
		}
	}
	r.ResumeAll()
	return len(r.companions) > 0
}

// List 返回集合的副本
func (r *Registry) List() []*Controller {
	out := make([]*Controller, len(r.companions))
	copy(out, r.companions)
	return out
}

// Get 按 ID 查找伙伴
func (r *Registry) Get(id string) (*Controller, bool) {
	for _, c := range r.companions {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Len 伙伴数量
func (r *Registry) Len() int {
	return len(r.companions)
}
