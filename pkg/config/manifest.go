package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest 伙伴清单
//
// 描述启动时要添加的所有伙伴。
//
// 配置文件位置: data/companions.yaml（嵌入默认值），或用户通过 --manifest 指定
type Manifest struct {
	// Companions 伙伴列表，按顺序添加
	Companions []CompanionOptions `yaml:"companions"`
}

// LoadManifest 从文件加载伙伴清单
//
// 参数:
//   - path: 清单文件路径
//
// 返回:
//   - *Manifest: 加载成功后的清单
//   - error: 读取、解析或校验失败时返回错误
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest 解析 YAML 格式的清单内容并校验
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Validate 校验清单中每个伙伴的配置
func (m *Manifest) Validate() error {
	for i, opts := range m.Companions {
		if _, err := NewCompanionConfig(opts); err != nil {
			return fmt.Errorf("companion #%d (%s): %w", i, opts.Name, err)
		}
	}
	return nil
}

// Resolve 将清单中的所有伙伴配置规范化
func (m *Manifest) Resolve() ([]CompanionConfig, error) {
	configs := make([]CompanionConfig, 0, len(m.Companions))
	for i, opts := range m.Companions {
		cfg, err := NewCompanionConfig(opts)
		if err != nil {
			return nil, fmt.Errorf("companion #%d (%s): %w", i, opts.Name, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Marshal 将清单序列化为 YAML
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}
