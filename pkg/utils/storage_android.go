//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 数据目录存在
// gdata 在 Android 上写入 /data/data/{package}/ 下的子目录，但不会预先创建，
// 需要在打开存储前调用
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	if err := os.MkdirAll(filepath.Join(dir, "saves"), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// GetStoragePath 获取 Android 应用数据目录
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一个字段即包名
	name, _, _ := bytes.Cut(data, []byte{0})
	pkg := string(bytes.TrimSpace(name))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
