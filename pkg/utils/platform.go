//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上
// 桌面端返回 false；设置 CURSORBUDDY_MOBILE_EMULATE=1 可在桌面模拟移动模式
func IsMobile() bool {
	return os.Getenv("CURSORBUDDY_MOBILE_EMULATE") == "1"
}
