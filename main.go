// cursorbuddy 让一个或多个小伙伴跟随光标移动
//
// 用法:
//
//	cursorbuddy run                 # 桌面窗口
//	cursorbuddy tui                 # 终端模式
//	cursorbuddy validate [file]     # 检查清单
//	cursorbuddy init                # 保存可编辑的清单
package main

import (
	"github.com/gonewx/cursorbuddy/cmd"
	"github.com/gonewx/cursorbuddy/pkg/embedded"
)

func main() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)
	cmd.Execute()
}
