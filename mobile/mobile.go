//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.cursorbuddy -o build/android/cursorbuddy.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CursorBuddy.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/gonewx/cursorbuddy/internal/observability"
	"github.com/gonewx/cursorbuddy/pkg/app"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/embedded"
	"github.com/gonewx/cursorbuddy/pkg/game"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cfg := config.DefaultAppConfig()
	cfg.Logger.Format = "json"
	logger := observability.InitializeLogger(cfg.Logger)

	gm, err := game.OpenStorage("cursorbuddy")
	if err != nil {
		logger.Warn("data storage unavailable", zap.Error(err))
	}

	companions, err := loadCompanions(gm, logger)
	if err != nil {
		log.Fatalf("伙伴清单加载失败: %v", err)
	}

	settings := game.NewSettingsManager(gm, logger)

	a, err := app.NewApp(app.Options{
		Config:     cfg,
		Companions: companions,
		Settings:   settings,
		Audio:      game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings, logger),
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(a)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
