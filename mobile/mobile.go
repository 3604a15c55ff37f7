//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前先把数据文件复制到本目录：
//
//	mkdir -p mobile/data && cp data/landing.yaml data/reveal.yaml mobile/data/
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.redflag -o build/android/redflag.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/RedFlag.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/redflag/pkg/app"
	"github.com/decker502/redflag/pkg/embedded"
	"github.com/decker502/redflag/pkg/logging"
)

func init() {
	if err := logging.Init(true); err != nil {
		log.Printf("[Mobile] logging disabled: %v", err)
	}

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	landing, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(landing)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
