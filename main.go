package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/decker502/redflag/pkg/app"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/embedded"
	"github.com/decker502/redflag/pkg/logging"
)

func main() {
	// .env 可选，提供命令行参数的默认值：REDFLAG_VERBOSE, REDFLAG_DATA, REDFLAG_WATCH
	envErr := godotenv.Load()

	verbose := flag.Bool("verbose", envBool("REDFLAG_VERBOSE"), "显示详细调试信息")
	dataDir := flag.String("data", os.Getenv("REDFLAG_DATA"), "磁盘数据目录（覆盖嵌入的 data/ 文件）")
	watch := flag.Bool("watch", envBool("REDFLAG_WATCH"), "监听 -data 目录并热重载内容和揭示策略")
	flag.Parse()

	if err := logging.Init(*verbose); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logging.Sync()
	if envErr == nil {
		logging.L().Infof("[Main] loaded environment from .env")
	}

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	redflag, err := app.NewApp(app.Config{
		Verbose: *verbose,
		DataDir: *dataDir,
		Watch:   *watch,
	})
	if err != nil {
		logging.L().Fatalf("[Main] 初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("RedFlag - Know who you're dealing with")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先保存偏好
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(redflag); err != nil {
		logging.L().Errorf("[Main] %v", err)
	}
	redflag.Close()
}

// envBool 读取布尔环境变量，无法解析时为 false
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
