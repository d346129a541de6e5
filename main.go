package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/wavearena/pkg/app"
	"github.com/decker502/wavearena/pkg/config"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	arenaPath = flag.String("arena", "", "竞技场 YAML 配置路径（默认使用内置配置）")
	seed      = flag.Int64("seed", 0, "敌人出生位置的随机种子（0 = 按时间）")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		ArenaPath: *arenaPath,
		Seed:      *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Wave Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
