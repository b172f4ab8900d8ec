package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/roadfx/pkg/app"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "FX config file (default: embedded data/fx.yaml)")
	roadmapFlag = flag.String("roadmap", "", "Roadmap file (default: embedded data/roadmap.yaml)")
	muteFlag    = flag.Bool("mute", false, "Do not open the audio device")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		FXConfigPath: *configFlag,
		RoadmapPath:  *roadmapFlag,
		Mute:         *muteFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Roadmap FX")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
