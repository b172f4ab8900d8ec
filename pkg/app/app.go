// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开存储、
// 创建音效和场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/embedded"
	"github.com/gonewx/roadfx/pkg/game"
	"github.com/gonewx/roadfx/pkg/scenes"
)

const (
	appName            = "roadfx"
	defaultFXPath      = "data/fx.yaml"
	defaultRoadmapPath = "data/roadmap.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// FXConfigPath 特效配置文件路径，为空则使用嵌入的 data/fx.yaml
	FXConfigPath string
	// RoadmapPath 路线图文件路径，为空则使用嵌入的 data/roadmap.yaml
	RoadmapPath string
	// Mute 不打开音频设备
	Mute bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	verbose         bool

	lastUpdate               time.Time
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fxCfg, err := LoadFXConfig(cfg.FXConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		fxCfg = config.DefaultFXConfig()
	}

	roadmap, err := LoadRoadmap(cfg.RoadmapPath)
	if err != nil {
		return nil, fmt.Errorf("路线图加载失败: %w", err)
	}
	log.Printf("[Config] Roadmap %s loaded: %d sections, %d steps",
		roadmap.ID, len(roadmap.Sections), roadmap.StepCount())

	// gdata 打开失败时降级为内存模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings and progress will not persist)", err)
		gdataManager = nil
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	progressManager, err := game.NewProgressManager(gdataManager, roadmap.ID)
	if err != nil {
		return nil, fmt.Errorf("进度初始化失败: %w", err)
	}

	var sink game.Sink = game.NopSink{}
	if !cfg.Mute {
		sink = game.NewEbitenSink(audio.NewContext(fxCfg.Audio.SampleRate))
	}
	audioManager := game.NewAudioManager(sink, settingsManager, fxCfg.Audio)
	log.Printf("[App] AudioManager initialized (mute=%v)", cfg.Mute)

	fontSource, err := canvas.LoadDefaultFont()
	if err != nil {
		log.Printf("[App] Warning: %v (text disabled)", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(id string) game.Scene {
		if id != roadmap.ID {
			return nil
		}
		return scenes.NewRoadmapScene(roadmap, fxCfg, progressManager, settingsManager, audioManager, fontSource)
	})
	if !sceneManager.LoadScene(roadmap.ID) {
		return nil, fmt.Errorf("无法创建路线图场景: %s", roadmap.ID)
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		verbose:         cfg.Verbose,
	}, nil
}

// LoadFXConfig 读取特效配置：指定路径时从磁盘读取，否则读取嵌入的默认配置
func LoadFXConfig(path string) (*config.FXConfig, error) {
	if path != "" {
		return config.LoadFXConfig(path)
	}
	data, err := embedded.ReadFile(defaultFXPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded fx config: %w", err)
	}
	return config.ParseFXConfig(data)
}

// LoadRoadmap 读取路线图：指定路径时从磁盘读取，否则读取嵌入的默认路线图
func LoadRoadmap(path string) (*config.RoadmapConfig, error) {
	if path != "" {
		return config.LoadRoadmapConfig(path)
	}
	data, err := embedded.ReadFile(defaultRoadmapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded roadmap: %w", err)
	}
	return config.ParseRoadmapConfig(data)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次），特效按真实经过的时间推进
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	now := time.Now()
	elapsedMs := 1000.0 / float64(ebiten.TPS())
	if !a.lastUpdate.IsZero() {
		elapsedMs = float64(now.Sub(a.lastUpdate)) / float64(time.Millisecond)
	}
	a.lastUpdate = now

	a.sceneManager.Update(elapsedMs)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[Settings] Warning: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 保存并释放当前场景和音频设备（窗口关闭时调用）
func (a *App) Close() {
	a.sceneManager.Shutdown()
	a.audioManager.Close()
	log.Printf("[App] Shutdown complete")
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
