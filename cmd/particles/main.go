// Package main provides an effects sandbox for tuning the completion
// particles, combo badge and section banner without a roadmap.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <path>   FX config file (default: built-in defaults)
//	--auto-play       Fire a completion every 700ms and a section every 5s
//	--mute            Do not open the audio device
//	--seed <n>        Fixed random seed (0 = time based)
//	--verbose         Enable verbose logging
//
// Controls:
//
//	Mouse Click  - Step completion burst at cursor position
//	Space        - Step completion burst at screen center
//	C            - Confetti at cursor position
//	S            - Section banner + confetti at screen center
//	U            - Uncomplete sound
//	A            - Toggle ambient particles
//	P            - Toggle pause
//	X            - Clear all particles
//	Q/Escape     - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/roadfx/pkg/canvas"
	"github.com/gonewx/roadfx/pkg/components"
	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/fx"
	"github.com/gonewx/roadfx/pkg/game"
	"github.com/gonewx/roadfx/pkg/utils"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	configFlag   = flag.String("config", "", "FX config file (default: built-in defaults)")
	autoPlayFlag = flag.Bool("auto-play", false, "Fire completions automatically")
	muteFlag     = flag.Bool("mute", false, "Do not open the audio device")
	seedFlag     = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// errQuit 正常退出
var errQuit = errors.New("quit")

// SandboxGame implements ebiten.Game for the effects sandbox
type SandboxGame struct {
	fx              *fx.Controller
	audioManager    *game.AudioManager
	particleSurface *canvas.EbitenSurface
	overlaySurface  *canvas.EbitenSurface
	fxLayer         *ebiten.Image

	ambient    bool
	paused     bool
	autoPlay   bool
	lastUpdate time.Time
	nextAuto   time.Time
	nextBanner time.Time
	sections   int

	statusMessage string
}

// NewSandboxGame creates a new sandbox instance
func NewSandboxGame() (*SandboxGame, error) {
	cfg := config.DefaultFXConfig()
	if *configFlag != "" {
		loaded, err := config.LoadFXConfig(*configFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to load fx config: %w", err)
		}
		cfg = loaded
	}

	var sink game.Sink = game.NopSink{}
	if !*muteFlag {
		sink = game.NewEbitenSink(audio.NewContext(cfg.Audio.SampleRate))
	}
	am := game.NewAudioManager(sink, nil, cfg.Audio)

	fontSource, err := canvas.LoadDefaultFont()
	if err != nil {
		log.Printf("Warning: %v (overlay text disabled)", err)
	}

	opts := fx.Options{}
	if *seedFlag != 0 {
		opts.Rand = rand.New(rand.NewSource(*seedFlag))
	}

	g := &SandboxGame{
		fx:              fx.NewController(cfg, am, opts),
		audioManager:    am,
		particleSurface: canvas.NewEbitenSurface(nil),
		overlaySurface:  canvas.NewEbitenSurface(fontSource),
		fxLayer:         ebiten.NewImage(screenWidth, screenHeight),
		ambient:         cfg.Particle.Ambient.Enabled,
		autoPlay:        *autoPlayFlag,
		statusMessage:   "Click to complete a step",
	}
	g.particleSurface.SetTarget(g.fxLayer, 1)
	g.fx.Mount(g.particleSurface, canvas.Rect{Width: screenWidth, Height: screenHeight}, 1)
	return g, nil
}

// Update updates the sandbox state
func (g *SandboxGame) Update() error {
	now := time.Now()
	elapsedMs := 1000.0 / float64(ebiten.TPS())
	if !g.lastUpdate.IsZero() {
		elapsedMs = float64(now.Sub(g.lastUpdate)) / float64(time.Millisecond)
	}
	g.lastUpdate = now

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		if g.paused {
			g.statusMessage = "Paused"
		} else {
			g.statusMessage = "Resumed"
		}
	}

	pointer := utils.ReadPointer()
	mx, my := pointer.X, pointer.Y
	cx, cy := float64(screenWidth)/2, float64(screenHeight)/2

	if pointer.JustClicked || pointer.JustReleasedTouch {
		g.complete(float64(mx), float64(my))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.complete(cx, cy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.fx.Particles().Confetti(float64(mx), float64(my))
		g.statusMessage = fmt.Sprintf("Confetti at (%d, %d)", mx, my)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.section(cx, cy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.fx.StepUncompleted()
		g.statusMessage = "Uncompleted"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.ambient = !g.ambient
		g.fx.SetAmbientEnabled(g.ambient)
		g.statusMessage = fmt.Sprintf("Ambient: %v", g.ambient)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.fx.ClearParticles()
		g.statusMessage = "Cleared"
	}

	if g.autoPlay && !g.paused {
		if now.After(g.nextAuto) {
			g.complete(cx+float64(rand.Intn(400)-200), cy+float64(rand.Intn(200)-100))
			g.nextAuto = now.Add(700 * time.Millisecond)
		}
		if now.After(g.nextBanner) {
			g.section(cx, cy)
			g.nextBanner = now.Add(5 * time.Second)
		}
	}

	if !g.paused {
		g.fx.Update(elapsedMs)
	}
	return nil
}

func (g *SandboxGame) complete(x, y float64) {
	combo := g.fx.StepCompleted(x, y)
	g.statusMessage = fmt.Sprintf("Completed at (%.0f, %.0f) combo x%d", x, y, combo)
	log.Printf("Step completed at (%.0f, %.0f), combo %d", x, y, combo)
}

func (g *SandboxGame) section(x, y float64) {
	g.sections++
	title := fmt.Sprintf("Section %d", g.sections)
	g.fx.SectionCompleted(x, y, title)
	g.statusMessage = "Section complete: " + title
}

// Draw renders the sandbox
func (g *SandboxGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{25, 25, 38, 255})

	g.fx.DrawParticles()
	screen.DrawImage(g.fxLayer, nil)

	g.overlaySurface.SetTarget(screen, 1)
	g.fx.DrawOverlay(g.overlaySurface)

	g.drawUI(screen)
}

// drawUI draws the HUD with counters and controls
func (g *SandboxGame) drawUI(screen *ebiten.Image) {
	ps := g.fx.Particles()
	combo := g.fx.Combo()
	stats := combo.Stats()

	lines := []string{
		"FX Sandbox",
		fmt.Sprintf("Particles: %d (burst %d, confetti %d, ambient %d)",
			ps.Count(),
			ps.CountVariant(components.VariantBurst),
			ps.CountVariant(components.VariantConfetti),
			ps.CountVariant(components.VariantAmbient)),
		fmt.Sprintf("Combo: x%d (%s)  Best: x%d  XP: %d  Resets: %d",
			combo.Combo(), combo.Tier(), stats.BestCombo, stats.TotalPoints, combo.Resets()),
		g.statusMessage,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*20)
	}

	controls := []string{
		"Actions: Click/Space = Complete  C = Confetti  S = Section  U = Uncomplete",
		"Toggles: A = Ambient  P = Pause  X = Clear  Q = Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (Press P to resume)", screenWidth-200, 10)
	} else if g.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY MODE", screenWidth-120, 10)
	}
}

// Layout returns the sandbox's logical screen size
func (g *SandboxGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	g, err := NewSandboxGame()
	if err != nil {
		log.Fatalf("Failed to create sandbox: %v", err)
	}
	defer g.audioManager.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Roadmap FX - Sandbox")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
