// Package main runs the roadmap effects in a terminal.
//
// Usage:
//
//	go run ./cmd/fxterm [--roadmap path] [--config path] [--mute] [--log file]
//
// Controls:
//
//	Up/Down      - Move the cursor between steps
//	Enter/Space  - Toggle the step under the cursor
//	s            - Confetti at the cursor
//	a            - Toggle ambient particles
//	q/Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/roadfx/pkg/config"
	"github.com/gonewx/roadfx/pkg/fx"
	"github.com/gonewx/roadfx/pkg/game"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var (
	configFlag  = flag.String("config", "", "FX config file (default: built-in defaults)")
	roadmapFlag = flag.String("roadmap", "data/roadmap.yaml", "Roadmap file")
	muteFlag    = flag.Bool("mute", false, "Do not open the audio device")
	logFlag     = flag.String("log", "", "Write logs to this file (default: discard)")
)

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fxterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fxCfg := config.DefaultFXConfig()
	if *configFlag != "" {
		loaded, err := config.LoadFXConfig(*configFlag)
		if err != nil {
			return err
		}
		fxCfg = loaded
	}

	roadmap, err := config.LoadRoadmapConfig(*roadmapFlag)
	if err != nil {
		return err
	}

	gdataManager, err := gdata.Open(gdata.Config{AppName: "roadfx"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v", err)
		gdataManager = nil
	}
	progress, err := game.NewProgressManager(gdataManager, roadmap.ID)
	if err != nil {
		return err
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return err
	}

	var sink game.Sink = game.NopSink{}
	if !*muteFlag {
		// 音频不可用时继续运行
		if s, err := game.NewSpeakerSink(beep.SampleRate(fxCfg.Audio.SampleRate)); err != nil {
			log.Printf("[Audio] Warning: %v (sound disabled)", err)
		} else {
			sink = s
		}
	}
	audioManager := game.NewAudioManager(sink, settings, fxCfg.Audio)
	defer audioManager.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	view := newTermView(screen, roadmap, progress, fx.NewController(fxCfg, audioManager, fx.Options{}))
	view.ambient = settings.GetSettings().AmbientEnabled
	view.fx.SetAmbientEnabled(view.ambient)
	defer view.close()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !view.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			view.fx.Update(float64(now.Sub(last)) / float64(time.Millisecond))
			last = now
			view.draw()
			screen.Show()
		}
	}
}
