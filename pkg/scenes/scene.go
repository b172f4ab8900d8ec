package scenes

import (
	"github.com/gonewx/roadfx/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

var (
	_ Scene           = (*RoadmapScene)(nil)
	_ game.Saveable   = (*RoadmapScene)(nil)
	_ game.Disposable = (*RoadmapScene)(nil)
)
