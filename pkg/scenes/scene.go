package scenes

import (
	"github.com/decker502/redflag/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*LandingScene)(nil)
	_ game.Leaver   = (*LandingScene)(nil)
	_ game.Saveable = (*LandingScene)(nil)
)
