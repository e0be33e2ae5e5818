package engine

import (
	"github.com/ivlev/drapery/internal/director"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/renderer"
	"github.com/ivlev/drapery/internal/scene"
)

// simulation replays a scenario at a fixed frame rate and yields the frame
// to draw at every tick.
type simulation struct {
	player   *director.Player
	instance *scene.Instance
	captions []director.Caption
	fit      *geometry.Transform
	fps      int
	frame    int
}

func newSimulation(sc *director.Scenario, fps int, fit *geometry.Transform) *simulation {
	in := scene.NewInstance(sc.Product)
	if sc.AR {
		in.EnableAR(true)
	}
	return &simulation{
		player:   director.NewPlayer(sc),
		instance: in,
		captions: sc.Captions(),
		fit:      fit,
		fps:      fps,
	}
}

// next advances one tick. Frame i shows the state at i/fps seconds.
func (s *simulation) next() renderer.Frame {
	dt := 1 / float64(s.fps)
	now := float64(s.frame) * dt
	s.frame++

	root := s.instance.Update(s.player.Advance(now, s.instance), dt)
	if s.fit != nil && s.instance.Mode() == scene.Preview {
		root = scene.OverBackdrop(root, *s.fit)
	}
	return renderer.Frame{Root: root, Caption: captionAt(s.captions, now)}
}

func captionAt(captions []director.Caption, now float64) string {
	for _, c := range captions {
		if now >= c.Start && now < c.End {
			return c.Text
		}
	}
	return ""
}
