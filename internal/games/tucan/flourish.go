package tucan

import (
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

// Flourish is the game-over flash: the sky disappears, the background cycles
// through colors with a fixed pause between them, then the sky comes back.
func Flourish(sc *scene.Scene, sky *scene.Node, colors []core.Color, step float64) scene.Action {
	actions := []scene.Action{scene.Run(func() { sky.Hidden = true })}
	for i, c := range colors {
		if i > 0 {
			actions = append(actions, scene.Wait(step))
		}
		actions = append(actions, scene.Run(func() { sc.Background = c }))
	}
	actions = append(actions, scene.Run(func() { sky.Hidden = false }))
	return scene.Sequence(actions...)
}

func parseColors(names []string) []core.Color {
	out := make([]core.Color, 0, len(names))
	for _, n := range names {
		out = append(out, core.ParseColor(n))
	}
	return out
}
