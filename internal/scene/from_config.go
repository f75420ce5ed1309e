package scene

import (
	"github.com/san-kum/hairsim/internal/config"
	"github.com/san-kum/hairsim/internal/hair"
)

// FromConfig builds the authored scene a config describes.
func FromConfig(cfg *config.Config) *Scene {
	sc := Grid(GridSpec{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Spacing: cfg.Spacing,
	}, cfg.Points, cfg.RestLength)

	sc.Sway = Sway{
		Amplitude: cfg.Sway.Amplitude,
		Frequency: cfg.Sway.Frequency,
		Axis:      hair.Vec3{X: 1},
	}
	return sc
}
