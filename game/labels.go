package game

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
)

// ModeLabel is the render mode button text.
func ModeLabel(m render.Mode) string {
	return m.Label()
}

// ProfileLabel is the rhythm button text, e.g. "Normal (72)".
func ProfileLabel(p systems.Profile) string {
	name := p.String()
	return fmt.Sprintf("%s%s (%.0f)", strings.ToUpper(name[:1]), name[1:], p.BPM())
}

// SoundLabel is the sound toggle text.
func SoundLabel(on bool) string {
	if on {
		return "Âm thanh: ON"
	}
	return "Âm thanh: OFF"
}

// PerturbLabel is the explosion-and-wave button text.
const PerturbLabel = "Explode + Wave"
