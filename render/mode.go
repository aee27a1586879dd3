package render

import "fmt"

// Mode selects how particles are drawn.
type Mode uint8

const (
	ModeParticles Mode = iota
	ModeWireframe
	ModeVolumetric
	ModeGalaxy
	modeCount
)

var modeNames = [modeCount]string{
	ModeParticles:  "particles",
	ModeWireframe:  "wireframe",
	ModeVolumetric: "3d",
	ModeGalaxy:     "galaxy",
}

var modeLabels = [modeCount]string{
	ModeParticles:  "Particles",
	ModeWireframe:  "Wireframe",
	ModeVolumetric: "3D Depth",
	ModeGalaxy:     "Galaxy",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Label is the human-readable button text.
func (m Mode) Label() string {
	if m < modeCount {
		return modeLabels[m]
	}
	return m.String()
}

// Next returns the following mode in cycle order.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Modes lists every mode in cycle order.
func Modes() []Mode {
	return []Mode{ModeParticles, ModeWireframe, ModeVolumetric, ModeGalaxy}
}

// ParseMode looks a mode up by its config name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", name)
}
