// Package ui draws the raygui control panel and the HUD over the heart.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	AccentColor    rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    int32
	ButtonHeight   int32
	ButtonGap      int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 10, B: 40, A: 200},
		PanelBorder:    rl.Color{R: 255, G: 105, B: 180, A: 120},
		SectionHeader:  rl.Color{R: 255, G: 105, B: 180, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		AccentColor:    rl.Color{R: 255, G: 20, B: 147, A: 255},
		BarBg:          rl.Color{R: 40, G: 30, B: 60, A: 255},
		BarFill:        rl.Color{R: 255, G: 105, B: 180, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       14,
		HeaderFontSize: 20,
		ButtonWidth:    150,
		ButtonHeight:   30,
		ButtonGap:      10,
	}
}
