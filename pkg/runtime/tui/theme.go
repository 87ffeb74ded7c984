package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SetupTheme applies the dark slate palette.
func SetupTheme() {
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    tcell.NewRGBColor(15, 23, 42),    // slate-900
		ContrastBackgroundColor:     tcell.NewRGBColor(30, 41, 59),    // slate-800
		MoreContrastBackgroundColor: tcell.NewRGBColor(51, 65, 85),    // slate-700
		BorderColor:                 tcell.NewRGBColor(71, 85, 105),   // slate-600
		TitleColor:                  tcell.NewRGBColor(129, 140, 248), // indigo-400
		GraphicsColor:               tcell.NewRGBColor(99, 102, 241),  // indigo-500
		PrimaryTextColor:            tcell.NewRGBColor(226, 232, 240), // slate-200
		SecondaryTextColor:          tcell.NewRGBColor(148, 163, 184), // slate-400
		TertiaryTextColor:           tcell.NewRGBColor(100, 116, 139), // slate-500
		InverseTextColor:            tcell.NewRGBColor(15, 23, 42),
		ContrastSecondaryTextColor:  tcell.NewRGBColor(226, 232, 240),
	}
}

var providerColors = map[string]string{
	"aws":   "orange",
	"azure": "dodgerblue",
	"gcp":   "green",
	"other": "white",
}

var statusColors = map[string]string{
	"healthy":  "green",
	"degraded": "yellow",
	"offline":  "red",
}
