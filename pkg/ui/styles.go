package ui

import (
	"github.com/fatih/color"
)

// 🎨 The styles every boxed frame is drawn with. fatih/color handles
// NO_COLOR and non-terminal sinks through color.NoColor.
var (
	titleStyle = color.New(color.FgMagenta)
	keyStyle   = color.New(color.FgHiBlack, color.Bold)
	dimStyle   = color.New(color.FgHiBlack)
)
