package ui

import (
	"strings"

	"github.com/decopy/decopy/pkg/text"
)

// BoxWidth is the fixed interior width of every box, in visible columns
// between the two vertical borders.
const BoxWidth = 51

// NoSplit draws a border without a junction glyph.
const NoSplit = -1

// maxSourceName caps the source name column of the queue box.
const maxSourceName = 15

// Box drawing glyphs, rounded corners.
const (
	verticalChar    = '│'
	horizontalChar  = '─'
	splitLeftChar   = '├'
	splitRightChar  = '┤'
	splitAboveChar  = '┬'
	splitBelowChar  = '┴'
	topLeftChar     = '╭'
	topRightChar    = '╮'
	bottomLeftChar  = '╰'
	bottomRightChar = '╯'
)

// ColumnSplit returns the interior column where the queue box's borders
// carry their junction: four columns past the at-most-15-cell source name.
func ColumnSplit(sourceName string) int {
	n := text.VisibleWidth(sourceName)
	if n > maxSourceName {
		n = maxSourceName
	}
	return n + 4
}

// ArrowRow returns the 1-based destination row that carries the source
// arrow: none when there are no destinations, the first row for one or two
// destinations, the middle row beyond that.
func ArrowRow(destinations int) int {
	switch {
	case destinations == 0:
		return 0
	case destinations <= 2:
		return 1
	default:
		return destinations / 2
	}
}

func border(left, right, junction rune, split int) string {
	var b strings.Builder
	b.WriteRune(left)
	for i := 0; i < BoxWidth; i++ {
		if i == split {
			b.WriteRune(junction)
		} else {
			b.WriteRune(horizontalChar)
		}
	}
	b.WriteRune(right)
	return b.String()
}

// topBorder draws the upper rule, with a downward junction at the given
// interior column unless split is NoSplit.
func topBorder(split int) string {
	return border(topLeftChar, topRightChar, splitAboveChar, split)
}

// bottomBorder draws the lower rule, with an upward junction at the given
// interior column unless split is NoSplit.
func bottomBorder(split int) string {
	return border(bottomLeftChar, bottomRightChar, splitBelowChar, split)
}

// dividerRule separates the title row from the box body.
func dividerRule() string {
	return string(splitLeftChar) + strings.Repeat(string(horizontalChar), BoxWidth) + string(splitRightChar)
}

// contentLine draws one interior row, right-padding s with spaces to the
// fixed width. Overlong content skips the padding rather than underflow.
func contentLine(s string) string {
	pad := BoxWidth - text.VisibleWidth(s) - 1
	var b strings.Builder
	b.WriteRune(verticalChar)
	b.WriteByte(' ')
	b.WriteString(s)
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteRune(verticalChar)
	return b.String()
}

// arrowRowText lays out the queue row that points from the source name to
// its destination.
func arrowRowText(sourceName, dest string) string {
	name := text.Truncate(sourceName, maxSourceName)
	return " " + name + " " + strings.Repeat(string(horizontalChar), 2) + "> " + dest
}

// plainRowText lays out a queue row without the arrow: a vertical rule at
// the split column, then the destination.
func plainRowText(split int, dest string) string {
	return strings.Repeat(" ", split-1) + string(verticalChar) + "  " + dest
}

// queueBoxLines renders the whole destination-queue box, junctions aligned
// at the column split.
func queueBoxLines(sourceName string, destinations []string) []string {
	split := ColumnSplit(sourceName)
	arrow := ArrowRow(len(destinations))
	room := BoxWidth - (split + 3)

	lines := make([]string, 0, len(destinations)+2)
	lines = append(lines, topBorder(split))
	for i, dest := range destinations {
		dest = dimStyle.Sprint(text.Truncate(dest, room))
		if i+1 == arrow {
			lines = append(lines, contentLine(arrowRowText(sourceName, dest)))
		} else {
			lines = append(lines, contentLine(plainRowText(split, dest)))
		}
	}
	lines = append(lines, bottomBorder(split))
	return lines
}
