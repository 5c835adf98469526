// Package engine implements the ClusterPop simulation: the board, cluster
// matching, gravity compaction, scoring and the level state machine.
// It has no UI or platform dependencies; randomness is injected.
package engine

import (
	"fmt"
	"strings"
)

// Color is the color of an item on the board.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorPurple
	ColorBlue
	ColorPink
	ColorGreen
	ColorOrange
	ColorMulti
	ColorCount // Sentinel value for iteration
)

// String returns the lower-case color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorBlue:
		return "blue"
	case ColorPink:
		return "pink"
	case ColorGreen:
		return "green"
	case ColorOrange:
		return "orange"
	case ColorMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Char returns the single letter used in layouts and snapshots.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorBlue:
		return 'B'
	case ColorPink:
		return 'K'
	case ColorGreen:
		return 'G'
	case ColorOrange:
		return 'O'
	case ColorMulti:
		return 'M'
	default:
		return '?'
	}
}

// ParseColor accepts a color name or its layout letter, case-insensitive.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "purpure", "p":
		return ColorPurple, true
	case "blue", "b":
		return ColorBlue, true
	case "pink", "ping", "k":
		return ColorPink, true
	case "green", "g":
		return ColorGreen, true
	case "orange", "o":
		return ColorOrange, true
	case "multi", "m":
		return ColorMulti, true
	default:
		return ColorRed, false
	}
}

// AllColors returns every color in declaration order.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// Pos addresses a board slot. Row 0 is the top row, Col 0 the leftmost column.
type Pos struct {
	Row int
	Col int
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the neighboring position in the given direction.
func (p Pos) Step(d Direction) Pos {
	dr, dc := d.Delta()
	return Pos{Row: p.Row + dr, Col: p.Col + dc}
}

// Direction is one of the four orthogonal neighbors.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the (row, col) offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Directions lists the 4-neighborhood in a fixed order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}
