package cube

import (
	"fmt"
	"sort"
)

// Theme is a sticker palette. Piece is the body color and Ground the
// background; colors are 0xRRGGBB.
type Theme struct {
	Name   string
	Faces  map[Face]uint32
	Piece  uint32
	Ground uint32
}

// Themes holds the built-in palettes by name.
var Themes = map[string]Theme{
	"cube": {Name: "cube", Faces: map[Face]uint32{U: 0xfff7ff, D: 0xffef48, F: 0xef3923, R: 0x41aac8, B: 0xff8c0a, L: 0x82ca38}, Piece: 0x08101a, Ground: 0xd1d5db},
	"erno": {Name: "erno", Faces: map[Face]uint32{U: 0xffffff, D: 0xffd500, F: 0xc41e3a, R: 0x0051ba, B: 0xff5800, L: 0x009e60}, Piece: 0x111111, Ground: 0x8abdff},
	"dust": {Name: "dust", Faces: map[Face]uint32{U: 0xfff6eb, D: 0xe7c48d, F: 0x8f253e, R: 0x607e69, B: 0xbe6f62, L: 0x849f5d}, Piece: 0x111111, Ground: 0xe7c48d},
	"camo": {Name: "camo", Faces: map[Face]uint32{U: 0xfff6eb, D: 0xbfb672, F: 0x805831, R: 0x718456, B: 0x37241c, L: 0x37431d}, Piece: 0x111111, Ground: 0xbfb672},
	"rain": {Name: "rain", Faces: map[Face]uint32{U: 0xfafaff, D: 0xedb92d, F: 0xce2135, R: 0x449a89, B: 0xec582f, L: 0xa3a947}, Piece: 0x111111, Ground: 0x87b9ac},
}

// DefaultTheme names the palette used when none is configured.
const DefaultTheme = "cube"

// ThemeNames returns the palette names sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for n := range Themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hex formats a face color as #rrggbb.
func (t Theme) Hex(f Face) string {
	return fmt.Sprintf("#%06x", t.Faces[f])
}
