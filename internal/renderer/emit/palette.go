package emit

import (
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/gdamore/tcell/v2"
)

// xterm256 lists the palette entries used for 256-colour output. The first 16
// entries are skipped because their RGB values depend on the terminal theme.
var xterm256 = func() []tcell.Color {
	p := make([]tcell.Color, 0, 240)
	for i := 16; i < 256; i++ {
		p = append(p, tcell.PaletteColor(i))
	}
	return p
}()

// palette quantises RGB colours to xterm-256 indices, caching results.
type palette struct {
	cache map[core.Color]int
}

func newPalette() *palette {
	return &palette{cache: make(map[core.Color]int)}
}

// index returns the nearest xterm-256 palette index for c.
func (p *palette) index(c core.Color) int {
	if n, ok := p.cache[c]; ok {
		return n
	}
	tc := tcell.FindColor(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), xterm256)
	n := int(tc - tcell.ColorValid)
	p.cache[c] = n
	return n
}
