package emit

import (
	"bufio"

	"github.com/charmbracelet/x/ansi"
)

// Pre-allocated ANSI sequence fragments.
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")

	csiFg256     = []byte("\x1b[38;5;") // followed by N m
	csiBg256     = []byte("\x1b[48;5;") // followed by N m
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;B m
	csiBgRGB     = []byte("\x1b[48;2;") // followed by R;G;B m
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")

	eraseScreen = []byte(ansi.EraseEntireScreen)
	linkClose   = []byte(ansi.ResetHyperlink())
)

// sgrCodes maps each attribute bit, in core.AllAttributes order, to its SGR
// parameter.
var sgrCodes = [...]byte{'1', '2', '3', '4', '5', '7', '9'}

// writeInt writes a non-negative integer without allocation.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input).
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeLinkOpen writes an OSC 8 open with an id parameter so terminals can
// join the cells of one link that are split across rows.
func writeLinkOpen(w *bufio.Writer, url, id string) {
	w.WriteString(ansi.SetHyperlink(url, "id="+id))
}
