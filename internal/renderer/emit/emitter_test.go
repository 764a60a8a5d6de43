package emit

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/framecore/internal/renderer/core"
)

// rowChanges returns one change per cell of row y, in column order.
func rowChanges(buf *core.Buffer, y int) []core.Change {
	changes := make([]core.Change, 0, buf.Width())
	for x := 0; x < buf.Width(); x++ {
		changes = append(changes, core.Change{X: x, Y: y, Cell: buf.Cell(x, y)})
	}
	return changes
}

func emitChanges(t *testing.T, opts Options, buf *core.Buffer, changes []core.Change) string {
	t.Helper()
	var out bytes.Buffer
	e := New(&out, opts)
	n, err := e.Changes(buf, changes)
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if n != out.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, out.Len())
	}
	return out.String()
}

func TestEmitterPlainCell(t *testing.T) {
	buf := core.NewBuffer(4, 1)
	buf.SetCell(2, 0, core.NewCell('A', core.DefaultStyle()))

	got := emitChanges(t, DefaultOptions(), buf, []core.Change{{X: 2, Y: 0, Cell: buf.Cell(2, 0)}})
	if want := "\x1b[1;3HA"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitterNoChanges(t *testing.T) {
	got := emitChanges(t, DefaultOptions(), core.NewBuffer(4, 1), nil)
	if got != "" {
		t.Errorf("empty change list should write nothing, got %q", got)
	}
}

func TestEmitterStyleChangeMinimization(t *testing.T) {
	buf := core.NewBuffer(3, 1)
	buf.SetString(0, 0, "abc", core.NewStyle(core.ColorRed).Bold())

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	want := "\x1b[1;1H\x1b[1m\x1b[38;2;255;0;0ma" +
		"\x1b[1;2Hb" +
		"\x1b[1;3Hc" +
		"\x1b[0m"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestEmitterColorResetToDefault(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	buf.SetCell(0, 0, core.NewCell('a', core.NewStyle(core.ColorRed)))
	buf.SetCell(1, 0, core.NewCell('b', core.DefaultStyle()))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	want := "\x1b[1;1H\x1b[38;2;255;0;0ma\x1b[1;2H\x1b[39mb"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestEmitterUnsetDefaultEmitsNothing(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	buf.SetString(0, 0, "ab", core.DefaultStyle())

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	if strings.Contains(got, "39m") || strings.Contains(got, "49m") {
		t.Errorf("default colour with no prior colour should not emit a reset: %q", got)
	}
}

func TestEmitterAttributeRemovalResets(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	red := core.NewStyle(core.ColorRed)
	buf.SetCell(0, 0, core.NewCell('a', red.Bold()))
	buf.SetCell(1, 0, core.NewCell('b', red.Italic()))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	want := "\x1b[1;1H\x1b[1m\x1b[38;2;255;0;0ma" +
		"\x1b[1;2H\x1b[0;3m\x1b[38;2;255;0;0mb" +
		"\x1b[0m"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestEmitterAllAttributes(t *testing.T) {
	buf := core.NewBuffer(1, 1)
	var all core.Attribute
	for _, a := range core.AllAttributes {
		all = all.With(a)
	}
	buf.SetCell(0, 0, core.NewCell('x', core.DefaultStyle().WithAttributes(all)))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	if !strings.Contains(got, "\x1b[1;2;3;4;5;7;9m") {
		t.Errorf("combined SGR missing: %q", got)
	}
}

func TestEmitterBackground(t *testing.T) {
	buf := core.NewBuffer(1, 1)
	buf.SetCell(0, 0, core.NewCell(' ', core.DefaultStyle().WithBackground(core.RGB(1, 2, 3))))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	want := "\x1b[1;1H\x1b[48;2;1;2;3m \x1b[0m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitter256Color(t *testing.T) {
	buf := core.NewBuffer(1, 1)
	buf.SetCell(0, 0, core.NewCell('r', core.NewStyle(core.ColorRed)))

	opts := DefaultOptions()
	opts.ColorMode = ColorMode256
	got := emitChanges(t, opts, buf, rowChanges(buf, 0))
	if !strings.Contains(got, "\x1b[38;5;196m") {
		t.Errorf("expected palette index 196 for red, got %q", got)
	}
}

func TestEmitterSkipsContinuation(t *testing.T) {
	buf := core.NewBuffer(3, 1)
	buf.SetString(0, 0, "世x", core.DefaultStyle())

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	want := "\x1b[1;1H世\x1b[1;3Hx"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmitterSequence(t *testing.T) {
	buf := core.NewBuffer(3, 1)
	flag := "\U0001F1FA\U0001F1F8"
	buf.SetString(0, 0, flag, core.DefaultStyle())

	got := emitChanges(t, DefaultOptions(), buf, []core.Change{{X: 0, Y: 0, Cell: buf.Cell(0, 0)}})
	if got != "\x1b[1;1H"+flag {
		t.Errorf("got %q", got)
	}
}

// checkLinkPairing verifies every OSC 8 open is closed and opens precede
// their closes.
func checkLinkPairing(t *testing.T, out string) (opens int) {
	t.Helper()
	open := false
	for i := 0; i < len(out); i++ {
		if !strings.HasPrefix(out[i:], "\x1b]8;") {
			continue
		}
		if strings.HasPrefix(out[i:], "\x1b]8;;") {
			if !open {
				t.Fatalf("close without open at %d in %q", i, out)
			}
			open = false
			continue
		}
		if open {
			t.Fatalf("nested open at %d in %q", i, out)
		}
		open = true
		opens++
	}
	if open {
		t.Fatalf("unterminated hyperlink in %q", out)
	}
	return opens
}

func TestEmitterHyperlinkPairing(t *testing.T) {
	buf := core.NewBuffer(6, 2)
	buf.SetString(0, 0, "ab cd", core.DefaultStyle())
	a := buf.RegisterLink("https://a.example")
	b := buf.RegisterLink("https://b.example")
	buf.SetLink(core.NewRect(0, 0, 2, 1), a)
	buf.SetLink(core.NewRect(3, 0, 2, 1), b)
	buf.SetLink(core.NewRect(4, 1, 2, 1), b)

	changes := append(rowChanges(buf, 0), rowChanges(buf, 1)...)
	got := emitChanges(t, DefaultOptions(), buf, changes)

	if opens := checkLinkPairing(t, got); opens != 3 {
		t.Errorf("opens = %d, want 3", opens)
	}
	_, id, _ := buf.Link(a)
	if !strings.Contains(got, "\x1b]8;id="+id+";https://a.example\x07") {
		t.Errorf("open sequence for a missing: %q", got)
	}
}

func TestEmitterHyperlinkOpenAtEndIsClosed(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	buf.SetLink(buf.Bounds(), buf.RegisterLink("https://a.example"))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	if checkLinkPairing(t, got) != 1 {
		t.Errorf("expected one link span, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b]8;;\x07") {
		t.Errorf("link should be closed at end of frame: %q", got)
	}
}

func TestEmitterHyperlinksDisabled(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	buf.SetLink(buf.Bounds(), buf.RegisterLink("https://a.example"))

	opts := DefaultOptions()
	opts.Hyperlinks = false
	got := emitChanges(t, opts, buf, rowChanges(buf, 0))
	if strings.Contains(got, "\x1b]8;") {
		t.Errorf("hyperlinks disabled but emitted: %q", got)
	}
}

func TestEmitterFull(t *testing.T) {
	buf := core.NewBuffer(4, 2)
	buf.SetString(0, 1, "hi", core.DefaultStyle())

	var out bytes.Buffer
	e := New(&out, DefaultOptions())
	if _, err := e.Full(buf); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	if !strings.HasPrefix(got, "\x1b[2J") {
		t.Errorf("full redraw should clear first: %q", got)
	}
	// One erase plus one cursor move per cell.
	if n := strings.Count(got, "\x1b["); n != 1+8 {
		t.Errorf("escape count = %d, want 9", n)
	}
	if !strings.Contains(got, "\x1b[2;1Hh\x1b[2;2Hi") {
		t.Errorf("row 2 text missing: %q", got)
	}
}

func TestEmitterStateResetsPerFrame(t *testing.T) {
	buf := core.NewBuffer(1, 1)
	buf.SetCell(0, 0, core.NewCell('r', core.NewStyle(core.ColorRed)))

	var out bytes.Buffer
	e := New(&out, DefaultOptions())
	for i := 0; i < 2; i++ {
		out.Reset()
		if _, err := e.Changes(buf, rowChanges(buf, 0)); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "38;2;255;0;0m") {
			t.Errorf("frame %d: colour should be re-emitted, got %q", i, out.String())
		}
	}
	if e.Written() == 0 {
		t.Error("Written should accumulate")
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEmitterWriteError(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	e := New(failingWriter{}, DefaultOptions())

	_, err := e.Full(buf)
	if !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}
}

// flakyWriter fails the first n writes and then accepts everything.
type flakyWriter struct {
	fails int
	out   bytes.Buffer
}

func (f *flakyWriter) Write(p []byte) (int, error) {
	if f.fails > 0 {
		f.fails--
		return 0, errWrite
	}
	return f.out.Write(p)
}

func TestEmitterRecoversAfterWriteError(t *testing.T) {
	buf := core.NewBuffer(3, 1)
	buf.SetString(0, 0, "abc", core.NewStyle(core.RGB(255, 0, 0)))
	w := &flakyWriter{fails: 1}
	e := New(w, DefaultOptions())

	if _, err := e.Full(buf); !errors.Is(err, errWrite) {
		t.Fatalf("first Full = %v, want write error", err)
	}

	n, err := e.Full(buf)
	if err != nil {
		t.Fatalf("Full after the writer recovered: %v", err)
	}
	if n == 0 || n != w.out.Len() {
		t.Errorf("bytes = %d, writer got %d", n, w.out.Len())
	}

	var ref bytes.Buffer
	if _, err := New(&ref, DefaultOptions()).Full(buf); err != nil {
		t.Fatal(err)
	}
	if got := w.out.String(); got != ref.String() {
		t.Errorf("recovered frame = %q, want %q", got, ref.String())
	}
}

func TestEmitterZeroWidthRuneWritesSpace(t *testing.T) {
	buf := core.NewBuffer(2, 1)
	buf.SetCell(0, 0, core.NewCell('\u0301', core.DefaultStyle()))
	buf.SetCell(1, 0, core.NewCell('x', core.DefaultStyle()))

	got := emitChanges(t, DefaultOptions(), buf, rowChanges(buf, 0))
	if strings.ContainsRune(got, '\u0301') {
		t.Errorf("lone combining mark emitted: %q", got)
	}
	if !strings.Contains(got, " ") {
		t.Errorf("expected a space in place of the mark: %q", got)
	}
}
