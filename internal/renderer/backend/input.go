package backend

import "unicode/utf8"

// Key identifies a decoded key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Event is a decoded key press. Control characters decode as KeyRune with
// the lower-case letter in Rune and ModCtrl set.
type Event struct {
	Key  Key
	Rune rune
	Mod  ModMask
}

// IsCtrl reports whether e is Ctrl plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Mod.Has(ModCtrl) && e.Rune == r
}

// Decode parses raw terminal input into key events. It returns the events
// and the number of bytes consumed; an incomplete trailing UTF-8 or CSI
// sequence is left unconsumed for the next read. A lone trailing ESC is
// reported as KeyEscape.
func Decode(data []byte) ([]Event, int) {
	var events []Event
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b >= 0x20 && b < 0x7f:
			events = append(events, Event{Key: KeyRune, Rune: rune(b)})
			i++
		case b == 0x1b:
			n, ev := decodeEscape(data[i:])
			if n == 0 {
				return events, i
			}
			if ev.Key != KeyNone {
				events = append(events, ev)
			}
			i += n
		case b == 0x7f:
			events = append(events, Event{Key: KeyBackspace})
			i++
		case b < 0x20:
			events = append(events, decodeControl(b))
			i++
		default:
			if !utf8.FullRune(data[i:]) {
				return events, i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				events = append(events, Event{Key: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return events, i
}

func decodeControl(b byte) Event {
	switch b {
	case 0x08:
		return Event{Key: KeyBackspace}
	case 0x09:
		return Event{Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Key: KeyEnter}
	case 0x00:
		return Event{Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}
	}
	return Event{}
}

// decodeEscape parses a sequence starting with ESC. It returns 0 when the
// sequence is incomplete.
func decodeEscape(data []byte) (int, Event) {
	if len(data) == 1 {
		return 1, Event{Key: KeyEscape}
	}
	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		return 3, Event{Key: finalKey(data[2])}
	case 0x1b:
		return 2, Event{Key: KeyEscape, Mod: ModAlt}
	}
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, Event{Key: KeyRune, Rune: rune(data[1]), Mod: ModAlt}
	}
	return 1, Event{Key: KeyEscape}
}

func decodeCSI(data []byte) (int, Event) {
	end := 2
	for end < len(data) && end < 16 {
		b := data[end]
		end++
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			return end, csiEvent(data[2:end])
		}
		if b < 0x20 || b > 0x7e {
			return end, Event{}
		}
	}
	if end >= 16 {
		return end, Event{}
	}
	return 0, Event{}
}

// csiEvent maps CSI parameters plus final byte to a key.
func csiEvent(seq []byte) Event {
	final := seq[len(seq)-1]
	params := seq[:len(seq)-1]

	var mod ModMask
	// xterm modifiers: 1;<m>X where m-1 is a shift/alt/ctrl bitmask.
	if len(params) == 3 && params[0] == '1' && params[1] == ';' {
		m := int(params[2]-'0') - 1
		if m&1 != 0 {
			mod |= ModShift
		}
		if m&2 != 0 {
			mod |= ModAlt
		}
		if m&4 != 0 {
			mod |= ModCtrl
		}
	}

	if final == '~' {
		switch string(params) {
		case "1", "7":
			return Event{Key: KeyHome}
		case "2":
			return Event{Key: KeyInsert}
		case "3":
			return Event{Key: KeyDelete}
		case "4", "8":
			return Event{Key: KeyEnd}
		case "5":
			return Event{Key: KeyPageUp}
		case "6":
			return Event{Key: KeyPageDown}
		}
		return Event{}
	}
	return Event{Key: finalKey(final), Mod: mod}
}

func finalKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}
