package screen

import (
	"errors"
	"testing"

	"github.com/dshills/framecore/internal/renderer/core"
)

func TestDiffIdentical(t *testing.T) {
	a := core.NewBuffer(10, 3)
	b := core.NewBuffer(10, 3)
	a.SetString(0, 0, "same", core.DefaultStyle())
	b.SetString(0, 0, "same", core.DefaultStyle())

	changes, err := Diff(a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %v", changes)
	}
}

func TestDiffEmptyRectsComparesEverything(t *testing.T) {
	prev := core.NewBuffer(10, 3)
	next := core.NewBuffer(10, 3)
	next.SetCell(0, 0, core.NewCell('a', core.DefaultStyle()))
	next.SetCell(9, 2, core.NewCell('z', core.DefaultStyle()))

	changes, err := Diff(prev, next, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", changes)
	}
	if changes[0].X != 0 || changes[0].Y != 0 || changes[0].Cell.Rune != 'a' {
		t.Errorf("first change = %+v", changes[0])
	}
	if changes[1].X != 9 || changes[1].Y != 2 || changes[1].Cell.Rune != 'z' {
		t.Errorf("second change = %+v", changes[1])
	}
}

func TestDiffScopedToRects(t *testing.T) {
	prev := core.NewBuffer(10, 3)
	next := core.NewBuffer(10, 3)
	next.SetCell(1, 1, core.NewCell('i', core.DefaultStyle()))
	next.SetCell(8, 2, core.NewCell('o', core.DefaultStyle()))

	changes, err := Diff(prev, next, []core.Rect{core.NewRect(0, 0, 3, 3)})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0].X != 1 || changes[0].Y != 1 {
		t.Errorf("changes = %v, want only (1,1)", changes)
	}
}

func TestDiffOverlappingRectsVisitOnce(t *testing.T) {
	prev := core.NewBuffer(10, 3)
	next := core.NewBuffer(10, 3)
	next.SetCell(2, 1, core.NewCell('x', core.DefaultStyle()))

	rects := []core.Rect{core.NewRect(0, 0, 4, 3), core.NewRect(1, 1, 4, 1)}
	changes, err := Diff(prev, next, rects)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Errorf("overlap should yield a single change, got %v", changes)
	}
}

func TestDiffClipsRects(t *testing.T) {
	prev := core.NewBuffer(4, 2)
	next := core.NewBuffer(4, 2)
	next.SetCell(3, 1, core.NewCell('x', core.DefaultStyle()))

	changes, err := Diff(prev, next, []core.Rect{core.NewRect(2, 0, 50, 50)})
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Errorf("changes = %v", changes)
	}
}

func TestDiffStyleChange(t *testing.T) {
	prev := core.NewBuffer(4, 1)
	next := core.NewBuffer(4, 1)
	next.SetCell(0, 0, core.NewCell(' ', core.DefaultStyle().WithBackground(core.ColorBlue)))

	changes, _ := Diff(prev, next, nil)
	if len(changes) != 1 {
		t.Errorf("background change should be detected, got %v", changes)
	}
}

func TestDiffComparesResolvedLinks(t *testing.T) {
	prev := core.NewBuffer(4, 1)
	prev.RegisterLink("https://other.example")
	prev.SetLink(core.NewRect(0, 0, 1, 1), prev.RegisterLink("https://x.example"))

	next := core.NewBuffer(4, 1)
	next.SetLink(core.NewRect(0, 0, 1, 1), next.RegisterLink("https://x.example"))

	changes, _ := Diff(prev, next, nil)
	if len(changes) != 0 {
		t.Errorf("same URL under different ids should not differ, got %v", changes)
	}

	next.SetLink(core.NewRect(0, 0, 1, 1), next.RegisterLink("https://y.example"))
	changes, _ = Diff(prev, next, nil)
	if len(changes) != 1 {
		t.Errorf("different URL should differ, got %v", changes)
	}
}

func TestDiffSizeMismatch(t *testing.T) {
	_, err := Diff(core.NewBuffer(2, 2), core.NewBuffer(3, 2), nil)
	if !errors.Is(err, core.ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}
