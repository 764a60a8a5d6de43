package dirty

import (
	"testing"

	"github.com/dshills/framecore/internal/renderer/core"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []core.Rect
		want  []core.Rect
	}{
		{
			name:  "empty",
			input: nil,
			want:  []core.Rect{},
		},
		{
			name:  "drops empty rects",
			input: []core.Rect{{}, core.NewRect(1, 1, 0, 4)},
			want:  []core.Rect{},
		},
		{
			name:  "single",
			input: []core.Rect{core.NewRect(1, 2, 3, 4)},
			want:  []core.Rect{core.NewRect(1, 2, 3, 4)},
		},
		{
			name:  "overlapping",
			input: []core.Rect{core.NewRect(0, 0, 4, 4), core.NewRect(2, 2, 4, 4)},
			want:  []core.Rect{core.NewRect(0, 0, 6, 6)},
		},
		{
			name:  "adjacent rows",
			input: []core.Rect{core.NewRect(0, 0, 10, 1), core.NewRect(0, 1, 10, 1)},
			want:  []core.Rect{core.NewRect(0, 0, 10, 2)},
		},
		{
			name:  "disjoint",
			input: []core.Rect{core.NewRect(0, 0, 2, 2), core.NewRect(10, 10, 2, 2)},
			want:  []core.Rect{core.NewRect(0, 0, 2, 2), core.NewRect(10, 10, 2, 2)},
		},
		{
			name: "chain reaction",
			input: []core.Rect{
				core.NewRect(0, 0, 2, 2),
				core.NewRect(6, 0, 2, 2),
				core.NewRect(1, 1, 6, 1), // bridges the first two
			},
			want: []core.Rect{core.NewRect(0, 0, 8, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Merge() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Merge()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	input := []core.Rect{core.NewRect(0, 0, 4, 4), core.NewRect(2, 2, 4, 4)}
	Merge(input)
	if input[0] != core.NewRect(0, 0, 4, 4) || input[1] != core.NewRect(2, 2, 4, 4) {
		t.Errorf("input modified: %v", input)
	}
}

func TestMergeCoversInput(t *testing.T) {
	input := []core.Rect{
		core.NewRect(3, 3, 5, 1),
		core.NewRect(0, 0, 2, 8),
		core.NewRect(7, 2, 3, 3),
		core.NewRect(20, 5, 1, 1),
		core.NewRect(1, 7, 4, 2),
	}
	got := Merge(input)

	for _, r := range input {
		if !Covers(got, r) {
			t.Errorf("merged %v does not cover %v", got, r)
		}
	}
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if got[i].Intersects(got[j]) || got[i].Adjacent(got[j]) {
				t.Errorf("result not at fixpoint: %v and %v", got[i], got[j])
			}
		}
	}
}
