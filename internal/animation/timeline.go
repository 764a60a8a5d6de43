// Package animation runs colour transitions. A transition either targets one
// element (by element id) or, with an empty element id, the whole screen.
//
// Time only advances through Update, so every query made while rendering a
// frame sees the same instant.
package animation

import (
	"slices"
	"time"

	"github.com/dshills/framecore/internal/renderer/core"
)

// Transition describes one animated colour property.
type Transition struct {
	// ElementID is the target element; empty means untargeted.
	ElementID string
	Property  string

	// From is the starting colour. A zero From continues from the current
	// value of a transition it replaces.
	From core.Color
	To   core.Color

	Duration time.Duration
	Easing   Easing // nil = Linear

	// Repeat runs the transition back and forth until cancelled.
	Repeat bool
}

type running struct {
	Transition
	start time.Time
	value core.Color
}

func (r *running) key() (string, string) {
	return r.ElementID, r.Property
}

// advance updates value for now and reports whether the transition is done.
func (r *running) advance(now time.Time) bool {
	elapsed := now.Sub(r.start)
	if elapsed < 0 {
		elapsed = 0
	}
	d := r.Duration
	var p float64
	switch {
	case r.Repeat:
		cycle := elapsed % (2 * d)
		if cycle <= d {
			p = float64(cycle) / float64(d)
		} else {
			p = 2 - float64(cycle)/float64(d)
		}
	case elapsed >= d:
		r.value = r.To
		return true
	default:
		p = float64(elapsed) / float64(d)
	}
	ease := r.Easing
	if ease == nil {
		ease = Linear
	}
	r.value = r.From.Blend(r.To, ease(p))
	return false
}

// Timeline holds running transitions. It is not safe for concurrent use.
type Timeline struct {
	now    time.Time
	active []*running
}

// New creates an empty timeline whose clock reads now.
func New(now time.Time) *Timeline {
	return &Timeline{now: now}
}

// Now returns the time of the last Update.
func (tl *Timeline) Now() time.Time {
	return tl.now
}

// Start begins t at the current time, replacing any transition on the same
// element and property. Transitions without a positive duration are ignored.
func (tl *Timeline) Start(t Transition) {
	if t.Duration <= 0 {
		return
	}
	r := &running{Transition: t, start: tl.now, value: t.From}
	for i, old := range tl.active {
		if e, p := old.key(); e == t.ElementID && p == t.Property {
			if !t.From.Set {
				r.From = old.value
				r.value = old.value
			}
			tl.active[i] = r
			return
		}
	}
	tl.active = append(tl.active, r)
}

// Cancel stops the transition on an element property. It reports whether one
// was running.
func (tl *Timeline) Cancel(elementID, property string) bool {
	n := len(tl.active)
	tl.active = slices.DeleteFunc(tl.active, func(r *running) bool {
		e, p := r.key()
		return e == elementID && p == property
	})
	return len(tl.active) != n
}

// Update advances the clock to now and drops finished transitions.
func (tl *Timeline) Update(now time.Time) {
	tl.now = now
	tl.active = slices.DeleteFunc(tl.active, func(r *running) bool {
		return r.advance(now)
	})
}

// Len returns the number of running transitions.
func (tl *Timeline) Len() int {
	return len(tl.active)
}

// HasActive reports whether any transition is running.
func (tl *Timeline) HasActive() bool {
	return len(tl.active) > 0
}

// ActiveElementIDs returns the sorted ids of elements with a running
// targeted transition.
func (tl *Timeline) ActiveElementIDs() []string {
	var ids []string
	for _, r := range tl.active {
		if r.ElementID != "" {
			ids = append(ids, r.ElementID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// ActiveUntargetedProperties returns the sorted properties with a running
// untargeted transition.
func (tl *Timeline) ActiveUntargetedProperties() []string {
	var props []string
	for _, r := range tl.active {
		if r.ElementID == "" {
			props = append(props, r.Property)
		}
	}
	slices.Sort(props)
	return slices.Compact(props)
}

// Color returns the current value of an element property, if animated.
func (tl *Timeline) Color(elementID, property string) (core.Color, bool) {
	for _, r := range tl.active {
		if e, p := r.key(); e == elementID && p == property {
			return r.value, true
		}
	}
	return core.Color{}, false
}
