// Package dom holds the retained element tree. Build reconciles a freshly
// built view tree against the previous one so that unchanged elements keep
// their ids; every change is recorded as a dirty node so the renderer can
// limit what it emits.
package dom

import (
	"slices"

	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/style"
	"github.com/dshills/framecore/internal/view"
)

// Geometry supplies the rectangle of each node for painting.
type Geometry interface {
	RectFor(id core.NodeID) (core.Rect, error)
}

// Animator supplies animated colour overrides. An empty element id asks for
// an untargeted (whole screen) value.
type Animator interface {
	Color(elementID, property string) (core.Color, bool)
}

// Animated property names.
const (
	PropForeground = "foreground"
	PropBackground = "background"
)

type node struct {
	alive    bool
	parent   core.NodeID
	children []core.NodeID

	kind      view.Kind
	key       string
	elementID string
	decl      style.Style
	text      string
	link      string
	paint     view.PaintFunc
	revision  int

	resolved    style.Resolved
	hasResolved bool

	// dirty means the node's area must be re-examined this frame.
	dirty bool
	// styleDirty means the resolved style must be recomputed.
	styleDirty bool
}

// DOM is an arena of nodes indexed by core.NodeID. Id 0 is never used.
// It is not safe for concurrent use.
type DOM struct {
	nodes []node
	free  []core.NodeID
	root  core.NodeID

	// released holds ids removed during the current Build. They return to
	// free only once the whole tree is reconciled, so no id is handed out
	// twice while old child lists are still being compared.
	released []core.NodeID

	resolver  *style.Resolver
	geometry  Geometry
	animator  Animator
	byElement map[string]core.NodeID
	tabWidth  int

	built view.View
}

// New creates an empty DOM whose root inherits the base pen.
func New(base core.Style) *DOM {
	return &DOM{
		nodes:     make([]node, 1, 64),
		resolver:  style.NewResolver(base),
		byElement: make(map[string]core.NodeID),
		tabWidth:  4,
	}
}

// SetGeometry sets the source of node rectangles used by Render.
func (d *DOM) SetGeometry(g Geometry) {
	d.geometry = g
}

// SetAnimator sets the source of animated colours used by Render.
func (d *DOM) SetAnimator(a Animator) {
	d.animator = a
}

// SetTabWidth sets the tab stop width for text elements.
func (d *DOM) SetTabWidth(n int) {
	d.tabWidth = max(n, 1)
	if d.root != 0 {
		d.markAllDirty(d.root)
	}
}

// SetBase replaces the base pen; every node is restyled on the next
// ComputeStyles.
func (d *DOM) SetBase(base core.Style) {
	d.resolver.SetBase(base)
	if d.root != 0 {
		d.nodes[d.root].styleDirty = true
	}
}

// Len returns the number of live nodes.
func (d *DOM) Len() int {
	return len(d.nodes) - 1 - len(d.free)
}

// Build reconciles the tree against v.Build(). Nodes whose element matches
// by key (or by position among unkeyed siblings) and kind keep their id.
func (d *DOM) Build(v view.View) error {
	if d.built == nil {
		if m, ok := v.(view.Mounter); ok {
			m.Mount()
		}
	}
	d.built = v

	el := v.Build()
	clear(d.byElement)
	defer d.reclaim()
	if el == nil {
		if d.root != 0 {
			d.remove(d.root)
			d.root = 0
		}
		return nil
	}
	d.root = d.reconcile(d.root, 0, el)
	return nil
}

// Close tears the tree down and notifies the last built view.
func (d *DOM) Close() {
	if d.root != 0 {
		d.remove(d.root)
		d.root = 0
	}
	d.reclaim()
	if u, ok := d.built.(view.Unmounter); ok {
		u.Unmount()
	}
	d.built = nil
}

// reconcile updates node id (0 for none) to match el and returns the id
// that now represents el.
func (d *DOM) reconcile(id, parent core.NodeID, el *view.Element) core.NodeID {
	if id != 0 && d.nodes[id].kind != el.Kind {
		d.remove(id)
		id = 0
	}
	if id == 0 {
		id = d.alloc()
		n := &d.nodes[id]
		n.kind = el.Kind
		n.dirty = true
		n.styleDirty = true
	}

	n := &d.nodes[id]
	n.parent = parent
	n.key = el.Key
	if n.decl != el.Style || n.text != el.Text {
		n.decl = el.Style
		n.text = el.Text
		n.styleDirty = true
		n.dirty = true
	}
	if n.link != el.Link || n.revision != el.Revision {
		n.link = el.Link
		n.revision = el.Revision
		n.dirty = true
	}
	n.paint = el.Paint
	n.elementID = el.ID
	if el.ID != "" {
		d.byElement[el.ID] = id
	}

	old := n.children
	next := d.reconcileChildren(id, old, el.Children)
	if !slices.Equal(old, next) {
		d.nodes[id].dirty = true
	}
	d.nodes[id].children = next
	return id
}

func (d *DOM) reconcileChildren(id core.NodeID, old []core.NodeID, els []*view.Element) []core.NodeID {
	keyed := make(map[string]core.NodeID)
	var unkeyed []core.NodeID
	for _, c := range old {
		if k := d.nodes[c].key; k != "" {
			keyed[k] = c
		} else {
			unkeyed = append(unkeyed, c)
		}
	}

	used := make(map[core.NodeID]bool, len(old))
	next := make([]core.NodeID, 0, len(els))
	for _, el := range els {
		if el == nil {
			continue
		}
		var match core.NodeID
		if el.Key != "" {
			if c, ok := keyed[el.Key]; ok && !used[c] {
				match = c
			}
		} else if len(unkeyed) > 0 {
			match, unkeyed = unkeyed[0], unkeyed[1:]
		}
		child := d.reconcile(match, id, el)
		used[child] = true
		next = append(next, child)
	}

	for _, c := range old {
		if !used[c] && d.nodes[c].alive {
			d.remove(c)
		}
	}
	return next
}

func (d *DOM) alloc() core.NodeID {
	if n := len(d.free); n > 0 {
		id := d.free[n-1]
		d.free = d.free[:n-1]
		d.nodes[id] = node{alive: true}
		return id
	}
	d.nodes = append(d.nodes, node{alive: true})
	return core.NodeID(len(d.nodes) - 1)
}

// remove frees id and its subtree.
func (d *DOM) remove(id core.NodeID) {
	n := &d.nodes[id]
	if !n.alive {
		return
	}
	children := n.children
	if n.elementID != "" && d.byElement[n.elementID] == id {
		delete(d.byElement, n.elementID)
	}
	d.nodes[id] = node{}
	d.released = append(d.released, id)
	for _, c := range children {
		d.remove(c)
	}
}

// reclaim makes ids released by remove available to alloc.
func (d *DOM) reclaim() {
	d.free = append(d.free, d.released...)
	d.released = d.released[:0]
}

// ComputeStyles recomputes resolved styles for nodes whose declared style
// or inherited pen changed. A node whose resolved style changes is marked
// dirty.
func (d *DOM) ComputeStyles() {
	if d.root == 0 {
		return
	}
	d.computeStyle(d.root, nil, false)
}

func (d *DOM) computeStyle(id core.NodeID, parent *style.Resolved, parentChanged bool) {
	n := &d.nodes[id]
	changed := false
	if n.styleDirty || parentChanged || !n.hasResolved {
		r := d.resolver.Resolve(parent, n.decl)
		d.intrinsicSize(n, parent, &r)
		if !n.hasResolved || r != n.resolved {
			n.resolved = r
			n.hasResolved = true
			n.dirty = true
			changed = true
		}
		n.styleDirty = false
	}
	resolved := n.resolved
	for _, c := range n.children {
		d.computeStyle(c, &resolved, changed)
	}
}

// intrinsicSize gives auto-sized text the size of its content along the
// parent's main axis.
func (d *DOM) intrinsicSize(n *node, parent *style.Resolved, r *style.Resolved) {
	if n.kind != view.KindText || parent == nil {
		return
	}
	w, h := textSize(n.text, d.tabWidth)
	b := &r.Box
	extra := 0
	if b.Border {
		extra = 2
	}
	switch parent.Box.Direction {
	case style.Column:
		if b.Height == 0 {
			b.Height = h + extra + b.Padding.Top + b.Padding.Bottom
		}
	case style.Row:
		if b.Width == 0 {
			b.Width = w + extra + b.Padding.Left + b.Padding.Right
		}
	}
}

// RootID returns the root node, if any.
func (d *DOM) RootID() (core.NodeID, bool) {
	return d.root, d.root != 0
}

// Children returns the child ids of id.
func (d *DOM) Children(id core.NodeID) []core.NodeID {
	if !d.valid(id) {
		return nil
	}
	return d.nodes[id].children
}

// Parent returns the parent of id; the root has none.
func (d *DOM) Parent(id core.NodeID) (core.NodeID, bool) {
	if !d.valid(id) || d.nodes[id].parent == 0 {
		return 0, false
	}
	return d.nodes[id].parent, true
}

// IsDirty reports whether id changed since the last ClearDirty.
func (d *DOM) IsDirty(id core.NodeID) bool {
	return d.valid(id) && d.nodes[id].dirty
}

// DirtyNodeIDs returns the ids of every live dirty node in ascending order.
func (d *DOM) DirtyNodeIDs() []core.NodeID {
	var ids []core.NodeID
	for i := 1; i < len(d.nodes); i++ {
		if d.nodes[i].alive && d.nodes[i].dirty {
			ids = append(ids, core.NodeID(i))
		}
	}
	return ids
}

// ClearDirty resets every dirty flag.
func (d *DOM) ClearDirty() {
	for i := range d.nodes {
		d.nodes[i].dirty = false
	}
}

// StyleFor returns the resolved style of id.
func (d *DOM) StyleFor(id core.NodeID) (style.Resolved, bool) {
	if !d.valid(id) || !d.nodes[id].hasResolved {
		return style.Resolved{}, false
	}
	return d.nodes[id].resolved, true
}

// NodeForElement maps an element id to its node.
func (d *DOM) NodeForElement(elementID string) (core.NodeID, bool) {
	id, ok := d.byElement[elementID]
	return id, ok
}

// Text returns the text of id.
func (d *DOM) Text(id core.NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].text
}

func (d *DOM) valid(id core.NodeID) bool {
	return id != 0 && int(id) < len(d.nodes) && d.nodes[id].alive
}

func (d *DOM) markAllDirty(id core.NodeID) {
	n := &d.nodes[id]
	n.dirty = true
	n.styleDirty = true
	for _, c := range n.children {
		d.markAllDirty(c)
	}
}
