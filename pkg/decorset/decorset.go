// Package decorset implements the core of the system: an immutable,
// structurally-shared tree of decorations over a linear text buffer. A Set
// supports bulk add/filter (Update), position remapping through editor
// changes (Map), ordered heap-driven traversal (see the lineheap package),
// and structural diffing between two revisions (see the setcompare
// package).
//
// Sets are never mutated after construction. Every operation returns a new
// Set, sharing any subtree the operation did not need to touch.
package decorset

import (
	"sort"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/mathutil"
)

// BaseNodeSize is the target number of decorations a leaf carries before it
// is split, and the unit branching factor used throughout rebalancing.
const BaseNodeSize = 32

// baseNodeSizeShift turns a total size into a target child size: 1/32th of
// the total, floored at BaseNodeSize.
const baseNodeSizeShift = 5

// Set is an immutable tree node. length is the text length it covers; size
// is the total decoration count in the subtree; local holds decorations
// stored directly at this node (positions relative to the node's own
// offset); children are ordered subtrees whose lengths sum to at most
// length.
type Set struct {
	local    []decoration.Decoration
	children []*Set
	length   int
	size     int
}

// Empty is the sentinel singleton empty set.
var Empty = &Set{}

// Length returns the text length this set covers.
func (s *Set) Length() int { return s.length }

// Size returns the total number of decorations in the set.
func (s *Set) Size() int { return s.size }

// Local returns the decorations stored directly at this node, positions
// relative to the node's own offset, sorted by (from, bias). Callers must
// not mutate the returned slice: sets are immutable and this is the live
// backing array.
func (s *Set) Local() []decoration.Decoration { return s.local }

// Children returns this node's ordered child subtrees. Callers must not
// mutate the returned slice.
func (s *Set) Children() []*Set { return s.children }

// IsLeaf reports whether this node has no children.
func (s *Set) IsLeaf() bool { return len(s.children) == 0 }

// Depth returns the height of the tree rooted at s (0 for a leaf),
// exercised by the balance property tests and the observability package's
// tree-shape gauges.
func (s *Set) Depth() int {
	maxChild := 0
	for _, c := range s.children {
		if d := c.Depth(); d > maxChild {
			maxChild = d
		}
	}

	if len(s.children) == 0 {
		return 0
	}

	return maxChild + 1
}

// Of builds a fresh Set containing exactly the given decorations. It is the
// sole builder entry point alongside Empty.
func Of(decorations []decoration.Decoration) *Set {
	sorted := sortedCopy(decorations)

	length := 0
	for _, d := range sorted {
		if d.To > length {
			length = d.To
		}
	}

	return buildTree(sorted, length)
}

// FilterFunc decides whether an existing decoration survives an Update call
// whose filter window reaches it. It receives the decoration's absolute
// from/to and its descriptor, and returns true to keep it.
type FilterFunc func(from, to int, desc decoration.Descriptor) bool

// Update returns a new set with newDecos added and, within
// [filterFrom, filterTo], every existing decoration dropped unless filter
// returns true for it (decorations outside the window are always kept). A
// nil filter keeps everything in the window too, making this an
// additions-only update. The resulting length is
// max(s.length, max(d.To for d in newDecos)).
func (s *Set) Update(newDecos []decoration.Decoration, filter FilterFunc, filterFrom, filterTo int) *Set {
	sorted := sortedCopy(newDecos)

	return s.updateInner(0, sorted, filter, filterFrom, filterTo)
}

// UpdateAll is Update with the filter window covering the whole document,
// the common case for a bulk add/replace.
func (s *Set) UpdateAll(newDecos []decoration.Decoration, filter FilterFunc) *Set {
	return s.Update(newDecos, filter, 0, s.length)
}

// updateInner is the recursive core of Update. offset is this node's
// absolute start position; adds is the full sorted addition list in
// absolute document coordinates (every addition with From >= offset that
// this node or one of its descendants might own).
func (s *Set) updateInner(offset int, adds []decoration.Decoration, filter FilterFunc, filterFrom, filterTo int) *Set {
	keptLocal, localsChanged := filterLocal(s.local, offset, filter, filterFrom, filterTo)

	newChildren := make([]*Set, 0, len(s.children))
	childrenChanged := false

	var straddlers []decoration.Decoration

	pos := offset
	idx := 0

	for _, child := range s.children {
		childEnd := pos + child.length

		var bucket []decoration.Decoration

		for idx < len(adds) && adds[idx].From < childEnd {
			d := adds[idx]
			if d.To > childEnd {
				straddlers = append(straddlers, d)
			} else {
				bucket = append(bucket, d)
			}

			idx++
		}

		intersects := filterTo >= pos && filterFrom <= childEnd
		if len(bucket) == 0 && !intersects {
			newChildren = append(newChildren, child)
		} else {
			nc := child.updateInner(pos, bucket, filter, filterFrom, filterTo)
			if nc != child {
				childrenChanged = true
			}

			newChildren = append(newChildren, nc)
		}

		pos = childEnd
	}

	trailing := adds[idx:]

	if !localsChanged && !childrenChanged && len(straddlers) == 0 && len(trailing) == 0 {
		return s
	}

	newLength := s.length
	for _, d := range append(straddlers[:len(straddlers):len(straddlers)], trailing...) {
		if rel := d.To - offset; rel > newLength {
			newLength = rel
		}
	}

	totalSize := len(keptLocal) + len(straddlers) + len(trailing)
	for _, c := range newChildren {
		totalSize += c.size
	}

	if totalSize <= BaseNodeSize {
		return s.collapseToLeaf(offset, newLength, keptLocal, straddlers, newChildren, trailing)
	}

	return s.buildLargeNode(offset, newLength, totalSize, keptLocal, straddlers, newChildren, trailing, pos)
}

// collapseToLeaf flattens every surviving decoration — kept locals,
// straddlers, the (already updated) children's content, and the remaining
// additions — into a single leaf, once the total no longer needs splitting.
func (s *Set) collapseToLeaf(
	offset, newLength int,
	keptLocal, straddlers []decoration.Decoration,
	children []*Set,
	trailing []decoration.Decoration,
) *Set {
	flat := make([]decoration.Decoration, 0, len(keptLocal)+len(straddlers)+len(trailing))
	flat = append(flat, keptLocal...)

	for _, d := range straddlers {
		flat = append(flat, shift(d, -offset))
	}

	childPos := 0
	for _, c := range children {
		collectShifted(&flat, c, childPos)
		childPos += c.length
	}

	for _, d := range trailing {
		flat = append(flat, shift(d, -offset))
	}

	sortDecorations(flat)

	if len(flat) == 0 && newLength == 0 {
		return Empty
	}

	return &Set{length: newLength, size: len(flat), local: flat}
}

// buildLargeNode groups remaining additions into new trailing children,
// merges bubbled stragglers and straddlers into this node's local array,
// then rebalances.
func (s *Set) buildLargeNode(
	offset, newLength, totalSize int,
	keptLocal, straddlers []decoration.Decoration,
	children []*Set,
	trailing []decoration.Decoration,
	childrenEnd int,
) *Set {
	childSize := mathutil.Max(BaseNodeSize, totalSize>>baseNodeSizeShift)

	var newTrailChildren []*Set

	var bubbled []decoration.Decoration

	if len(trailing) > 0 {
		newTrailChildren, bubbled = groupIntoChildren(trailing, childrenEnd, offset+newLength, childSize)
	}

	local := make([]decoration.Decoration, 0, len(keptLocal)+len(straddlers)+len(bubbled))
	local = append(local, keptLocal...)

	for _, d := range straddlers {
		local = append(local, shift(d, -offset))
	}

	for _, d := range bubbled {
		local = append(local, shift(d, -offset))
	}

	sortDecorations(local)

	allChildren := append(children, newTrailChildren...)

	local, allChildren = rebalanceChildren(local, allChildren, childSize)

	size := len(local)
	for _, c := range allChildren {
		size += c.size
	}

	return &Set{length: newLength, size: size, local: local, children: allChildren}
}

// filterLocal applies an update's filter to a node's local array: a
// decoration is kept if the filter window doesn't reach it, or filter is
// nil, or filter returns true. It returns the original slice (shared,
// unchanged) unless at least one decoration was dropped.
func filterLocal(
	local []decoration.Decoration, offset int, filter FilterFunc, filterFrom, filterTo int,
) (kept []decoration.Decoration, changed bool) {
	for i, d := range local {
		absFrom, absTo := d.From+offset, d.To+offset

		keep := filterFrom > absTo || filterTo < absFrom || filter == nil || filter(absFrom, absTo, d.Desc)
		if keep {
			if changed {
				kept = append(kept, d)
			}

			continue
		}

		if !changed {
			kept = append([]decoration.Decoration(nil), local[:i]...)
			changed = true
		}
	}

	if !changed {
		return local, false
	}

	return kept, true
}

// shift translates a decoration by delta, applied uniformly to From and To.
func shift(d decoration.Decoration, delta int) decoration.Decoration {
	return decoration.Decoration{From: d.From + delta, To: d.To + delta, Desc: d.Desc}
}

func sortedCopy(decorations []decoration.Decoration) []decoration.Decoration {
	sorted := append([]decoration.Decoration(nil), decorations...)
	sortDecorations(sorted)

	return sorted
}

func sortDecorations(decorations []decoration.Decoration) {
	sort.SliceStable(decorations, func(i, j int) bool {
		return decoration.Less(decorations[i], decorations[j])
	})
}
