package decorset

import (
	"github.com/majeekg/view/pkg/changelog"
	"github.com/majeekg/view/pkg/decoration"
)

// Map returns a new set with every decoration's position translated through
// changes. Subtrees no change touches are returned unchanged
// (pointer-identical), which is what lets setcompare's structural diff
// short-circuit on shared subtrees.
func (s *Set) Map(changes changelog.Mapper) *Set {
	root, newLength, escaped := s.mapInner(changes, 0, 0)
	if len(escaped) == 0 {
		return root
	}

	local := append([]decoration.Decoration(nil), root.local...)
	local = append(local, escaped...)
	sortDecorations(local)

	size := len(local)
	for _, c := range root.children {
		size += c.size
	}

	return &Set{length: newLength, size: size, local: local, children: root.children}
}

// mapInner remaps the subtree rooted at s, which spans [offset, offset+s.length)
// in the old document, to its new position starting at newOffset in the new
// document. It returns the remapped subtree, that subtree's new length, and
// any decoration whose remapped span no longer fits within
// [newOffset, newOffset+newLength) — an "escapee" that must bubble up into
// an ancestor's local array, expressed in the new document's absolute
// coordinates so the ancestor can re-relativize it to its own frame.
func (s *Set) mapInner(changes changelog.Mapper, offset, newOffset int) (result *Set, newLength int, escaped []decoration.Decoration) {
	end := offset + s.length

	if !changes.TouchesRange(offset, end) {
		return s, s.length, nil
	}

	newEnd := changes.MapPos(end, -1)
	newLength = newEnd - newOffset

	if s.IsLeaf() {
		kept, esc := remapDecorations(s.local, changes, offset, newOffset, newLength)
		sortDecorations(kept)

		if len(kept) == 0 && newLength == 0 {
			return Empty, 0, esc
		}

		return &Set{length: newLength, size: len(kept), local: kept}, newLength, esc
	}

	localKept, localEscaped := remapDecorations(s.local, changes, offset, newOffset, newLength)

	rawChildren := make([]*Set, 0, len(s.children))

	var fromChildren []decoration.Decoration

	pos, newPos := offset, newOffset

	for _, c := range s.children {
		childSet, childNewLen, childEscaped := c.mapInner(changes, pos, newPos)
		rawChildren = append(rawChildren, childSet)

		for _, d := range childEscaped {
			fromChildren = append(fromChildren, shift(d, -newOffset))
		}

		pos += c.length
		newPos += childNewLen
	}

	children := dropEmptyChildren(rawChildren)

	local := make([]decoration.Decoration, 0, len(localKept)+len(fromChildren))
	local = append(local, localKept...)
	local = append(local, fromChildren...)

	var finalLocal []decoration.Decoration

	for _, d := range local {
		if d.From < 0 || d.To > newLength {
			escaped = append(escaped, shift(d, newOffset))
			continue
		}

		finalLocal = append(finalLocal, d)
	}

	escaped = append(escaped, localEscaped...)
	sortDecorations(finalLocal)

	size := len(finalLocal)
	for _, c := range children {
		size += c.size
	}

	if size == 0 && newLength == 0 {
		return Empty, 0, escaped
	}

	return &Set{length: newLength, size: size, local: finalLocal, children: children}, newLength, escaped
}

// remapDecorations maps each decoration in decos (relative to a node
// spanning [offset, offset+*) in the old document) through changes. A
// decoration that no longer exists (Decoration.Map's ok=false) is dropped
// outright; one that maps outside [0, newLength) escapes to the caller,
// expressed in the new document's absolute coordinates.
func remapDecorations(
	decos []decoration.Decoration, changes changelog.Mapper, offset, newOffset, newLength int,
) (kept, escaped []decoration.Decoration) {
	for _, d := range decos {
		md, ok := d.Map(changes, offset, newOffset)
		if !ok {
			continue
		}

		if md.From < 0 || md.To > newLength {
			escaped = append(escaped, shift(md, newOffset))
			continue
		}

		kept = append(kept, md)
	}

	return kept, escaped
}
