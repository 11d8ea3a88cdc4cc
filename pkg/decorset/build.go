package decorset

import (
	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/mathutil"
)

// buildTree recursively constructs a balanced subtree containing exactly
// decorations (already sorted, positions relative to this subtree's own
// frame starting at 0) covering the given length. It is the "recursively
// built from empty" helper used both for fresh trailing children during a
// large update and as the only builder Of uses.
func buildTree(decorations []decoration.Decoration, length int) *Set {
	if len(decorations) == 0 && length == 0 {
		return Empty
	}

	if len(decorations) <= BaseNodeSize {
		sorted := sortedCopy(decorations)

		return &Set{length: length, size: len(sorted), local: sorted}
	}

	childSize := mathutil.Max(BaseNodeSize, len(decorations)>>baseNodeSizeShift)

	children, bubbled := groupIntoChildren(decorations, 0, length, childSize)

	sortDecorations(bubbled)

	size := len(bubbled)
	for _, c := range children {
		size += c.size
	}

	return &Set{length: length, size: size, local: bubbled, children: children}
}

// groupIntoChildren splits decorations (sorted, absolute within whatever
// frame startPos/endPos are expressed in) into chunks of up to childSize,
// building a subtree for each chunk. A decoration whose To reaches past its
// chunk's boundary (determined by the next chunk's first From, or endPos for
// the last chunk) can't be placed in any one child and bubbles up to the
// caller instead, in the same absolute frame it arrived in.
func groupIntoChildren(
	decorations []decoration.Decoration, startPos, endPos, childSize int,
) (children []*Set, bubbled []decoration.Decoration) {
	pos := startPos
	i := 0

	for i < len(decorations) {
		end := mathutil.Min(i+childSize, len(decorations))

		var groupEnd int
		if end < len(decorations) {
			groupEnd = decorations[end].From
		} else {
			groupEnd = endPos
		}

		var keep []decoration.Decoration

		for _, d := range decorations[i:end] {
			if d.To > groupEnd {
				bubbled = append(bubbled, d)
			} else {
				keep = append(keep, shift(d, -pos))
			}
		}

		children = append(children, buildTree(keep, groupEnd-pos))

		pos = groupEnd
		i = end
	}

	return children, bubbled
}
