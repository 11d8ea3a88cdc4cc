package decorset

import "github.com/majeekg/view/pkg/decoration"

// Collect flattens the whole set into a single slice, sorted by
// (from, startBias), in the set's own absolute coordinates (0..Length()).
// It exists for tests and tools that need the full decoration list rather
// than a streaming traversal (see the lineheap package for the latter).
func Collect(s *Set) []decoration.Decoration {
	out := make([]decoration.Decoration, 0, s.size)
	collectShifted(&out, s, 0)
	sortDecorations(out)

	return out
}

// collectShifted appends every decoration in the subtree rooted at s to
// *dst, shifted by offset (the subtree's absolute start position in the
// caller's frame). The result is not sorted; callers that need global order
// sort once after collecting every subtree.
func collectShifted(dst *[]decoration.Decoration, s *Set, offset int) {
	for _, d := range s.local {
		*dst = append(*dst, shift(d, offset))
	}

	pos := offset
	for _, c := range s.children {
		collectShifted(dst, c, pos)
		pos += c.length
	}
}
