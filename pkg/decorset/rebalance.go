package decorset

import "github.com/majeekg/view/pkg/decoration"

// rebalanceChildren restores the tree's shape invariants after update's
// large-node path assembles a raw children/local pair: no empty child after
// the first, no
// grossly oversized child hiding behind a thin local array, no pair of
// leaves small enough to merge, and no run of small children that should be
// grouped under a wrapper.
func rebalanceChildren(local []decoration.Decoration, children []*Set, childSize int) ([]decoration.Decoration, []*Set) {
	children = dropEmptyChildren(children)
	local, children = unwrapOversized(local, children, childSize)
	children = mergeSmallLeaves(children)
	local, children = groupRuns(local, children, childSize)

	sortDecorations(local)

	return local, children
}

// dropEmptyChildren removes children with no decorations anywhere in their
// subtree, growing the preceding child's length to absorb the dropped span
// so the parent's total coverage and every later child's start position are
// unchanged. A leading empty child has no preceding sibling to absorb it and
// is kept. A lone child is never dropped: the caller is responsible for
// collapsing a wholly empty node.
func dropEmptyChildren(children []*Set) []*Set {
	if len(children) <= 1 {
		return children
	}

	out := make([]*Set, 0, len(children))

	for _, c := range children {
		if c.size == 0 && len(out) > 0 {
			last := out[len(out)-1]
			out[len(out)-1] = withLength(last, last.length+c.length)

			continue
		}

		out = append(out, c)
	}

	return out
}

func withLength(s *Set, length int) *Set {
	return &Set{length: length, size: s.size, local: s.local, children: s.children}
}

// unwrapOversized splices a child's own children directly into the parent
// when that child has grown far larger than its sibling's target share
// (size > 2*childSize) while holding almost nothing in its own local array
// (len(local) < length/2): the extra layer of indirection no longer pays for
// itself. The unwrapped child's own locals move into the parent's local
// array, offset-adjusted to the parent's frame.
func unwrapOversized(local []decoration.Decoration, children []*Set, childSize int) ([]decoration.Decoration, []*Set) {
	out := make([]*Set, 0, len(children))
	off := 0

	for _, c := range children {
		if len(c.children) > 0 && c.size > 2*childSize && len(c.local) < c.length/2 {
			for _, d := range c.local {
				local = append(local, shift(d, off))
			}

			out = append(out, c.children...)
		} else {
			out = append(out, c)
		}

		off += c.length
	}

	return local, out
}

// mergeSmallLeaves merges adjacent leaf children whose combined decoration
// count still fits in a single leaf.
func mergeSmallLeaves(children []*Set) []*Set {
	out := make([]*Set, 0, len(children))

	i := 0
	for i < len(children) {
		c := children[i]

		if i+1 < len(children) {
			next := children[i+1]
			if len(c.children) == 0 && len(next.children) == 0 && c.size+next.size <= BaseNodeSize {
				merged := make([]decoration.Decoration, 0, len(c.local)+len(next.local))
				merged = append(merged, c.local...)

				for _, d := range next.local {
					merged = append(merged, shift(d, c.length))
				}

				sortDecorations(merged)

				out = append(out, &Set{length: c.length + next.length, size: c.size + next.size, local: merged})
				i += 2

				continue
			}
		}

		out = append(out, c)
		i++
	}

	return out
}

// groupRuns wraps runs of consecutive children into a single new
// intermediate node: a run starts at a child smaller than childSize/2 and
// extends over following children while the combined size stays at most
// childSize; a run of two or more children is wrapped. Any parent-local
// decoration fully contained in the run's span is pulled down into the new
// wrapper so it no longer needs to straddle every child in the run.
func groupRuns(local []decoration.Decoration, children []*Set, childSize int) ([]decoration.Decoration, []*Set) {
	out := make([]*Set, 0, len(children))

	off := 0
	i := 0

	for i < len(children) {
		c := children[i]

		if c.size < childSize/2 {
			j := i + 1
			sum := c.size
			end := off + c.length

			for j < len(children) {
				nsum := sum + children[j].size
				if nsum > childSize {
					break
				}

				sum = nsum
				end += children[j].length
				j++
			}

			if j > i+1 {
				groupStart, groupEnd := off, end

				var pulled []decoration.Decoration

				remaining := local[:0:0]

				for _, d := range local {
					if d.From >= groupStart && d.To <= groupEnd {
						pulled = append(pulled, shift(d, -groupStart))
					} else {
						remaining = append(remaining, d)
					}
				}

				local = remaining

				sortDecorations(pulled)

				wrapChildren := append([]*Set(nil), children[i:j]...)

				size := len(pulled)
				for _, wc := range wrapChildren {
					size += wc.size
				}

				out = append(out, &Set{length: groupEnd - groupStart, size: size, local: pulled, children: wrapChildren})

				off = groupEnd
				i = j

				continue
			}
		}

		out = append(out, c)
		off += c.length
		i++
	}

	return local, out
}
