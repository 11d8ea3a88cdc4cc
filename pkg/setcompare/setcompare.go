// Package setcompare computes the minimal set of screen regions a view must
// redraw between two DecorationSet revisions: DecorationSetComparison. It
// distinguishes content changes (a span's styling or collapsed state
// differs) from height changes (a point widget's reported height differs),
// since a view can often satisfy the latter without a full reflow.
package setcompare

import (
	"sort"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/mathutil"
	"github.com/majeekg/view/pkg/textdiff"
	"github.com/majeekg/view/pkg/widget"
)

// MinRangeGap is the smallest gap between two dirty ranges before they're
// merged into one; keeps a comparison with many scattered small diffs from
// reporting a flood of near-adjacent ranges a view would redraw separately
// for no benefit.
const MinRangeGap = 4

// ChangedRange is a dirty span, in both the old set's coordinates
// ([FromA, ToA)) and the new set's ([FromB, ToB)).
type ChangedRange struct {
	FromA int
	ToA   int
	FromB int
	ToB   int
}

// Result holds a comparison's content and height dirty ranges separately.
type Result struct {
	Content []ChangedRange
	Height  []ChangedRange
}

// Compare computes the DecorationSetComparison between a (the document's
// prior decorations) and b (its current ones), given the text changes
// between the two revisions. Pointer-identical sets with no text changes
// short-circuit to an empty result.
//
// Per spec.md §4.6, the comparison runs once per gap between consecutive
// text changes (plus once before the first and once after the last),
// never over the changed span itself — the caller already knows that span
// changed and redraws it regardless of what decorations say, so reporting
// it again here would be redundant. Only a gap where the decorations
// themselves differ contributes a dirty range.
func Compare(a, b *decorset.Set, textChanges []textdiff.ChangedRange) Result {
	if a == b && len(textChanges) == 0 {
		return Result{}
	}

	la := decorset.Collect(a)
	lb := decorset.Collect(b)

	collapsed := jointlyCollapsedRanges(la, lb, textChanges)

	var content, height []ChangedRange

	prevToA, prevToB := 0, 0

	for _, tc := range textChanges {
		content, height = compareGap(la, lb, textChanges, collapsed, prevToA, tc.FromA, prevToB, tc.FromB, content, height)
		prevToA, prevToB = tc.ToA, tc.ToB
	}

	endA := mathutil.Max(prevToA, maxTo(la))
	endB := mathutil.Max(translateToB(endA, textChanges), maxTo(lb))

	content, height = compareGap(la, lb, textChanges, collapsed, prevToA, endA, prevToB, endB, content, height)

	return Result{Content: mergeRanges(content), Height: mergeRanges(height)}
}

// compareGap runs the decoration-list diff bounded to a single gap: old-side
// coordinates [fromA, toA), new-side coordinates [fromB, toB). An empty
// window on both sides (the gap collapsed to nothing, e.g. two adjacent
// text changes) is skipped outright.
func compareGap(
	la, lb []decoration.Decoration, textChanges []textdiff.ChangedRange, collapsed []interval,
	fromA, toA, fromB, toB int, content, height []ChangedRange,
) ([]ChangedRange, []ChangedRange) {
	if toA <= fromA && toB <= fromB {
		return content, height
	}

	return compareActiveSets(clipToWindow(la, fromA, toA), clipToWindow(lb, fromB, toB), textChanges, content, height, collapsed)
}

// clipToWindow returns the decorations in list overlapping [lo, hi), with
// any partially-overlapping decoration's bounds clamped to the window — a
// gap-bounded comparison never reports anything outside its own span.
func clipToWindow(list []decoration.Decoration, lo, hi int) []decoration.Decoration {
	var out []decoration.Decoration

	for _, d := range list {
		from := mathutil.Max(d.From, lo)
		to := mathutil.Min(d.To, hi)

		if from >= to {
			continue
		}

		if from == d.From && to == d.To {
			out = append(out, d)
			continue
		}

		out = append(out, decoration.Decoration{From: from, To: to, Desc: d.Desc})
	}

	return out
}

// maxTo returns the largest To among list, or 0 if list is empty.
func maxTo(list []decoration.Decoration) int {
	max := 0

	for _, d := range list {
		if d.To > max {
			max = d.To
		}
	}

	return max
}

// interval is a half-open [From, To) span in the old set's coordinates.
type interval struct {
	from int
	to   int
}

// jointlyCollapsedRanges finds every collapsed range present, at the same
// span, in both revisions (same descriptor by identity or Eq, same position
// once B-side coordinates are translated back to A-space). Content nested
// entirely inside one of these spans is already known-hidden in both
// revisions, so differences inside it are not worth reporting.
func jointlyCollapsedRanges(la, lb []decoration.Decoration, textChanges []textdiff.ChangedRange) []interval {
	var out []interval

	for _, da := range la {
		rda, ok := da.Desc.(*decoration.RangeDescriptor)
		if !ok || !rda.IsCollapsed() {
			continue
		}

		for _, db := range lb {
			rdb, ok := db.Desc.(*decoration.RangeDescriptor)
			if !ok || !rdb.IsCollapsed() {
				continue
			}

			if da.Desc != db.Desc && !da.Desc.Eq(db.Desc) {
				continue
			}

			if da.From == translateToA(db.From, textChanges) && da.To == translateToA(db.To, textChanges) {
				out = append(out, interval{from: da.From, to: da.To})
			}
		}
	}

	return out
}

// visibleSegments returns the portions of [from, to) not covered by any
// jointly-collapsed span: a region entirely covered yields no segments (it's
// already known-hidden in both revisions, nothing to redraw); a region
// straddling a collapsed boundary yields the sliver(s) still visible, so a
// decoration that only partially overlaps an unchanged collapsed range still
// gets its visible part reported.
func visibleSegments(from, to int, collapsed []interval) []interval {
	segments := []interval{{from: from, to: to}}

	for _, c := range collapsed {
		var next []interval

		for _, seg := range segments {
			if c.to <= seg.from || c.from >= seg.to {
				next = append(next, seg)
				continue
			}

			if seg.from < c.from {
				next = append(next, interval{from: seg.from, to: c.from})
			}

			if c.to < seg.to {
				next = append(next, interval{from: c.to, to: seg.to})
			}
		}

		segments = next
	}

	return segments
}

// compareActiveSets walks the two flattened, sorted decoration lists side by
// side, translating each B-side position back into A-space through the text
// changes so unrelated, unmoved decorations line up. Decorations whose
// identity (descriptor pointer) and position agree contribute nothing;
// anything else produces a content dirty range. A pair of point decorations
// whose widgets are not Compare-equal and report different heights produces
// a height range instead of a content one.
func compareActiveSets(
	la, lb []decoration.Decoration, textChanges []textdiff.ChangedRange, content, height []ChangedRange,
	collapsed []interval,
) ([]ChangedRange, []ChangedRange) {
	ia, ib := 0, 0

	for ia < len(la) && ib < len(lb) {
		da, db := la[ia], lb[ib]

		dbInA := translateToA(db.From, textChanges)

		switch {
		case sameDecoration(da, db, dbInA):
			ia++
			ib++
		case len(visibleSegments(mathutil.Min(da.From, dbInA), mathutil.Max(da.To, dbInA+(db.To-db.From)), collapsed)) == 0:
			// Entirely hidden under an unchanged collapsed range on both
			// sides: neither a content nor a height redraw is worth it.
			ia, ib = advancePos(la, lb, ia, ib)
		case withinTextChange(da.From, textChanges) || withinTextChange(dbInA, textChanges):
			// Shouldn't occur in practice — compareGap's window clipping
			// already excludes a text change's interior — but guards against
			// reporting inside a changed span if a caller's gap ever isn't
			// cleanly bounded.
			ia, ib = advancePos(la, lb, ia, ib)
		case heightOnlyDiffers(da, db):
			height = addRange(height, da.From, da.To, db.From, db.To)
			ia++
			ib++
		default:
			for _, seg := range visibleSegments(da.From, da.To, collapsed) {
				segFromB := db.From + (seg.from - da.From)
				segToB := db.From + (seg.to - da.From)
				content = addRange(content, seg.from, seg.to, segFromB, segToB)
			}

			ia, ib = advancePos(la, lb, ia, ib)
		}
	}

	for ; ia < len(la); ia++ {
		for _, seg := range visibleSegments(la[ia].From, la[ia].To, collapsed) {
			content = addRange(content, seg.from, seg.to, translateToB(seg.from, textChanges), translateToB(seg.to, textChanges))
		}
	}

	for ; ib < len(lb); ib++ {
		dbInA := translateToA(lb[ib].From, textChanges)
		dbInAEnd := dbInA + (lb[ib].To - lb[ib].From)

		for _, seg := range visibleSegments(dbInA, dbInAEnd, collapsed) {
			segFromB := lb[ib].From + (seg.from - dbInA)
			segToB := lb[ib].From + (seg.to - dbInA)
			content = addRange(content, seg.from, seg.to, segFromB, segToB)
		}
	}

	return content, height
}

// sameDecoration reports whether da and db describe the same content at the
// same position. Descriptor sameness accepts either pointer identity (the
// common case: Map reuses the original descriptor pointer) or Eq equality, so
// a freshly-constructed descriptor with identical fields still compares
// equal even though it is never identity-equal to the original.
func sameDecoration(da, db decoration.Decoration, dbInA int) bool {
	if da.From != dbInA || da.To-da.From != db.To-db.From {
		return false
	}

	return da.Desc == db.Desc || da.Desc.Eq(db.Desc)
}

func heightOnlyDiffers(da, db decoration.Decoration) bool {
	pa, aok := da.Desc.(*decoration.PointDescriptor)
	pb, bok := db.Desc.(*decoration.PointDescriptor)

	if !aok || !bok || pa.Widget == nil || pb.Widget == nil {
		return false
	}

	if widget.Compare(pa.Widget, pb.Widget) {
		return false
	}

	return pa.Widget.EstimatedHeight() != pb.Widget.EstimatedHeight()
}

func advancePos(la, lb []decoration.Decoration, ia, ib int) (int, int) {
	switch {
	case ia >= len(la):
		return ia, ib + 1
	case ib >= len(lb):
		return ia + 1, ib
	case la[ia].From <= lb[ib].From:
		return ia + 1, ib
	default:
		return ia, ib + 1
	}
}

func withinTextChange(pos int, textChanges []textdiff.ChangedRange) bool {
	for _, tc := range textChanges {
		if pos >= tc.FromA && pos <= tc.ToA {
			return true
		}
	}

	return false
}

// translateToA maps a B-space position back to A-space by subtracting the
// cumulative length delta of every text change before it.
func translateToA(posB int, textChanges []textdiff.ChangedRange) int {
	delta := 0

	for _, tc := range textChanges {
		if tc.FromB > posB {
			break
		}

		delta += (tc.ToB - tc.FromB) - (tc.ToA - tc.FromA)
	}

	return posB - delta
}

// translateToB maps an A-space position forward to B-space by adding the
// cumulative length delta of every text change entirely at or before it —
// the inverse of translateToA, used to report an A-only decoration's
// position in the new document's coordinates.
func translateToB(posA int, textChanges []textdiff.ChangedRange) int {
	delta := 0

	for _, tc := range textChanges {
		if tc.ToA > posA {
			break
		}

		delta += (tc.ToB - tc.FromB) - (tc.ToA - tc.FromA)
	}

	return posA + delta
}

// addRange appends a dirty range, keeping the slice sorted is the caller's
// job (mergeRanges sorts before merging).
func addRange(ranges []ChangedRange, fromA, toA, fromB, toB int) []ChangedRange {
	return append(ranges, ChangedRange{FromA: fromA, ToA: toA, FromB: fromB, ToB: toB})
}

// mergeRanges sorts by FromA and joins any two ranges separated by less
// than MinRangeGap.
func mergeRanges(ranges []ChangedRange) []ChangedRange {
	if len(ranges) == 0 {
		return nil
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].FromA < ranges[j].FromA })

	out := []ChangedRange{ranges[0]}

	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.FromA-last.ToA < MinRangeGap {
			if r.ToA > last.ToA {
				last.ToA = r.ToA
			}

			if r.ToB > last.ToB {
				last.ToB = r.ToB
			}

			continue
		}

		out = append(out, r)
	}

	return out
}
