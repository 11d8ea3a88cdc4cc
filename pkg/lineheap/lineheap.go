// Package lineheap drives the presentation-layer traversal the core tree is
// built to serve: given several DecorationSets (the document's own marks
// plus whatever per-viewport decoration sources a caller layers on top), walk
// the combined, ordered stream of boundaries between from and to and report
// it to a builder. A binary min-heap keyed by (position, bias) merges the
// sources without requiring the caller to flatten and re-sort them by hand.
package lineheap

import (
	"container/heap"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/mathutil"
	"github.com/majeekg/view/pkg/widget"
)

// Builder is the collaborator buildLineElements drives. Advance reports the
// text run [lastPos, pos) together with the set of range decorations active
// across it; AdvanceCollapsed skips straight to pos without reporting a run,
// for text hidden under a collapsed range; AddWidget reports a point
// decoration's widget, or a collapsed range's replacement widget, at pos.
type Builder interface {
	Advance(pos int, active []decoration.Decoration)
	AdvanceCollapsed(pos int)
	AddWidget(pos int, w widget.Type, height float64)
}

// eventKind distinguishes a range's opening boundary from its closing one.
// Heapable in the design notes names this sum type's two shapes:
// LocalSetCursor (a pending start pulled off a source) and ActiveRange (an
// already-open range waiting to close).
type eventKind int

const (
	eventStart eventKind = iota
	eventEnd
)

type event struct {
	deco decoration.Decoration
	pos  int
	bias int
	kind eventKind
}

type eventHeap []event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].pos != h[j].pos {
		return h[i].pos < h[j].pos
	}

	return h[i].bias < h[j].bias
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(event)) } //nolint:forcetypeassert

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]

	return it
}

// BuildLineElements merges every decoration from sets that touches
// [from, to] (one ending at from or starting at to is included), in
// position order, reporting text runs and widgets to
// builder. When heightOnly is true, a widget with no known height
// (EstimatedHeight() <= -1) and a collapsed range with no replacement
// widget contribute nothing a height computation needs, so both are
// skipped entirely rather than reported.
func BuildLineElements(sets []*decorset.Set, from, to int, builder Builder, heightOnly bool) {
	h := &eventHeap{}
	heap.Init(h)

	for _, s := range sets {
		for _, d := range decorset.Collect(s) {
			if d.To < from || d.From > to {
				continue
			}

			heap.Push(h, event{pos: d.From, bias: d.StartBias(), kind: eventStart, deco: d})
		}
	}

	var active []decoration.Decoration

	pos := from

	for h.Len() > 0 {
		e := heap.Pop(h).(event) //nolint:forcetypeassert

		clamped := mathutil.Clamp(e.pos, from, to)
		if clamped > pos {
			builder.Advance(clamped, active)

			pos = clamped
		}

		switch e.kind {
		case eventStart:
			handleStart(h, builder, &active, e.deco, &pos, heightOnly)
		case eventEnd:
			active = removeDecoration(active, e.deco)
		}
	}

	if pos < to {
		builder.Advance(to, active)
	}
}

// handleStart dispatches a single start event: a point's widget, a
// collapsed range's replacement widget, or an ordinary range entering
// active tracking. heightOnly narrows what's worth reporting — a widget
// whose EstimatedHeight() is unknown (<= -1) carries no height signal, and
// a collapsed range with no replacement widget carries neither a height
// signal nor (since heightOnly callers don't walk content) a content one —
// so both are dropped rather than handed to builder.
func handleStart(
	h *eventHeap, builder Builder, active *[]decoration.Decoration, d decoration.Decoration, pos *int, heightOnly bool,
) {
	if d.IsPoint() {
		pd, ok := d.Desc.(*decoration.PointDescriptor)
		if !ok || pd.Widget == nil {
			return
		}

		if heightOnly && pd.Widget.EstimatedHeight() <= -1 {
			return
		}

		builder.AddWidget(d.From, pd.Widget, pd.Widget.EstimatedHeight())

		return
	}

	if rd, ok := d.Desc.(*decoration.RangeDescriptor); ok && rd.IsCollapsed() {
		if heightOnly && rd.CollapsedWidget == nil {
			return
		}

		builder.AdvanceCollapsed(d.To)
		*pos = d.To

		if rd.CollapsedWidget != nil && (!heightOnly || rd.CollapsedWidget.EstimatedHeight() > -1) {
			builder.AddWidget(d.From, rd.CollapsedWidget, rd.CollapsedWidget.EstimatedHeight())
		}

		return
	}

	*active = append(*active, d)
	heap.Push(h, event{pos: d.To, bias: d.EndBias(), kind: eventEnd, deco: d})
}

func removeDecoration(active []decoration.Decoration, d decoration.Decoration) []decoration.Decoration {
	for i, a := range active {
		if a == d {
			return append(active[:i], active[i+1:]...)
		}
	}

	return active
}
