// Package decoration defines the immutable value types the core tree
// stores: a (from, to) range or point annotated with a descriptor, plus the
// bias arithmetic that drives sort order and position mapping.
package decoration

import (
	"errors"
	"maps"

	"github.com/majeekg/view/pkg/changelog"
	"github.com/majeekg/view/pkg/widget"
)

// BiasMagnitude (B in the design notes) is large enough that a range's
// derived start/end bias always dominates a point's side value when the
// two tie on position, so ranges sort outside the points they contain.
const BiasMagnitude = 2_000_000_000

// ErrInvalidRange is returned by Range when from >= to.
var ErrInvalidRange = errors.New("decoration: invalid range, from must be < to")

// Descriptor is the rendering/behavior spec attached to a decoration.
// Exactly two concrete implementations exist: *RangeDescriptor and
// *PointDescriptor.
type Descriptor interface {
	// Eq reports whether other describes the same configuration as this
	// descriptor, independent of identity. Descriptors of different
	// concrete types are never equal.
	Eq(other Descriptor) bool
}

// RangeDescriptor is the descriptor variant attached to range decorations
// (from < to): styling, a collapsed flag/widget, and inclusivity at each
// end, from which the mapping biases and affectsSpans are derived.
type RangeDescriptor struct {
	Attributes      map[string]string
	LineAttributes  map[string]string
	Class           string
	TagName         string
	CollapsedWidget widget.Type
	InclusiveStart  bool
	InclusiveEnd    bool
	Collapsed       bool
}

var _ Descriptor = (*RangeDescriptor)(nil)

// StartBias is -B when the range is inclusive at its start (a position
// right at `from` stays inside an insertion there), +B otherwise.
func (d *RangeDescriptor) StartBias() int {
	if d.InclusiveStart {
		return -BiasMagnitude
	}

	return BiasMagnitude
}

// EndBias is +B when the range is inclusive at its end, -B otherwise.
func (d *RangeDescriptor) EndBias() int {
	if d.InclusiveEnd {
		return BiasMagnitude
	}

	return -BiasMagnitude
}

// IsCollapsed reports whether this range hides its covered text, whether or
// not it carries a replacement widget.
func (d *RangeDescriptor) IsCollapsed() bool {
	return d.Collapsed || d.CollapsedWidget != nil
}

// AffectsSpans reports whether this decoration changes presentation of the
// text it covers (as opposed to e.g. a pure line-attribute decoration that
// only the line builder's active list needs to see).
func (d *RangeDescriptor) AffectsSpans() bool {
	return d.Attributes != nil || d.TagName != "" || d.Class != "" || d.IsCollapsed()
}

// Eq implements Descriptor.
func (d *RangeDescriptor) Eq(other Descriptor) bool {
	o, ok := other.(*RangeDescriptor)
	if !ok {
		return false
	}

	if d == o {
		return true
	}

	if d.TagName != o.TagName || d.Class != o.Class || d.Collapsed != o.Collapsed {
		return false
	}

	if !widget.Compare(d.CollapsedWidget, o.CollapsedWidget) {
		return false
	}

	return maps.Equal(d.Attributes, o.Attributes)
}

// PointDescriptor is the descriptor variant attached to point decorations
// (from == to): an optional widget, a side bias, and line attributes.
type PointDescriptor struct {
	Widget         widget.Type
	LineAttributes map[string]string
	Side           int
}

var _ Descriptor = (*PointDescriptor)(nil)

// Bias is the point's side, used directly as its mapping/sort bias.
func (d *PointDescriptor) Bias() int {
	return d.Side
}

// Eq implements Descriptor.
func (d *PointDescriptor) Eq(other Descriptor) bool {
	o, ok := other.(*PointDescriptor)
	if !ok {
		return false
	}

	if d == o {
		return true
	}

	if d.Side != o.Side {
		return false
	}

	return widget.Compare(d.Widget, o.Widget)
}

// Decoration is the immutable (from, to, descriptor) triple. From <= To
// always; From == To marks a point decoration.
type Decoration struct {
	Desc Descriptor
	From int
	To   int
}

// Range constructs a range decoration. It fails with ErrInvalidRange unless
// from < to.
func Range(from, to int, desc *RangeDescriptor) (Decoration, error) {
	if from >= to {
		return Decoration{}, ErrInvalidRange
	}

	return Decoration{From: from, To: to, Desc: desc}, nil
}

// Point constructs a point decoration. It always succeeds.
func Point(pos int, desc *PointDescriptor) Decoration {
	return Decoration{From: pos, To: pos, Desc: desc}
}

// IsPoint reports whether this decoration is a zero-width point.
func (d Decoration) IsPoint() bool {
	return d.From == d.To
}

// StartBias is the bias used when this decoration is ordered or heaped by
// its start position: the range descriptor's derived start bias, or the
// point descriptor's side.
func (d Decoration) StartBias() int {
	switch desc := d.Desc.(type) {
	case *RangeDescriptor:
		return desc.StartBias()
	case *PointDescriptor:
		return desc.Bias()
	default:
		return 0
	}
}

// EndBias is the bias used when a range decoration is re-heaped as an
// active range keyed by its end position.
func (d Decoration) EndBias() int {
	switch desc := d.Desc.(type) {
	case *RangeDescriptor:
		return desc.EndBias()
	case *PointDescriptor:
		return desc.Bias()
	default:
		return 0
	}
}

// Less orders decorations by (from, startBias) ascending, the comparator
// DecorationSet.local arrays are sorted by.
func Less(a, b Decoration) bool {
	if a.From != b.From {
		return a.From < b.From
	}

	return a.StartBias() < b.StartBias()
}

// Map translates a decoration through changes, a PositionMapper-like
// collaborator (see changelog.Mapper). oldOffset/newOffset translate
// between this decoration's current node-relative coordinates and the
// document-absolute coordinates changes operates on. ok is false when the
// decoration did not survive: a range collapsed to empty, or a point fell
// strictly inside a deleted region.
func (d Decoration) Map(changes changelog.Mapper, oldOffset, newOffset int) (mapped Decoration, ok bool) {
	switch desc := d.Desc.(type) {
	case *RangeDescriptor:
		from := changes.MapPos(d.From+oldOffset, desc.StartBias())
		to := changes.MapPos(d.To+oldOffset, desc.EndBias())

		if from >= to {
			return Decoration{}, false
		}

		return Decoration{From: from - newOffset, To: to - newOffset, Desc: desc}, true
	case *PointDescriptor:
		pos, tracked := changes.TrackPos(d.From+oldOffset, desc.Bias())
		if !tracked {
			return Decoration{}, false
		}

		return Decoration{From: pos - newOffset, To: pos - newOffset, Desc: desc}, true
	default:
		panic("decoration: unknown descriptor type")
	}
}
