// Package changelog is the reference implementation of the "change log" that
// the decoration core treats as an external collaborator (see Mapper).
// It models the primitive a real editor's transaction log exposes: a sequence
// of (from, to, insertedLength) edits applied left-to-right against
// successive document revisions, plus position mapping with an associativity
// bias at insertion boundaries.
//
// The decoration core never constructs a ChangeSet itself; it only calls
// Mapper.MapPos, Mapper.TrackPos and Mapper.TouchesRange. ChangeSet is
// provided so tests and the
// demo CLI/LSP server have something concrete to drive the core with.
package changelog

// Change describes a single edit: the old-document range [From, To) is
// replaced by InsertedLength characters of new text.
type Change struct {
	From           int
	To             int
	InsertedLength int
}

// deleted returns the length of text removed by the change.
func (c Change) deleted() int {
	return c.To - c.From
}

// delta is the net length change introduced by this edit.
func (c Change) delta() int {
	return c.InsertedLength - c.deleted()
}

// mapPos maps a single position through this change. assoc < 0 makes the
// position stick to the text before an insertion; assoc > 0 makes it stick
// to the text after. Positions strictly inside the deleted range collapse to
// one of the change's boundaries according to assoc.
func (c Change) mapPos(pos, assoc int) int {
	switch {
	case pos < c.From:
		return pos
	case pos > c.To:
		return pos + c.delta()
	case pos == c.From:
		if assoc < 0 {
			return c.From
		}

		return c.From + c.InsertedLength
	case pos == c.To:
		if assoc > 0 {
			return c.From + c.InsertedLength
		}

		return c.From
	default: // strictly inside the deleted range
		if assoc < 0 {
			return c.From
		}

		return c.From + c.InsertedLength
	}
}

// touches reports whether this change overlaps the old-document range
// [from, to], using the closed-interval test the core's map algorithm
// relies on: change.To >= from && change.From <= to.
func (c Change) touches(from, to int) bool {
	return c.To >= from && c.From <= to
}

// ChangeSet is an ordered sequence of Change, each expressed in the
// coordinate space produced by the previous one — exactly the shape a
// transaction log accumulates as edits are appended.
type ChangeSet struct {
	Changes []Change
}

// Mapper is the interface the decoration core consumes (PositionMapper in
// the design). A ChangeSet satisfies it directly.
type Mapper interface {
	// MapPos maps pos through every change in order with the given bias.
	MapPos(pos, assoc int) int
	// TrackPos is like MapPos but reports ok=false if pos ever falls
	// strictly inside a deleted region of some change (change.From < pos
	// && change.To > pos), the "track" mode point decorations need: a point
	// that lands inside a deletion no longer has a meaningful position.
	TrackPos(pos, assoc int) (mapped int, ok bool)
	// TouchesRange reports whether any change intersects [from, to], letting
	// a caller skip remapping a subtree whose span no edit reached.
	TouchesRange(from, to int) bool
}

var _ Mapper = ChangeSet{}

// MapPos maps pos sequentially through the change list.
func (cs ChangeSet) MapPos(pos, assoc int) int {
	for _, c := range cs.Changes {
		pos = c.mapPos(pos, assoc)
	}

	return pos
}

// TrackPos maps pos sequentially, failing if any change deletes straight
// through it.
func (cs ChangeSet) TrackPos(pos, assoc int) (int, bool) {
	for _, c := range cs.Changes {
		if c.From < pos && c.To > pos {
			return 0, false
		}

		pos = c.mapPos(pos, assoc)
	}

	return pos, true
}

// TouchesRange reports whether any change in the set intersects the
// old-document range [from, to], adjusting the window by each
// non-intersecting change's delta as it walks forward — the bookkeeping
// decorset's Set.Map uses to decide whether a subtree can be shared
// unmapped.
func (cs ChangeSet) TouchesRange(from, to int) bool {
	for _, c := range cs.Changes {
		if c.touches(from, to) {
			return true
		}

		if c.To < from {
			d := c.delta()
			from += d
			to += d
		}
	}

	return false
}

// Len returns the number of edits in the set.
func (cs ChangeSet) Len() int {
	return len(cs.Changes)
}

// Single builds a ChangeSet from exactly one edit, a convenience used
// throughout the tests.
func Single(from, to, insertedLength int) ChangeSet {
	return ChangeSet{Changes: []Change{{From: from, To: to, InsertedLength: insertedLength}}}
}
