// Package textdiff is the reference implementation of the "text-diff
// producer" setcompare treats as an external collaborator: given the old and
// new text of a document, it reports the spans that actually changed, so
// DecorationSetComparison doesn't have to guess at content differences it
// has no other way to see (a decoration can be byte-identical across a
// revision while the text underneath it was rewritten).
package textdiff

import "github.com/sergi/go-diff/diffmatchpatch"

// ChangedRange is one changed span, in both the old document's coordinates
// ([FromA, ToA)) and the new document's ([FromB, ToB)).
type ChangedRange struct {
	FromA int
	ToA   int
	FromB int
	ToB   int
}

// Compute diffs oldText against newText and returns the changed spans, each
// expressed in UTF-16-agnostic rune offsets (matching the position space the
// rest of the module uses). Runs of pure equality are skipped; adjacent
// insert/delete pairs produced by diffmatchpatch's default cleanup collapse
// into a single replacement range.
func Compute(oldText, newText string) []ChangedRange {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var ranges []ChangedRange

	posA, posB := 0, 0

	var pending *ChangedRange

	flush := func() {
		if pending != nil {
			ranges = append(ranges, *pending)
			pending = nil
		}
	}

	for _, d := range diffs {
		n := len([]rune(d.Text))

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()

			posA += n
			posB += n
		case diffmatchpatch.DiffDelete:
			if pending == nil {
				pending = &ChangedRange{FromA: posA, FromB: posB, ToA: posA, ToB: posB}
			}

			pending.ToA = posA + n
			posA += n
		case diffmatchpatch.DiffInsert:
			if pending == nil {
				pending = &ChangedRange{FromA: posA, FromB: posB, ToA: posA, ToB: posB}
			}

			pending.ToB = posB + n
			posB += n
		}
	}

	flush()

	return ranges
}
