package setcompare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/setcompare"
	"github.com/majeekg/view/pkg/textdiff"
)

func mark(from, to int) decoration.Decoration {
	d, _ := decoration.Range(from, to, &decoration.RangeDescriptor{Class: "x"})
	return d
}

func TestCompareIdenticalSetsIsEmpty(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{mark(0, 5)})

	result := setcompare.Compare(s, s, nil)
	assert.Empty(t, result.Content)
	assert.Empty(t, result.Height)
}

func TestCompareDetectsAddedDecoration(t *testing.T) {
	a := decorset.Of([]decoration.Decoration{mark(0, 5)})
	b := a.UpdateAll([]decoration.Decoration{mark(10, 15)}, nil)

	result := setcompare.Compare(a, b, nil)
	assert.NotEmpty(t, result.Content)
}

func TestCompareTextChangeAloneProducesNoContent(t *testing.T) {
	// A bare text edit with no decoration difference on either side of it
	// isn't reported by changedRanges: the edited span itself is the
	// caller's concern (it already knows the text changed and redraws it
	// regardless), so the comparison only runs over the gaps between
	// changes — see spec.md §8 scenario 6.
	a := decorset.Of([]decoration.Decoration{mark(0, 5)})
	b := a

	changes := textdiff.Compute("hello world", "hello brave world")

	result := setcompare.Compare(a, b, changes)
	assert.Empty(t, result.Content)
}

func TestCompareGapsAroundTextChangeReportRemovedDecoration(t *testing.T) {
	// spec.md §8 scenario 6: a range spanning a text change is removed
	// entirely; changedRanges reports the two gaps flanking the change in
	// new-document coordinates, not the changed span itself.
	removed, _ := decoration.Range(0, 20, &decoration.RangeDescriptor{Class: "x"})
	a := decorset.Of([]decoration.Decoration{removed})
	b := a.UpdateAll(nil, func(int, int, decoration.Descriptor) bool { return false })

	changes := []textdiff.ChangedRange{{FromA: 5, ToA: 15, FromB: 5, ToB: 25}}

	result := setcompare.Compare(a, b, changes)
	require.Len(t, result.Content, 2)
	assert.Equal(t, setcompare.ChangedRange{FromA: 0, ToA: 5, FromB: 0, ToB: 5}, result.Content[0])
	assert.Equal(t, setcompare.ChangedRange{FromA: 15, ToA: 20, FromB: 25, ToB: 30}, result.Content[1])
}

func TestCompareTreatsFreshEqEqualDescriptorAsUnchanged(t *testing.T) {
	// Two distinct *RangeDescriptor values with identical fields: never
	// identity-equal, but Eq-equal, the "known quirk" from spec.md §9.
	da, _ := decoration.Range(0, 5, &decoration.RangeDescriptor{Class: "x"})
	db, _ := decoration.Range(0, 5, &decoration.RangeDescriptor{Class: "x"})

	a := decorset.Of([]decoration.Decoration{da})
	b := decorset.Of([]decoration.Decoration{db})

	require.NotSame(t, da.Desc, db.Desc)

	result := setcompare.Compare(a, b, nil)
	assert.Empty(t, result.Content)
	assert.Empty(t, result.Height)
}

func TestCompareSuppressesChangesInsideJointlyCollapsedRange(t *testing.T) {
	collapsedDesc := &decoration.RangeDescriptor{Collapsed: true}
	collapsedDeco, _ := decoration.Range(3, 50, collapsedDesc)

	inner, _ := decoration.Range(10, 20, &decoration.RangeDescriptor{Class: "hidden"})

	a := decorset.Of([]decoration.Decoration{collapsedDeco})
	// Same collapsed range (by pointer) persists into b; a new decoration is
	// added entirely inside its span.
	collapsedDecoB := decoration.Decoration{From: 3, To: 50, Desc: collapsedDesc}
	b := decorset.Of([]decoration.Decoration{collapsedDecoB, inner})

	result := setcompare.Compare(a, b, nil)
	assert.Empty(t, result.Content, "addition nested in an unchanged collapsed range should not be reported")
}

func TestCompareClipsAdditionStraddlingCollapsedBoundary(t *testing.T) {
	collapsedDesc := &decoration.RangeDescriptor{Collapsed: true}
	collapsedDeco, _ := decoration.Range(3, 50, collapsedDesc)
	collapsedDecoB := decoration.Decoration{From: 3, To: 50, Desc: collapsedDesc}

	straddling, _ := decoration.Range(40, 80, &decoration.RangeDescriptor{Collapsed: true})

	a := decorset.Of([]decoration.Decoration{collapsedDeco})
	b := decorset.Of([]decoration.Decoration{collapsedDecoB, straddling})

	result := setcompare.Compare(a, b, nil)
	require.Len(t, result.Content, 1)
	assert.Equal(t, setcompare.ChangedRange{FromA: 50, ToA: 80, FromB: 50, ToB: 80}, result.Content[0])
}
