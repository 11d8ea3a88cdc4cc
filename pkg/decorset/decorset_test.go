package decorset_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeekg/view/pkg/changelog"
	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
)

func mark(from, to int) decoration.Decoration {
	d, err := decoration.Range(from, to, &decoration.RangeDescriptor{Class: "mark"})
	if err != nil {
		panic(err)
	}

	return d
}

func point(pos int) decoration.Decoration {
	return decoration.Point(pos, &decoration.PointDescriptor{})
}

func TestEmptyIsSingleton(t *testing.T) {
	s := decorset.Of(nil)
	assert.Same(t, decorset.Empty, s)
	assert.Equal(t, 0, s.Length())
	assert.Equal(t, 0, s.Size())
}

func TestOfRoundTripsThroughCollect(t *testing.T) {
	decos := []decoration.Decoration{mark(0, 5), mark(3, 8), point(10), mark(20, 30)}
	s := decorset.Of(decos)

	got := decorset.Collect(s)
	require.Len(t, got, len(decos))

	for i := 1; i < len(got); i++ {
		assert.False(t, decoration.Less(got[i], got[i-1]), "collect result must stay sorted")
	}
}

func TestOfBalancesLargeSets(t *testing.T) {
	const n = 5000

	decos := make([]decoration.Decoration, n)
	for i := range decos {
		decos[i] = mark(i*2, i*2+1)
	}

	s := decorset.Of(decos)

	assert.Equal(t, n, s.Size())
	assert.Less(t, s.Depth(), 4, "a 5000-decoration tree should stay shallow")

	var maxLocal int

	var walk func(*decorset.Set)

	walk = func(n *decorset.Set) {
		if l := len(n.Local()); l > maxLocal {
			maxLocal = l
		}

		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(s)

	assert.LessOrEqual(t, maxLocal, 2*decorset.BaseNodeSize)
}

func TestUpdateSharesUntouchedSubtrees(t *testing.T) {
	decos := make([]decoration.Decoration, 200)
	for i := range decos {
		decos[i] = mark(i*10, i*10+5)
	}

	s := decorset.Of(decos)

	// Adding a single decoration far past the end should not require
	// reallocating any existing child that receives none of the additions.
	updated := s.Update([]decoration.Decoration{mark(5000, 5001)}, nil, 0, s.Length())

	require.NotSame(t, s, updated)
	assert.Equal(t, s.Size()+1, updated.Size())

	for i := range s.Children() {
		if i >= len(updated.Children())-1 {
			break
		}
		// Every child is re-visited (the filter window spans the whole
		// document), but a no-op filter (nil) must return the exact same
		// child pointer for any child whose bucket was empty. The last old
		// child is excluded: rebalancing may merge that small leaf with the
		// new trailing leaf.
		assert.Same(t, s.Children()[i], updated.Children()[i])
	}
}

func TestUpdateNoOpFilterIsIdentity(t *testing.T) {
	decos := make([]decoration.Decoration, 100)
	for i := range decos {
		decos[i] = mark(i*3, i*3+1)
	}

	s := decorset.Of(decos)

	same := s.Update(nil, nil, 0, 0)
	assert.Same(t, s, same, "an update with nothing to add and a no-op filter window must return the same set")
}

func TestUpdateFilterRemovesMatching(t *testing.T) {
	decos := []decoration.Decoration{mark(0, 5), mark(10, 15), mark(20, 25)}
	s := decorset.Of(decos)

	filtered := s.UpdateAll(nil, func(from, to int, _ decoration.Descriptor) bool {
		return from != 10
	})

	got := decorset.Collect(filtered)
	require.Len(t, got, 2)

	for _, d := range got {
		assert.NotEqual(t, 10, d.From)
	}
}

func TestUpdateGrowsLengthForAdditionsPastEnd(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{mark(0, 5)})

	updated := s.UpdateAll([]decoration.Decoration{mark(100, 120)}, nil)

	assert.Equal(t, 120, updated.Length())
}

func TestMapShiftsOnlyPositionsPastTheChange(t *testing.T) {
	decos := []decoration.Decoration{mark(0, 5), mark(500, 505), mark(900, 905)}
	s := decorset.Of(decos)

	// An insertion far from every decoration should leave the tree's
	// content identical, only shifting later positions.
	changes := changelog.Single(700, 700, 3)

	mapped := s.Map(changes)

	got := decorset.Collect(mapped)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].From)
	assert.Equal(t, 500, got[1].From)
	assert.Equal(t, 903, got[2].From)
}

func TestMapDropsRangeCollapsedByDeletion(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{mark(10, 20)})

	// Deleting the decoration's entire span collapses it.
	changes := changelog.Single(5, 25, 0)

	mapped := s.Map(changes)
	assert.Equal(t, 0, mapped.Size())
}

func TestMapDropsPointDeletedThrough(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{point(15)})

	changes := changelog.Single(10, 20, 0)

	mapped := s.Map(changes)
	assert.Equal(t, 0, mapped.Size())
}

func TestMapPreservesPointOutsideDeletion(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{point(50)})

	changes := changelog.Single(10, 20, 0)

	mapped := s.Map(changes)
	require.Equal(t, 1, mapped.Size())

	got := decorset.Collect(mapped)
	assert.Equal(t, 40, got[0].From)
}

func TestUpdateThenMapRoundTrip(t *testing.T) {
	const n = 400

	decos := make([]decoration.Decoration, n)
	for i := range decos {
		decos[i] = mark(i*7, i*7+3)
	}

	s := decorset.Of(decos)
	s = s.Update([]decoration.Decoration{mark(n*7+100, n*7+110)}, nil, 0, s.Length())

	changes := changelog.Single(0, 0, 10)
	mapped := s.Map(changes)

	assert.Equal(t, s.Size(), mapped.Size())
	assert.Equal(t, s.Length()+10, mapped.Length())
}

func TestUpdateScenarios(t *testing.T) {
	t.Run("insert inside an untouched sibling leaves it shared", func(t *testing.T) {
		decos := make([]decoration.Decoration, 80)
		for i := range decos {
			decos[i] = mark(i*5, i*5+2)
		}

		s := decorset.Of(decos)
		left := s.Children()

		updated := s.UpdateAll([]decoration.Decoration{mark(1, 2)}, nil)

		if len(left) > 1 && len(updated.Children()) == len(left) {
			assert.Same(t, left[len(left)-1], updated.Children()[len(updated.Children())-1])
		}
	})

	t.Run("deleting every decoration collapses to empty", func(t *testing.T) {
		decos := []decoration.Decoration{mark(0, 5), mark(10, 15)}
		s := decorset.Of(decos)

		emptied := s.UpdateAll(nil, func(int, int, decoration.Descriptor) bool { return false })
		assert.Equal(t, 0, emptied.Size())
	})

	for i, tc := range []struct {
		name  string
		build func() *decorset.Set
		want  int
	}{
		{"straddling addition stored locally", func() *decorset.Set {
			decos := make([]decoration.Decoration, 70)
			for i := range decos {
				decos[i] = mark(i*2, i*2+1)
			}

			s := decorset.Of(decos)

			return s.UpdateAll([]decoration.Decoration{mark(0, 139)}, nil)
		}, 71},
	} {
		t.Run(fmt.Sprintf("scenario_%d_%s", i, tc.name), func(t *testing.T) {
			s := tc.build()
			assert.Equal(t, tc.want, s.Size())
		})
	}
}
