package lineheap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/lineheap"
	"github.com/majeekg/view/pkg/widget"
)

type recordingBuilder struct {
	advances []int
	widgets  []int
}

func (b *recordingBuilder) Advance(pos int, _ []decoration.Decoration) { b.advances = append(b.advances, pos) }
func (b *recordingBuilder) AdvanceCollapsed(pos int)                   { b.advances = append(b.advances, pos) }
func (b *recordingBuilder) AddWidget(pos int, _ widget.Type, _ float64) {
	b.widgets = append(b.widgets, pos)
}

type testWidget struct{ height float64 }

func (testWidget) ToDOM() any                    { return nil }
func (w testWidget) Eq(o widget.Type) bool       { ow, ok := o.(testWidget); return ok && ow == w }
func (w testWidget) EstimatedHeight() float64    { return w.height }

func mark(from, to int) decoration.Decoration {
	d, _ := decoration.Range(from, to, &decoration.RangeDescriptor{Class: "x"})
	return d
}

func TestBuildLineElementsMergesSourcesInOrder(t *testing.T) {
	a := decorset.Of([]decoration.Decoration{mark(0, 5), mark(20, 25)})
	b := decorset.Of([]decoration.Decoration{mark(10, 15)})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{a, b}, 0, 30, rb, false)

	require := assert.New(t)
	require.Equal([]int{5, 10, 15, 20, 25, 30}, rb.advances)
}

func TestBuildLineElementsReportsWidgets(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{decoration.Point(5, &decoration.PointDescriptor{Widget: testWidget{height: 12}})})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, false)

	assert.Equal(t, []int{5}, rb.widgets)
}

func TestBuildLineElementsSkipsCollapsedSpan(t *testing.T) {
	collapsedDeco, _ := decoration.Range(2, 8, &decoration.RangeDescriptor{Collapsed: true})
	s := decorset.Of([]decoration.Decoration{collapsedDeco})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, false)

	assert.Contains(t, rb.advances, 8)
}

func TestBuildLineElementsHeightOnlyDropsWidgetWithUnknownHeight(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{
		decoration.Point(5, &decoration.PointDescriptor{Widget: testWidget{height: -1}}),
	})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, true)

	assert.Empty(t, rb.widgets)
}

func TestBuildLineElementsHeightOnlyKeepsWidgetWithKnownHeight(t *testing.T) {
	s := decorset.Of([]decoration.Decoration{
		decoration.Point(5, &decoration.PointDescriptor{Widget: testWidget{height: 12}}),
	})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, true)

	assert.Equal(t, []int{5}, rb.widgets)
}

func TestBuildLineElementsHeightOnlyDropsWidgetlessCollapsedRange(t *testing.T) {
	collapsedDeco, _ := decoration.Range(2, 8, &decoration.RangeDescriptor{Collapsed: true})
	s := decorset.Of([]decoration.Decoration{collapsedDeco})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, true)

	assert.NotContains(t, rb.advances, 8, "a collapsed range with no replacement widget carries no height signal in height-only mode")
}

func TestBuildLineElementsHeightOnlyKeepsCollapsedRangeWithWidget(t *testing.T) {
	collapsedDesc := &decoration.RangeDescriptor{Collapsed: true, CollapsedWidget: testWidget{height: 12}}
	collapsedDeco, _ := decoration.Range(2, 8, collapsedDesc)
	s := decorset.Of([]decoration.Decoration{collapsedDeco})

	rb := &recordingBuilder{}
	lineheap.BuildLineElements([]*decorset.Set{s}, 0, 10, rb, true)

	assert.Contains(t, rb.advances, 8)
	assert.Equal(t, []int{2}, rb.widgets)
}
