package widget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majeekg/view/pkg/widget"
)

func TestCompareNilHandling(t *testing.T) {
	assert.True(t, widget.Compare(nil, nil))
	assert.False(t, widget.Compare(widget.FixedHeight{Label: "a"}, nil))
	assert.False(t, widget.Compare(nil, widget.FixedHeight{Label: "a"}))
}

func TestCompareDifferentConcreteTypes(t *testing.T) {
	a := widget.FixedHeight{Label: "img", Height: 40}
	b := widget.LineAttributeOnly{Name: "img"}

	assert.False(t, widget.Compare(a, b))
}

func TestCompareSameTypeDelegatesToEq(t *testing.T) {
	a := widget.FixedHeight{Label: "img", Height: 40}
	b := widget.FixedHeight{Label: "img", Height: 40}
	c := widget.FixedHeight{Label: "img", Height: 80}

	assert.True(t, widget.Compare(a, b))
	assert.False(t, widget.Compare(a, c))
}

func TestLineAttributeOnlyHeightUnknown(t *testing.T) {
	w := widget.LineAttributeOnly{Name: "fold-hint"}
	assert.InDelta(t, -1, w.EstimatedHeight(), 0)
}
