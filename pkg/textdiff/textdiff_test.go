package textdiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majeekg/view/pkg/textdiff"
)

func TestComputeIdenticalTextHasNoRanges(t *testing.T) {
	ranges := textdiff.Compute("hello world", "hello world")
	assert.Empty(t, ranges)
}

func TestComputeReportsInsertedSpan(t *testing.T) {
	ranges := textdiff.Compute("hello world", "hello brave new world")
	if assert.Len(t, ranges, 1) {
		r := ranges[0]
		assert.Equal(t, "hello ", "hello brave new world"[:r.FromB])
	}
}

func TestComputeReportsDeletedSpan(t *testing.T) {
	ranges := textdiff.Compute("hello brave new world", "hello world")
	assert.NotEmpty(t, ranges)
}
