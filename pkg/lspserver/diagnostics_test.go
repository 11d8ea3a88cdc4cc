package lspserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeekg/view/pkg/decoration"
)

func TestScanDiagnosticsFlagsLongLines(t *testing.T) {
	text := strings.Repeat("x", maxLineLength+1) + "\nshort\n"

	decos := scanDiagnostics(text)
	require.NotEmpty(t, decos)

	desc, ok := decos[0].Desc.(*decoration.RangeDescriptor)
	require.True(t, ok)
	assert.Equal(t, classLongLine, desc.Class)
	assert.Equal(t, 0, decos[0].From)
	assert.Equal(t, maxLineLength+1, decos[0].To)
}

func TestScanDiagnosticsFlagsUnbalancedBrackets(t *testing.T) {
	text := "foo(bar[baz"

	decos := scanDiagnostics(text)
	require.Len(t, decos, 2)

	positions := []int{decos[0].From, decos[1].From}
	assert.Contains(t, positions, strings.Index(text, "("))
	assert.Contains(t, positions, strings.Index(text, "["))

	for _, d := range decos {
		desc, ok := d.Desc.(*decoration.PointDescriptor)
		require.True(t, ok)
		assert.Equal(t, classUnbalancedBracket, desc.LineAttributes["diagnostic"])
	}
}

func TestScanDiagnosticsBalancedTextIsClean(t *testing.T) {
	decos := scanDiagnostics("foo(bar[baz])")
	assert.Empty(t, decos)
}

func TestTouchedLineSpanExpandsToLineBoundaries(t *testing.T) {
	text := "line one\nline two\nline three\n"
	from := strings.Index(text, "two")

	start, end := touchedLineSpan(text, from, from+len("two"))

	assert.Equal(t, strings.Index(text, "line two"), start)
	assert.Equal(t, strings.Index(text, "line two")+len("line two"), end)
}

func TestScanRegionOnlyFlagsLongLinesOverlappingWindow(t *testing.T) {
	longLine := strings.Repeat("y", maxLineLength+1)
	text := longLine + "\n" + longLine + "\n"

	secondLineStart := len(longLine) + 1

	decos := scanRegion(text, secondLineStart, len(text))

	for _, d := range decos {
		if desc, ok := d.Desc.(*decoration.RangeDescriptor); ok && desc.Class == classLongLine {
			assert.GreaterOrEqual(t, d.From, secondLineStart)
		}
	}
}
