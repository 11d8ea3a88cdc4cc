package lspserver

import (
	"strings"

	"github.com/majeekg/view/pkg/decoration"
)

// maxLineLength is the line-length threshold past which a line is flagged
// with a "long line" diagnostic. Arbitrary but fixed, matching the scale a
// real style-linter would use.
const maxLineLength = 120

const (
	classLongLine          = "diagnostic.long-line"
	classUnbalancedBracket = "diagnostic.unbalanced-bracket"
)

var bracketPairs = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// scanDiagnostics builds the full diagnostic set for a freshly opened
// document: one range decoration per over-long line, plus one point
// decoration per bracket left unmatched by end of text.
func scanDiagnostics(text string) []decoration.Decoration {
	return scanRegion(text, 0, len(text))
}

// scanRegion re-scans only the lines overlapping [from, to), the unit of
// work Set.Update's filter window is keyed to on an incremental edit. Long
// lines are detected per-line (local to the region); unbalanced brackets
// require the whole text's nesting state, so that pass always walks the
// full document but only emits points whose position falls in the region —
// position mapping (Set.Map) is what keeps the rest of the document's
// existing bracket diagnostics from needing to be touched at all.
func scanRegion(text string, from, to int) []decoration.Decoration {
	var out []decoration.Decoration

	lineStart := 0

	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')

		var nextLineStart int

		var contentEnd int

		if lineEnd < 0 {
			contentEnd = len(text)
			nextLineStart = len(text) + 1
		} else {
			contentEnd = lineStart + lineEnd
			nextLineStart = contentEnd + 1
		}

		if contentEnd > lineStart && lineStart < to && contentEnd > from && contentEnd-lineStart > maxLineLength {
			desc := &decoration.RangeDescriptor{
				Class:      classLongLine,
				Attributes: map[string]string{"message": "line exceeds recommended length"},
			}

			if d, err := decoration.Range(lineStart, contentEnd, desc); err == nil {
				out = append(out, d)
			}
		}

		lineStart = nextLineStart

		if lineEnd < 0 {
			break
		}
	}

	out = append(out, unbalancedBracketDiagnostics(text, from, to)...)

	return out
}

// unbalancedBracketDiagnostics walks the whole text tracking open-bracket
// nesting and emits a point decoration at every bracket still unmatched at
// end of text, restricted to those falling within [from, to).
func unbalancedBracketDiagnostics(text string, from, to int) []decoration.Decoration {
	var stack []int

	var out []decoration.Decoration

	for i, r := range text {
		switch {
		case bracketPairs[r] != 0:
			stack = append(stack, i)
		case r == ')' || r == ']' || r == '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	for _, pos := range stack {
		if pos < from || pos >= to {
			continue
		}

		desc := &decoration.PointDescriptor{LineAttributes: map[string]string{"diagnostic": classUnbalancedBracket}}
		out = append(out, decoration.Point(pos, desc))
	}

	return out
}

// touchedLineSpan returns the byte offsets of the first and last full lines
// overlapping [from, to) in text, so an incremental re-scan only needs to
// touch the handful of lines an edit could have affected.
func touchedLineSpan(text string, from, to int) (int, int) {
	start := strings.LastIndexByte(text[:clampPos(from, len(text))], '\n') + 1

	end := to
	if idx := strings.IndexByte(text[clampPos(to, len(text)):], '\n'); idx >= 0 {
		end = to + idx
	} else {
		end = len(text)
	}

	return start, end
}

func clampPos(pos, maxLen int) int {
	if pos < 0 {
		return 0
	}

	if pos > maxLen {
		return maxLen
	}

	return pos
}
