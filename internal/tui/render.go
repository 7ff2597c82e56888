// Package tui provides the Bubble Tea session interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// missedSpace marks a space that was typed over with something else;
// a plain red space would be invisible.
const missedSpace = '•'

// styledRune is one display cell of the target sentence: the styled
// string to print, its display width and whether the underlying
// target rune is a space (wrap points).
type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// renderTarget renders the target sentence against the typed input,
// word-wrapped to the given width. The cursor sits on the first
// untyped rune.
func renderTarget(target, input []rune, width int) string {
	cursor := -1
	if len(input) < len(target) {
		cursor = len(input)
	}
	return wrapStyledRunes(buildStyledRunes(target, input, cursor), width)
}

// buildStyledRunes styles each target rune by its typing state:
// correct, incorrect, pending or part of the word under the cursor.
// Typed runes keep showing the target text, so a mistype colors the
// expected character red rather than echoing the wrong one.
func buildStyledRunes(target, input []rune, cursor int) []styledRune {
	current := wordUnderCursor(target, cursor)

	out := make([]styledRune, 0, len(target))
	for i, want := range target {
		displayed := want
		style := pendingStyle
		switch {
		case i < len(input):
			if input[i] == want {
				style = correctStyle
			} else {
				style = incorrectStyle
				if want == ' ' {
					displayed = missedSpace
				}
			}
		case want != ' ' && current.contains(i):
			style = currentWordStyle
		}
		if i == cursor && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: want == ' ',
		})
	}
	return out
}

// wordSpan is a half-open rune range [start, end) of one word.
type wordSpan struct {
	start int
	end   int
}

func (w wordSpan) contains(i int) bool { return i >= w.start && i < w.end }

// wordUnderCursor returns the span of the word the cursor is in, or
// the next word when the cursor sits on a space. An out-of-range
// cursor yields an empty span that contains nothing.
func wordUnderCursor(target []rune, cursor int) wordSpan {
	if cursor < 0 || cursor >= len(target) {
		return wordSpan{}
	}
	start := cursor
	for start < len(target) && target[start] == ' ' {
		start++
	}
	if start == len(target) {
		return wordSpan{}
	}
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	end := start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return wordSpan{start: start, end: end}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the styled runes into lines no wider than
// width display cells, preferring to break at spaces. A word wider
// than the whole line is broken mid-word.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpace]))
				out.WriteRune('\n')
				rest := append([]styledRune{}, line[lastSpace+1:]...)
				line = rest
				lineWidth = 0
				lastSpace = -1
				for j, it := range line {
					lineWidth += it.width
					if it.isSpace {
						lastSpace = j
					}
				}
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}
