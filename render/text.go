package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks text into lines no wider than width terminal cells
// Explicit newlines are kept. Latin words move whole to the next line when they fit;
// wide runes such as CJK may break anywhere. Leading spaces of a wrapped line are dropped.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		out   []string
		cur   []rune
		curW  int
		word  []rune
		wordW int
	)

	flushWord := func() {
		if len(word) == 0 {
			return
		}
		if curW+wordW > width && curW > 0 {
			out = append(out, strings.TrimRight(string(cur), " "))
			cur, curW = nil, 0
		}
		// A word longer than the line breaks by cells
		for wordW > width {
			cut, w := 0, 0
			for cut < len(word) && w+runewidth.RuneWidth(word[cut]) <= width {
				w += runewidth.RuneWidth(word[cut])
				cut++
			}
			out = append(out, string(word[:cut]))
			word, wordW = word[cut:], wordW-w
		}
		cur = append(cur, word...)
		curW += wordW
		word, wordW = nil, 0
	}

	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		switch {
		case r == ' ':
			flushWord()
			if curW > 0 && curW < width {
				cur = append(cur, r)
				curW++
			}
		case rw > 1 || unicode.Is(unicode.Han, r):
			flushWord()
			if curW+rw > width {
				out = append(out, strings.TrimRight(string(cur), " "))
				cur, curW = nil, 0
			}
			cur = append(cur, r)
			curW += rw
		default:
			word = append(word, r)
			wordW += rw
		}
	}
	flushWord()
	if len(cur) > 0 {
		out = append(out, strings.TrimRight(string(cur), " "))
	}
	return out
}

// Width returns the display width of s in cells
func Width(s string) int {
	return runewidth.StringWidth(s)
}
