package ui

import "strings"

// font is a block-letter alphabet. Every glyph row of a letter has the
// same width.
type font struct {
	height  int
	gap     int
	letters map[rune][]string
}

var fontLarge = font{
	height: 5,
	gap:    1,
	letters: map[rune][]string{
		'T': {
			"██████",
			"  ██  ",
			"  ██  ",
			"  ██  ",
			"  ██  ",
		},
		'E': {
			"██████",
			"██    ",
			"█████ ",
			"██    ",
			"██████",
		},
		'A': {
			" ████ ",
			"██  ██",
			"██████",
			"██  ██",
			"██  ██",
		},
		'M': {
			"██   ██",
			"███ ███",
			"██ █ ██",
			"██   ██",
			"██   ██",
		},
	},
}

var fontMedium = font{
	height: 3,
	gap:    1,
	letters: map[rune][]string{
		'T': {"▀█▀", " █ ", " ▀ "},
		'E': {"█▀▀", "█▀ ", "▀▀▀"},
		'A': {"▄▀▄", "█▀█", "▀ ▀"},
		'M': {"█▄ ▄█", "█ ▀ █", "▀   ▀"},
	},
}

func wordWidth(word string, f font) int {
	w := 0
	for i, ch := range []rune(word) {
		if i > 0 {
			w += f.gap
		}
		if rows := f.letters[ch]; len(rows) > 0 {
			w += len([]rune(rows[0]))
		}
	}
	return w
}

func render(word string, f font) string {
	rows := make([]strings.Builder, f.height)
	for i, ch := range []rune(word) {
		glyph := f.letters[ch]
		for r := range rows {
			if i > 0 {
				rows[r].WriteString(strings.Repeat(" ", f.gap))
			}
			if r < len(glyph) {
				rows[r].WriteString(glyph[r])
			}
		}
	}
	lines := make([]string, f.height)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// renderLogo picks the largest font that fits maxWidth, falling back to
// plain text.
func renderLogo(maxWidth int) string {
	const word = "TEAMMATE"
	for _, f := range []font{fontLarge, fontMedium} {
		if wordWidth(word, f)+1 <= maxWidth {
			return " " + strings.ReplaceAll(render(word, f), "\n", "\n ")
		}
	}
	return " " + word
}
