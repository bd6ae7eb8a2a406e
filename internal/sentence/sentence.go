// Package sentence turns run-on speech-to-text output into one sentence per
// line.
package sentence

import (
	"strings"
	"unicode"
)

// rules are applied in order over the whole text; later rules see the output
// of earlier ones. Transcripts already on disk were produced with exactly this
// list, so changing it makes a corpus inconsistent.
var rules = [][2]string{
	{". ", ".\n"},
	{"? ", "?\n"},
	{"! ", "!\n"},

	// Abbreviations that are not sentence ends.
	{"Dr.\n", "Dr. "},
	{"dr.\n", "dr. "},
	{"Mr.\n", "Mr. "},
	{"mr.\n", "mr. "},
	{"Mrs.\n", "Mrs. "},
	{"mrs.\n", "mrs. "},
	{"Ms.\n", "Ms. "},
	{"ms.\n", "ms. "},

	{" p.\nm", " p.m"},
	{" p.m.\n", " p.m. "},
	{" a.\nm", " a.m"},
	{" a.m.\n", " a.m. "},

	{"etc.\n,", "etc.,"},
	{".\ncom", ".com"},
	{"U.\nS.", "U.S."},
	{" St.\n", " St. "},
}

// Reformat strips leading whitespace and breaks text into lines at sentence
// ends. It is a literal find-and-replace heuristic, not a sentence detector.
func Reformat(text string) string {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	for _, r := range rules {
		text = strings.ReplaceAll(text, r[0], r[1])
	}
	return text
}
