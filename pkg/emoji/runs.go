package emoji

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/matzehuels/codeshot/pkg/highlight"
)

// Run is an emoji grapheme cluster within a string. Start and End are byte
// offsets.
type Run struct {
	Key        string
	Start, End int
}

const (
	vs16   = 0xFE0F // emoji presentation selector
	zwj    = 0x200D
	keycap = 0x20E3
)

// pictographic are code point ranges rendered as emoji by default. They
// cover the Extended_Pictographic blocks in common use; symbols outside
// them only count as emoji when followed by U+FE0F.
var pictographic = [][2]rune{
	{0x1F000, 0x1FAFF}, // mahjong through symbols & pictographs ext-A
	{0x2600, 0x27BF},   // misc symbols, dingbats
	{0x2300, 0x23FF},   // misc technical (⌚ ⏰)
	{0x2B05, 0x2B55},   // arrows, ⭐ ⭕
	{0x3030, 0x3030},
	{0x303D, 0x303D},
	{0x3297, 0x3299},
}

func isPictographic(r rune) bool {
	for _, rg := range pictographic {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }

// IsEmoji reports whether a grapheme cluster should be drawn as an emoji
// glyph.
func IsEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	first := []rune(cluster)[0]
	if isRegionalIndicator(first) {
		return len([]rune(cluster)) >= 2
	}
	if strings.ContainsRune(cluster, vs16) || strings.ContainsRune(cluster, keycap) {
		return true
	}
	// Dingbats and misc symbols include text-style characters; only the
	// supplementary planes are emoji without a selector.
	if first >= 0x1F000 {
		return isPictographic(first)
	}
	return isPictographic(first) && emojiPresentation(first)
}

// emojiPresentation lists BMP pictographs whose default presentation is
// emoji.
func emojiPresentation(r rune) bool {
	switch {
	case r >= 0x2648 && r <= 0x2653, // zodiac
		r == 0x231A, r == 0x231B, r == 0x23E9, r == 0x23EA, r == 0x23EB, r == 0x23EC,
		r == 0x23F0, r == 0x23F3, r == 0x25FD, r == 0x25FE,
		r == 0x2614, r == 0x2615, r == 0x267F, r == 0x2693, r == 0x26A1,
		r == 0x26AA, r == 0x26AB, r == 0x26BD, r == 0x26BE, r == 0x26C4, r == 0x26C5,
		r == 0x26CE, r == 0x26D4, r == 0x26EA, r == 0x26F2, r == 0x26F3, r == 0x26F5,
		r == 0x26FA, r == 0x26FD, r == 0x2705, r == 0x270A, r == 0x270B, r == 0x2728,
		r == 0x274C, r == 0x274E, r >= 0x2753 && r <= 0x2755, r == 0x2757,
		r >= 0x2795 && r <= 0x2797, r == 0x27B0, r == 0x27BF,
		r == 0x2B1B, r == 0x2B1C, r == 0x2B50, r == 0x2B55:
		return true
	}
	return false
}

// Key returns the glyph key of an emoji cluster.
func Key(cluster string) string {
	keepVS := strings.ContainsRune(cluster, zwj)
	parts := make([]string, 0, 4)
	for _, r := range cluster {
		if r == vs16 && !keepVS {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}

// FindRuns returns the emoji clusters in text, in order.
func FindRuns(text string) []Run {
	var runs []Run
	state := -1
	pos := 0
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if IsEmoji(cluster) {
			runs = append(runs, Run{Key: Key(cluster), Start: pos, End: pos + len(cluster)})
		}
		pos += len(cluster)
	}
	return runs
}

// Contains reports whether text has at least one emoji.
func Contains(text string) bool {
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if IsEmoji(cluster) {
			return true
		}
	}
	return false
}

// SplitLine separates every emoji cluster of a highlighted line into its
// own token. Emoji tokens keep the class of the token they start in and
// record whether the next cluster is also an emoji. Text is preserved
// exactly.
func SplitLine(line highlight.Line) highlight.Line {
	text := line.Text()
	runs := FindRuns(text)
	if len(runs) == 0 {
		return line
	}

	// Token start offsets, for mapping byte ranges back to classes.
	starts := make([]int, len(line)+1)
	for i, tok := range line {
		starts[i+1] = starts[i] + len(tok.Text)
	}

	out := make(highlight.Line, 0, len(line)+2*len(runs))
	pos := 0
	for i, r := range runs {
		out = appendText(out, line, starts, pos, r.Start)
		out = append(out, highlight.Token{
			Text:     text[r.Start:r.End],
			Class:    line[tokenAt(starts, r.Start)].Class,
			Emoji:    true,
			Key:      r.Key,
			Adjacent: i+1 < len(runs) && runs[i+1].Start == r.End,
		})
		pos = r.End
	}
	return appendText(out, line, starts, pos, len(text))
}

// appendText appends the text in [from, to) keeping token classes.
func appendText(out, line highlight.Line, starts []int, from, to int) highlight.Line {
	for i, tok := range line {
		lo, hi := max(from, starts[i]), min(to, starts[i+1])
		if lo >= hi {
			continue
		}
		out = append(out, highlight.Token{Text: tok.Text[lo-starts[i] : hi-starts[i]], Class: tok.Class})
	}
	return out
}

func tokenAt(starts []int, off int) int {
	for i := 0; i < len(starts)-1; i++ {
		if off < starts[i+1] {
			return i
		}
	}
	return len(starts) - 2
}
