package emoji

import (
	"testing"

	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/theme"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"simple", "😀", "1f600"},
		{"selector dropped", "❤️", "2764"},
		{"skin tone", "👍🏽", "1f44d-1f3fd"},
		{"zwj sequence", "👨‍💻", "1f468-200d-1f4bb"},
		{"zwj keeps selector", "🏳️‍🌈", "1f3f3-fe0f-200d-1f308"},
		{"flag", "🇩🇪", "1f1e9-1f1ea"},
		{"keycap", "1️⃣", "31-20e3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsEmoji(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"😀", true},
		{"⭐", true},
		{"❤️", true},
		{"🇩🇪", true},
		{"1️⃣", true},
		{"a", false},
		{"1", false},
		{"é", false},
		{"☀", false}, // text presentation without selector
		{"→", false},
		{"─", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEmoji(tt.in); got != tt.want {
			t.Errorf("IsEmoji(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFindRuns(t *testing.T) {
	text := "hi 😀😀 → 👨‍💻!"
	runs := FindRuns(text)
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3: %+v", len(runs), runs)
	}
	want := []string{"😀", "😀", "👨‍💻"}
	for i, r := range runs {
		if got := text[r.Start:r.End]; got != want[i] {
			t.Errorf("run %d = %q, want %q", i, got, want[i])
		}
	}
	if runs[0].End != runs[1].Start {
		t.Error("consecutive emoji should be adjacent")
	}
	if FindRuns("plain text") != nil {
		t.Error("plain text should have no runs")
	}
	if !Contains("ok 👍") || Contains("ok") {
		t.Error("Contains mismatch")
	}
}

func TestSplitLine(t *testing.T) {
	line := highlight.Line{
		{Text: "// done ✅✅", Class: theme.ClassComment},
		{Text: " x", Class: theme.ClassText},
	}
	got := SplitLine(line)

	if got.Text() != line.Text() {
		t.Fatalf("text changed: %q -> %q", line.Text(), got.Text())
	}
	var emoji []highlight.Token
	for _, tok := range got {
		if tok.Emoji {
			emoji = append(emoji, tok)
		}
	}
	if len(emoji) != 2 {
		t.Fatalf("got %d emoji tokens, want 2", len(emoji))
	}
	if !emoji[0].Adjacent || emoji[1].Adjacent {
		t.Errorf("adjacency = %v, %v; want true, false", emoji[0].Adjacent, emoji[1].Adjacent)
	}
	if emoji[0].Class != theme.ClassComment || emoji[0].Key != "2705" {
		t.Errorf("emoji token = %+v", emoji[0])
	}
	if last := got[len(got)-1]; last.Text != " x" || last.Class != theme.ClassText {
		t.Errorf("trailing token = %+v", last)
	}
}

func TestSplitLineAcrossTokens(t *testing.T) {
	// A cluster split between two tokens stays one emoji.
	line := highlight.Line{
		{Text: "a👍", Class: theme.ClassString},
		{Text: "🏽b", Class: theme.ClassText},
	}
	got := SplitLine(line)
	if got.Text() != "a👍🏽b" {
		t.Fatalf("text = %q", got.Text())
	}
	if len(got) != 3 || !got[1].Emoji || got[1].Key != "1f44d-1f3fd" {
		t.Errorf("tokens = %+v", got)
	}
}

func TestSplitLineNoEmoji(t *testing.T) {
	line := highlight.Line{{Text: "abc", Class: theme.ClassText}}
	if got := SplitLine(line); len(got) != 1 || got[0] != line[0] {
		t.Errorf("SplitLine changed a line without emoji: %+v", got)
	}
}

func TestAdvance(t *testing.T) {
	if got := Advance(10, false); got != 8 {
		t.Errorf("Advance(10, false) = %v, want 8", got)
	}
	if got := Advance(10, true); got != 10 {
		t.Errorf("Advance(10, true) = %v, want 10", got)
	}
}
