package highlight

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/theme"
)

// PlainText is the language reported when no lexer applies.
const PlainText = "plaintext"

// Token is a run of source text with a single syntax class.
type Token struct {
	Text  string
	Class theme.Class

	// Emoji marks a single emoji grapheme cluster. Key is its glyph key
	// and Adjacent reports whether the next character in the source line
	// is also an emoji.
	Emoji    bool
	Key      string
	Adjacent bool
}

// Line is the ordered tokens of one source line.
type Line []Token

// Text returns the concatenated token text.
func (l Line) Text() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Result is the output of [Highlighter.Tokenize].
type Result struct {
	Lines    []Line
	Language string // name of the lexer actually used

	// Fallback is a non-nil UNSUPPORTED_LANGUAGE error when the requested
	// language was not recognized.
	Fallback error
}

// Highlighter tokenizes code with chroma. Resolved lexers are cached, so a
// Highlighter should be shared. It is safe for concurrent use.
type Highlighter struct {
	mu     sync.RWMutex
	lexers map[string]chroma.Lexer
}

// New returns a Highlighter.
func New() *Highlighter {
	return &Highlighter{lexers: make(map[string]chroma.Lexer)}
}

// Tokenize splits code into classified lines. An empty language requests
// auto-detection. Tokenize never fails; see [Result.Fallback].
func (h *Highlighter) Tokenize(code, language string) Result {
	code = normalizeNewlines(sanitize(code))
	language = strings.TrimSpace(language)

	var fallback error
	lexer := h.lexer(language)
	if lexer == nil {
		if language != "" {
			fallback = errors.New(errors.ErrCodeUnsupportedLanguage, "unsupported language %q", language)
		}
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return Result{Lines: plain(code), Language: PlainText, Fallback: fallback}
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		if fallback == nil {
			fallback = errors.Wrap(errors.ErrCodeUnsupportedLanguage, err, "tokenize %s", lexer.Config().Name)
		}
		return Result{Lines: plain(code), Language: PlainText, Fallback: fallback}
	}

	return Result{
		Lines:    split(it.Tokens(), len(code)),
		Language: lexer.Config().Name,
		Fallback: fallback,
	}
}

func (h *Highlighter) lexer(language string) chroma.Lexer {
	if language == "" {
		return nil
	}
	key := strings.ToLower(language)

	h.mu.RLock()
	l, ok := h.lexers[key]
	h.mu.RUnlock()
	if ok {
		return l
	}

	l = lexers.Get(language)
	if l == nil {
		l = lexers.Match("file." + key)
	}

	h.mu.Lock()
	h.lexers[key] = l
	h.mu.Unlock()
	return l
}

// DetectLanguage guesses a language from a filename and, failing that,
// from the code itself. It returns "" when nothing matches.
func DetectLanguage(filename, code string) string {
	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			return strings.ToLower(l.Config().Name)
		}
	}
	if code != "" {
		if l := lexers.Analyse(code); l != nil {
			return strings.ToLower(l.Config().Name)
		}
	}
	return ""
}

// split turns a chroma token stream into lines. Lexers may append a
// trailing newline; output is truncated to the input length so every
// character appears exactly once.
func split(tokens []chroma.Token, budget int) []Line {
	lines := []Line{nil}
	for _, tok := range tokens {
		if budget <= 0 {
			break
		}
		value := tok.Value
		if len(value) > budget {
			value = value[:budget]
		}
		budget -= len(value)

		class := Classify(tok.Type)
		for i, part := range strings.Split(value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			cur := &lines[len(lines)-1]
			if n := len(*cur); n > 0 && (*cur)[n-1].Class == class {
				(*cur)[n-1].Text += part
				continue
			}
			*cur = append(*cur, Token{Text: part, Class: class})
		}
	}
	return lines
}

func plain(code string) []Line {
	parts := strings.Split(code, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		if p != "" {
			lines[i] = Line{{Text: p, Class: theme.ClassText}}
		}
	}
	return lines
}

// sanitize replaces each invalid UTF-8 byte with U+FFFD, the same
// conversion the lexers apply, so the split budget matches lexer output.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return string([]rune(s))
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
