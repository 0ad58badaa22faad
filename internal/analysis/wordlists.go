package analysis

import "strings"

// MatchMode controls how a token is compared against a word list
type MatchMode int

const (
	// MatchExact counts a token only when it equals a list entry
	MatchExact MatchMode = iota
	// MatchSubstring counts a token when it contains any list entry
	MatchSubstring
)

// WordList is a fixed vocabulary matched against normalized tokens.
//
// Tokens come from whitespace tokenization, so multi-word entries such as
// "you know" never match a single token and are undercounted.
type WordList struct {
	Words []string
	Mode  MatchMode
}

// Matches reports whether a normalized token hits the list
func (l WordList) Matches(token string) bool {
	for _, w := range l.Words {
		switch l.Mode {
		case MatchExact:
			if token == w {
				return true
			}
		case MatchSubstring:
			if strings.Contains(token, w) {
				return true
			}
		}
	}
	return false
}

// Count returns how many tokens hit the list; each token counts once
func (l WordList) Count(tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if l.Matches(tok) {
			n++
		}
	}
	return n
}

// FillerWords are verbal fillers, matched exactly
var FillerWords = WordList{
	Words: []string{"um", "uh", "like", "you know", "so", "basically", "actually", "literally"},
	Mode:  MatchExact,
}

// StrongWords are assertive, outcome-focused words, matched by substring
var StrongWords = WordList{
	Words: []string{
		"guarantee", "proven", "result", "save", "increase", "reduce", "improve",
		"efficien", "streamline", "eliminate", "accura", "secure", "complian", "roi",
	},
	Mode: MatchSubstring,
}

// WeakWords are hedges that undercut confidence, matched by substring
var WeakWords = WordList{
	Words: []string{"maybe", "perhaps", "possibly", "might", "probably", "hopefully", "guess", "kinda", "sorta"},
	Mode:  MatchSubstring,
}

// QuestionWords are interrogatives, matched by substring
var QuestionWords = WordList{
	Words: []string{"what", "why", "how", "when", "where", "which"},
	Mode:  MatchSubstring,
}
