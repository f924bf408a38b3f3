package moderation

import (
	"regexp"
	"strings"
)

// FlagReason is the annotation attached to posts caught by the screen.
const FlagReason = "Contains inappropriate language"

// bannedWords is a starter list; extend via NewScreen with extra words.
var bannedWords = []string{
	"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
	"bastard", "bitch", "dick", "cock", "pussy", "cunt",
	"asshole", "dumbass", "jackass", "retard", "slut", "whore",
	"nigger", "faggot", "douchebag", "wanker", "twat", "prick",
	"arsehole", "bollocks", "cocksucker", "shithead", "dipshit",
	"dumbfuck", "dildo", "cumshot", "blowjob", "handjob", "rapist",
}

// Screen is the deterministic local profanity check. It only annotates,
// it never rejects a request.
type Screen struct {
	patterns []*regexp.Regexp
}

// NewScreen builds a screen from the default list plus any extra words.
// Each word is matched case-insensitively with word boundaries so that
// banned terms inside longer clean words do not trigger.
func NewScreen(extra ...string) *Screen {
	words := append([]string{}, bannedWords...)
	for _, w := range extra {
		w = strings.TrimSpace(w)
		if w != "" {
			words = append(words, w)
		}
	}

	s := &Screen{}
	seen := map[string]struct{}{}
	for _, w := range words {
		w = strings.ToLower(w)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		s.patterns = append(s.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return s
}

// IsProfane reports whether text contains any banned term.
func (s *Screen) IsProfane(text string) bool {
	for _, re := range s.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
