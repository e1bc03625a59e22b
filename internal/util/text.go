package util

import (
	"regexp"
	"strings"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// Stopwords dropped from query tokens only. Indexed descriptions keep every
// token so the postings stay maximally discoverable.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"we": {}, "you": {}, "they": {}, "our": {}, "your": {}, "their": {},
	"each": {}, "all": {}, "any": {}, "some": {}, "per": {}, "via": {},
	"need": {}, "needs": {}, "please": {},
}

// Normalize lowercases the input, replaces everything outside [a-z0-9] with a
// space, and collapses runs of whitespace.
func Normalize(input string) string {
	s := strings.ToLower(input)
	s = reNonAlnum.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TokenizeQuery splits normalized text into tokens, dropping single-character
// tokens and stopwords.
func TokenizeQuery(input string) []string {
	return tokenize(input, true)
}

// TokenizeIndex is the description-side tokenizer: same filtering as
// TokenizeQuery but without stopword removal.
func TokenizeIndex(input string) []string {
	return tokenize(input, false)
}

func tokenize(input string, dropStopwords bool) []string {
	parts := strings.Split(Normalize(input), " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < 2 {
			continue
		}
		if dropStopwords {
			if _, ok := stopwords[p]; ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(input string) string {
	out := strings.Builder{}
	for _, r := range input {
		if r >= '0' && r <= '9' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// LooksLikeCode reports whether a search query should be treated as a catalog
// code lookup: it starts with two digits.
func LooksLikeCode(input string) bool {
	s := strings.TrimSpace(input)
	if len(s) < 2 {
		return false
	}
	return s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// LongestCommonPrefix returns the longest shared character prefix of the
// given strings. Empty input yields "".
func LongestCommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
