package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillCanonical maps every alias spelling to its canonical skill name.
var skillCanonical = func() map[string]string {
	out := make(map[string]string)
	for _, group := range skillAliases {
		canonical := normalizeSkill(group[0])
		for _, alias := range group {
			out[normalizeSkill(alias)] = canonical
		}
	}
	return out
}()

// normalizeName lowercases a category or place name and folds separators,
// so "KwaZulu-Natal" and "kwazulu natal" compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', '&', ',':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeSkill keeps technology punctuation (c++, c#, node.js) intact.
func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func canonicalSkill(s string) string {
	n := normalizeSkill(s)
	if canonical, ok := skillCanonical[n]; ok {
		return canonical
	}
	return n
}

// skillVariants returns all spellings of the skill, canonical first.
func skillVariants(skill string) []string {
	canonical := canonicalSkill(skill)
	if canonical == "" {
		return nil
	}
	if variants, ok := skillVariantsByCanonical[canonical]; ok {
		return variants
	}
	return []string{canonical}
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// containsTerm reports whether term occurs in text as a whole term. Both
// arguments must already be normalized. A dot directly followed by a letter
// continues the term ("react" does not match "react.js"), any other dot ends it.
func containsTerm(text, term string) bool {
	if term == "" || text == "" {
		return false
	}

	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	prev, size := utf8.DecodeLastRuneInString(text[:start])
	if prev == '.' {
		// a dot joins only when it follows a term rune ("node.js")
		before, _ := utf8.DecodeLastRuneInString(text[:start-size])
		return start-size == 0 || !isTermRune(before)
	}
	return !isTermRune(prev)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	next, size := utf8.DecodeRuneInString(text[end:])
	if next == '.' {
		if end+size >= len(text) {
			return true
		}
		after, _ := utf8.DecodeRuneInString(text[end+size:])
		return !unicode.IsLetter(after)
	}
	return !isTermRune(next)
}

// splitRequirements breaks a free-text requirements string into
// normalized requirement phrases.
func splitRequirements(requirements string) []string {
	// sentence ends split phrases too, but "node.js" must survive
	requirements = strings.ReplaceAll(requirements, ". ", "\n")
	parts := strings.FieldsFunc(requirements, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '|', '•', '\t':
			return true
		}
		return false
	})

	phrases := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		phrase := normalizeSkill(strings.TrimRight(strings.Trim(part, " -*:"), "."))
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		phrases = append(phrases, phrase)
	}

	return phrases
}
