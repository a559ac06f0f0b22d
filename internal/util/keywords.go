package util

import "strings"

// stopwords excluded from descriptor keyword extraction. "can" is first
// on purpose: every descriptor starts with it.
var keywordStopwords = map[string]struct{}{
	"can": {}, "the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {},
	"by": {}, "from": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "may": {}, "might": {}, "must": {}, "shall": {},
}

const maxKeywords = 10

// ExtractKeywords pulls up to ten meaningful keywords out of a descriptor
// text: lowercase, punctuation stripped, stopwords and words of three or
// fewer characters dropped, first occurrence wins. Pure text
// normalization; used only at import time.
func ExtractKeywords(descriptor string) []string {
	words := strings.Fields(strings.ToLower(descriptor))

	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, word := range words {
		word = strings.Trim(word, ",.!?;:")
		if len(word) <= 3 {
			continue
		}
		if _, stop := keywordStopwords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
