package ethics

import "strings"

// KeywordSet is a named group of phrases scanned for in action text.
type KeywordSet []string

// Matcher counts keyword occurrences in action text. The default is plain
// substring matching; tests and future NLP-backed scorers substitute their
// own.
type Matcher interface {
	// Count returns how many phrases from the set occur in the text.
	Count(text string, set KeywordSet) int
	// Any reports whether at least one phrase from the set occurs in the text.
	Any(text string, set KeywordSet) bool
}

// SubstringMatcher matches case-insensitively on substrings. Callers pass
// already-lowercased keyword sets; input text is lowercased per call.
type SubstringMatcher struct{}

func (SubstringMatcher) Count(text string, set KeywordSet) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range set {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func (m SubstringMatcher) Any(text string, set KeywordSet) bool {
	return m.Count(text, set) > 0
}

// Default keyword sets. Phrases are lowercase.
var (
	// AggressiveKeywords signal a demanding or threatening message tone.
	AggressiveKeywords = KeywordSet{
		"demand", "immediately", "must", "required", "legal action",
		"consequences", "failure to", "final notice",
	}

	// UrgencyKeywords signal manufactured urgency.
	UrgencyKeywords = KeywordSet{
		"final", "last chance", "immediately", "urgent", "deadline",
		"expires", "limited time",
	}

	// LegalKeywords signal legal threat language.
	LegalKeywords = KeywordSet{
		"legal action", "lawsuit", "court", "attorney", "sue",
	}
)
