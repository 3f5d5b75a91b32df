package tutor

import "strings"

var (
	grammarMarkers = []string{
		"correct", "grammar", "fix", "mistake", "wrong", "check this", "is this correct",
		"添削", "間違", "直して",
	}
	translationPrefixes = []string{"translate", "翻訳"}
	translationMarkers  = []string{
		"translate", "translation", "how do you say", "what does this mean",
		"in japanese", "in english", "into japanese", "into english",
		"翻訳", "訳して", "英語で", "日本語で", "どういう意味",
	}
	summaryMarkers  = []string{"summarize", "summarise", "summary", "brief", "overview", "tl;dr", "要約", "まとめて"}
	questionMarkers = []string{
		"?", "？", "what", "how", "why", "when", "which", "explain", "difference", "meaning",
		"particle", "verb", "adjective", "kanji", "hiragana", "katakana", "keigo", "jlpt", "conjugat",
		"vocabulary", "grammar", "とは", "ですか",
	}
)

type classifierRule struct {
	category Category
	match    func(lower string) bool
}

// rules run in order; the first match wins.
var rules = []classifierRule{
	{CategoryGrammar, func(s string) bool { return containsAny(s, grammarMarkers) }},
	{CategoryTranslation, func(s string) bool {
		return hasAnyPrefix(s, translationPrefixes) || containsAny(s, translationMarkers) || asksMeaning(s)
	}},
	{CategorySummarization, func(s string) bool { return containsAny(s, summaryMarkers) }},
	{CategoryQA, func(s string) bool { return containsAny(s, questionMarkers) }},
}

// Classify maps any message to exactly one category. It never fails; unmatched and empty
// input is qa.
func Classify(message string) Category {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return CategoryQA
	}
	for _, r := range rules {
		if r.match(lower) {
			return r.category
		}
	}
	return CategoryQA
}

// asksMeaning matches "what does X mean".
func asksMeaning(s string) bool {
	i := strings.Index(s, "what does ")
	return i >= 0 && strings.Contains(s[i+len("what does "):], " mean")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
