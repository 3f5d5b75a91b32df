package tutor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Direction string

const (
	DirectionEnJp Direction = "en-jp"
	DirectionJpEn Direction = "jp-en"
)

func (d Direction) source() string {
	if d == DirectionJpEn {
		return "Japanese"
	}
	return "English"
}

func (d Direction) target() string {
	if d == DirectionJpEn {
		return "English"
	}
	return "Japanese"
}

// wrapper is a directive around the text to translate. An empty suffix matches anything.
type wrapper struct {
	prefix string
	suffix string
}

var translationWrappers = []wrapper{
	{"translate this to japanese:", ""},
	{"translate this to english:", ""},
	{"translate to japanese:", ""},
	{"translate to english:", ""},
	{"translate this:", ""},
	{"translate:", ""},
	{"translation:", ""},
	{"translate this", ""},
	{"translate", ""},
	{"how do you say", ""},
	{"how would you say", ""},
	{"what does this mean:", ""},
	{"what does this mean", ""},
	{"what does", "mean"},
	{"翻訳:", ""},
	{"翻訳：", ""},
	{"翻訳", ""},
}

// politeLeaders are dropped only when "translate" follows them.
var politeLeaders = []string{"can you please", "could you please", "please", "can you", "could you", "would you"}

var translationSuffixes = []string{
	"?", "？", "in japanese", "into japanese", "to japanese", "in english", "into english", "to english",
	"を英語で", "を日本語で", "を翻訳して", "を訳して",
}

var quotePairs = [][2]string{{`"`, `"`}, {"'", "'"}, {"「", "」"}, {"“", "”"}, {"『", "』"}}

// ExtractTranslationText strips directive phrases, quotes and trailing question marks from a
// translation request, leaving the literal span. Applying it to its own output changes nothing.
func ExtractTranslationText(message string) string {
	s := strings.TrimSpace(message)
	for {
		next := stripTranslationOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripTranslationOnce(s string) string {
	for _, l := range politeLeaders {
		if rest, ok := cutPrefixFold(s, l); ok {
			rest = strings.TrimSpace(rest)
			if _, ok := cutPrefixFold(rest, "translate"); ok {
				return rest
			}
		}
	}
	for _, w := range translationWrappers {
		rest, ok := cutPrefixFold(s, w.prefix)
		if !ok {
			continue
		}
		if w.suffix != "" {
			inner, ok := cutSuffixFold(strings.TrimRight(rest, "?？ "), w.suffix)
			if !ok {
				continue
			}
			rest = inner
		}
		return trimSpan(rest)
	}
	for _, suf := range translationSuffixes {
		if rest, ok := cutSuffixFold(s, suf); ok {
			return trimSpan(rest)
		}
	}
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return trimSpan(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}

func trimSpan(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), ":：-"))
}

// cutPrefixFold is a case-insensitive CutPrefix that only matches whole words.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	rest := s[len(prefix):]
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && isASCIIWordByte(prefix[len(prefix)-1]) && isASCIIWordRune(r) {
		return s, false
	}
	return rest, true
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) < len(suffix) || !strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s, false
	}
	rest := s[:len(s)-len(suffix)]
	if r, _ := utf8.DecodeLastRuneInString(rest); rest != "" && isASCIIWordByte(suffix[0]) && isASCIIWordRune(r) {
		return s, false
	}
	return rest, true
}

func isASCIIWordByte(b byte) bool {
	return b < utf8.RuneSelf && isASCIIWordRune(rune(b))
}

func isASCIIWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// DetectDirection is jp-en when the text contains any Hiragana, Katakana or Kanji, en-jp otherwise.
func DetectDirection(text string) Direction {
	if hasJapanese(text) {
		return DirectionJpEn
	}
	return DirectionEnJp
}

func hasJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

func hasLatin(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Latin) {
			return true
		}
	}
	return false
}

// TranslationRequest is the extracted span with its direction.
type TranslationRequest struct {
	Text      string
	Direction Direction
}

func ParseTranslation(message string) TranslationRequest {
	text := ExtractTranslationText(message)
	return TranslationRequest{Text: text, Direction: DetectDirection(text)}
}

// Tagged is the direction-tagged payload for general-purpose providers.
func (t TranslationRequest) Tagged() string {
	return "Translate " + t.Direction.source() + " to " + t.Direction.target() + ": " + t.Text
}
