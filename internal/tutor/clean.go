package tutor

import (
	"strings"
	"unicode/utf8"
)

var (
	// markers that start a new turn the model went on to invent
	continuationMarkers = []string{
		"<|user|>", "<|system|>", "<|im_start|>user", "<|im_start|>system", "[INST]",
		"\nUser:", "\nStudent:", "\nHuman:", "\nSystem:",
	}
	turnMarkers = []string{
		"<|im_start|>assistant", "<|assistant|>", "<|im_start|>", "<|im_end|>", "<|endoftext|>",
		"<|eot_id|>", "[/INST]", "</s>", "<s>",
	}
	// instruction blocks a model may echo ahead of its answer: open marker, close marker
	echoBlocks = [][2]string{
		{"[INST]", "[/INST]"},
		{"<|system|>", "<|assistant|>"},
		{"<|user|>", "<|assistant|>"},
		{"<|im_start|>system", "<|im_start|>assistant"},
		{"<|im_start|>user", "<|im_start|>assistant"},
	}
	roleLabels = []string{
		"assistant:", "ai:", "tutor:", "sensei:", "answer:", "response:", "translation:",
	}
)

// cleanOutput strips prompt artifacts from raw provider text. prompt may be empty.
func cleanOutput(raw, prompt, message string, category Category) string {
	s := strings.TrimSpace(raw)
	if prompt != "" {
		s = strings.TrimPrefix(s, strings.TrimSpace(prompt))
	}
	s = stripEchoBlock(strings.TrimLeft(s, "\n "))
	for _, m := range continuationMarkers {
		if i := strings.Index(s, m); i >= 0 {
			s = s[:i]
		}
	}
	for _, m := range turnMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = stripRoleLabels(strings.TrimSpace(s))
	if category != CategoryTranslation {
		if msg := strings.TrimSpace(message); msg != "" {
			if rest, ok := cutPrefixFold(s, msg); ok {
				s = stripRoleLabels(strings.TrimSpace(rest))
			}
		}
	}
	return strings.TrimSpace(s)
}

func stripEchoBlock(s string) string {
	for _, b := range echoBlocks {
		if !strings.HasPrefix(s, b[0]) {
			continue
		}
		if i := strings.Index(s, b[1]); i >= 0 {
			return strings.TrimSpace(s[i+len(b[1]):])
		}
	}
	return s
}

func stripRoleLabels(s string) string {
	for {
		stripped := false
		for _, l := range roleLabels {
			if rest, ok := cutPrefixFold(s, l); ok {
				s = strings.TrimSpace(rest)
				stripped = true
			}
		}
		if !stripped {
			return s
		}
	}
}

type TranslationRules struct {
	// LengthTolerance is the largest rune-length difference at which an output containing the input
	// (or contained in it) still counts as an echo.
	LengthTolerance int
	// ShortOutputRunes bounds the wrong-script check to short outputs.
	ShortOutputRunes int
}

func DefaultTranslationRules() TranslationRules {
	return TranslationRules{LengthTolerance: 3, ShortOutputRunes: 60}
}

// Check returns why a cleaned translation is unacceptable, or "" when it is fine.
func (r TranslationRules) Check(out string, req TranslationRequest) SkipReason {
	if strings.TrimSpace(out) == "" {
		return SkipEmptyText
	}
	o, in := normalizeForCompare(out), normalizeForCompare(req.Text)
	if o == in {
		return SkipEchoedInput
	}
	if in != "" && o != "" && (strings.Contains(o, in) || strings.Contains(in, o)) &&
		abs(utf8.RuneCountInString(o)-utf8.RuneCountInString(in)) <= r.LengthTolerance {
		return SkipEchoedInput
	}

	isShort := utf8.RuneCountInString(out) <= r.ShortOutputRunes
	switch req.Direction {
	case DirectionEnJp:
		if isShort && !hasJapanese(out) && hasLatin(out) {
			return SkipWrongScript
		}
	case DirectionJpEn:
		if isShort && !hasLatin(out) && hasJapanese(out) {
			return SkipWrongScript
		}
	}
	return ""
}

func normalizeForCompare(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	return strings.TrimRight(s, ".!?。！？、,")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
