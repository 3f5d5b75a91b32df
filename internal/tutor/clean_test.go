package tutor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		prompt   string
		message  string
		category Category
		want     string
	}{
		{
			name:     "turn markers and role label",
			raw:      "<|assistant|>\nAssistant: Hello there</s>",
			message:  "hi",
			category: CategoryQA,
			want:     "Hello there",
		},
		{
			name:     "invented continuation turn",
			raw:      "は marks the topic.\nUser: thanks\nTutor: you're welcome",
			message:  "what is wa",
			category: CategoryQA,
			want:     "は marks the topic.",
		},
		{
			name:     "prompt echo",
			raw:      "System: CTX\n\nStudent: q\nTutor: Answer here",
			prompt:   "System: CTX\n\nStudent: q\nTutor:",
			message:  "q",
			category: CategoryQA,
			want:     "Answer here",
		},
		{
			name:     "message echo",
			raw:      "What is wa?\nWa is the topic marker.",
			message:  "What is wa?",
			category: CategoryQA,
			want:     "Wa is the topic marker.",
		},
		{
			name:     "chatml end marker",
			raw:      "が marks the subject.<|im_end|>\n<|im_start|>user\nmore",
			message:  "what is ga",
			category: CategoryQA,
			want:     "が marks the subject.",
		},
		{
			name:     "echoed instruction block ahead of the answer",
			raw:      "[INST] sys\n\nStudent: hi [/INST] Hello!",
			message:  "hi",
			category: CategoryQA,
			want:     "Hello!",
		},
		{
			name:     "echoed zephyr turns ahead of the answer",
			raw:      "<|system|>\nsys</s>\n<|user|>\nhi</s>\n<|assistant|>\nこんにちは！",
			message:  "hi",
			category: CategoryQA,
			want:     "こんにちは！",
		},
		{
			name:     "translation keeps an echo for validation",
			raw:      "Translation: Hello",
			message:  "Hello",
			category: CategoryTranslation,
			want:     "Hello",
		},
	}
	for _, tt := range tests {
		t.Run("Should clean "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanOutput(tt.raw, tt.prompt, tt.message, tt.category))
		})
	}
}

func TestTranslationRulesCheck(t *testing.T) {
	rules := DefaultTranslationRules()
	enJp := TranslationRequest{Text: "I am hungry", Direction: DirectionEnJp}
	jpEn := TranslationRequest{Text: "こんにちは", Direction: DirectionJpEn}

	tests := []struct {
		name string
		out  string
		req  TranslationRequest
		want SkipReason
	}{
		{"empty", "  ", enJp, SkipEmptyText},
		{"exact echo", "I am hungry", enJp, SkipEchoedInput},
		{"echo with punctuation", "i am hungry.", enJp, SkipEchoedInput},
		{"near echo within tolerance", "I am hungry :)", enJp, SkipEchoedInput},
		{"short english for en-jp", "I am so hungry", enJp, SkipWrongScript},
		{"japanese for en-jp", "お腹が空きました", enJp, ""},
		{"long latin output passes", strings.Repeat("a ", 40), enJp, ""},
		{"echo for jp-en", "こんにちは。", jpEn, SkipEchoedInput},
		{"japanese only for jp-en", "やあ", jpEn, SkipWrongScript},
		{"english for jp-en", "Hello", jpEn, ""},
	}
	for _, tt := range tests {
		t.Run("Should judge "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Check(tt.out, tt.req))
		})
	}

	t.Run("Should honour a wider tolerance", func(t *testing.T) {
		wide := TranslationRules{LengthTolerance: 10, ShortOutputRunes: 60}
		assert.Equal(t, SkipEchoedInput, wide.Check("I am hungry now, ok", enJp))
		assert.Equal(t, SkipWrongScript, rules.Check("I am hungry now, ok", enJp))
	})
}
