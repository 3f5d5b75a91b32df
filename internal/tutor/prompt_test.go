package tutor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

func TestFamilyFor(t *testing.T) {
	assert.Equal(t, familyZephyr, familyFor("HuggingFaceH4/zephyr-7b-beta"))
	assert.Equal(t, familyChatML, familyFor("Qwen/Qwen2.5-7B-Instruct"))
	assert.Equal(t, familyInst, familyFor("mistralai/Mistral-7B-Instruct-v0.2"))
	assert.Equal(t, familyPlain, familyFor("some/unknown-model"))
	assert.Equal(t, familyPlain, familyFor(""))
}

func TestBuildPrompt(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "こんにちは!"},
	}

	t.Run("Should use zephyr markup", func(t *testing.T) {
		p := BuildPrompt(CategoryQA, "CTX", "What is は?", history, "HuggingFaceH4/zephyr-7b-beta")
		assert.True(t, strings.HasPrefix(p, "<|system|>\nCTX</s>\n"))
		assert.Contains(t, p, "<|user|>\nhi</s>\n<|assistant|>\nこんにちは!</s>\n")
		assert.True(t, strings.HasSuffix(p, "<|user|>\nWhat is は?</s>\n<|assistant|>\n"))
	})

	t.Run("Should use chatml markup", func(t *testing.T) {
		p := BuildPrompt(CategoryQA, "CTX", "What is は?", history, "Qwen/Qwen2.5-7B-Instruct")
		assert.True(t, strings.HasPrefix(p, "<|im_start|>system\nCTX<|im_end|>\n"))
		assert.True(t, strings.HasSuffix(p, "<|im_start|>user\nWhat is は?<|im_end|>\n<|im_start|>assistant\n"))
	})

	t.Run("Should use inst markup", func(t *testing.T) {
		p := BuildPrompt(CategoryGrammar, "CTX", "私は学生です", history, "mistralai/Mistral-7B-Instruct-v0.2")
		assert.True(t, strings.HasPrefix(p, "[INST] CTX"))
		assert.Contains(t, p, "Student: hi\nTutor: こんにちは!\n")
		assert.True(t, strings.HasSuffix(p, "Student: 私は学生です [/INST]"))
	})

	t.Run("Should default to plain role prefixes", func(t *testing.T) {
		p := BuildPrompt(CategoryQA, "CTX", "question", nil, "acme/unknown")
		assert.Equal(t, "System: CTX\n\nStudent: question\nTutor:", p)
	})

	t.Run("Should read only the last turns without touching history", func(t *testing.T) {
		long := make([]Turn, 15)
		for i := range long {
			long[i] = Turn{Role: RoleUser, Content: fmt.Sprintf("turn-%02d", i)}
		}
		before := append([]Turn(nil), long...)

		p := BuildPrompt(CategoryQA, "CTX", "question", long, "acme/unknown")
		assert.NotContains(t, p, "turn-04")
		assert.Contains(t, p, "turn-05")
		assert.Contains(t, p, "turn-14")
		assert.Equal(t, before, long)
	})

	t.Run("Should send translation providers the tagged span only", func(t *testing.T) {
		p := BuildPrompt(CategoryTranslation, "CTX", "Translate: Hello", history, "Qwen/Qwen2.5-7B-Instruct")
		assert.Contains(t, p, "Translate English to Japanese: Hello")
		assert.NotContains(t, p, "CTX")
		assert.NotContains(t, p, "hi<|im_end|>")
	})
}

func TestPromptBuilderMessages(t *testing.T) {
	b := NewPromptBuilder(2)
	history := []Turn{
		{Role: RoleUser, Content: "old"},
		{Role: RoleUser, Content: "hi"},
		{Role: "robot", Content: "   "},
		{Role: RoleAssistant, Content: "hello"},
	}

	msgs := b.Messages(CategoryQA, "CTX", " What is が? ", history)
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "CTX", msgs[0].Text)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Text)
	assert.Equal(t, "user", msgs[2].Role)
	assert.Equal(t, "What is が?", msgs[2].Text)
}

func TestContextText(t *testing.T) {
	t.Run("Should describe the default snapshot", func(t *testing.T) {
		text := ContextText(student.Default("x"), CategoryGrammar)
		assert.True(t, strings.HasPrefix(text, TutorPersona))
		assert.Contains(t, text, "Status: new learner")
		assert.Contains(t, text, "Study time: no recorded study time yet")
		assert.True(t, strings.HasSuffix(text, categoryInstructions[CategoryGrammar]))
	})

	t.Run("Should include what is known about the student", func(t *testing.T) {
		snap := student.Default("x")
		snap.StudentName = "Aiko"
		snap.Enrollments = []student.Enrollment{{CourseTitle: "Genki I", Progress: 45}}
		snap.QuizPerformance = student.QuizPerformance{Attempts: 3, AverageScore: 70, BestScore: 90}
		snap.WeakAreas = []string{"Particles"}

		text := ContextText(snap, Category("poetry"))
		assert.Contains(t, text, "Name: Aiko")
		assert.Contains(t, text, "Courses: Genki I (45%)")
		assert.Contains(t, text, "Quizzes: 3 taken, average 70%, best 90%")
		assert.Contains(t, text, "Needs work on: Particles")
		assert.True(t, strings.HasSuffix(text, categoryInstructions[CategoryGeneral]))
	})
}
