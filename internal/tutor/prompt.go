package tutor

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/ai"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

const DefaultHistoryLimit = 10

type promptFamily int

const (
	familyPlain promptFamily = iota
	familyZephyr
	familyChatML
	familyInst
)

// familyFor picks the prompt markup from the provider identifier. Unknown identifiers get plain role
// prefixes.
func familyFor(providerID string) promptFamily {
	id := strings.ToLower(providerID)
	switch {
	case strings.Contains(id, "zephyr"):
		return familyZephyr
	case strings.Contains(id, "qwen"), strings.Contains(id, "hermes"), strings.Contains(id, "chatml"):
		return familyChatML
	case strings.Contains(id, "mistral"), strings.Contains(id, "mixtral"), strings.Contains(id, "llama-2"):
		return familyInst
	default:
		return familyPlain
	}
}

type PromptBuilder struct {
	HistoryLimit int
}

func NewPromptBuilder(historyLimit int) PromptBuilder {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return PromptBuilder{HistoryLimit: historyLimit}
}

// BuildPrompt renders a single text prompt with the default history window.
func BuildPrompt(category Category, contextText, message string, history []Turn, providerID string) string {
	return NewPromptBuilder(DefaultHistoryLimit).Build(category, contextText, message, history, providerID)
}

// Build renders the prompt for an inference provider. Translation prompts carry only the
// direction-tagged span.
func (b PromptBuilder) Build(category Category, contextText, message string, history []Turn, providerID string) string {
	system, turns, user := b.parts(category, contextText, message, history)

	var sb strings.Builder
	switch familyFor(providerID) {
	case familyZephyr:
		fmt.Fprintf(&sb, "<|system|>\n%s</s>\n", system)
		for _, t := range turns {
			fmt.Fprintf(&sb, "<|%s|>\n%s</s>\n", t.Role, t.Content)
		}
		fmt.Fprintf(&sb, "<|user|>\n%s</s>\n<|assistant|>\n", user)
	case familyChatML:
		fmt.Fprintf(&sb, "<|im_start|>system\n%s<|im_end|>\n", system)
		for _, t := range turns {
			fmt.Fprintf(&sb, "<|im_start|>%s\n%s<|im_end|>\n", t.Role, t.Content)
		}
		fmt.Fprintf(&sb, "<|im_start|>user\n%s<|im_end|>\n<|im_start|>assistant\n", user)
	case familyInst:
		fmt.Fprintf(&sb, "[INST] %s\n\n", system)
		if len(turns) > 0 {
			sb.WriteString("Conversation so far:\n")
			writePlainTurns(&sb, turns)
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Student: %s [/INST]", user)
	default:
		fmt.Fprintf(&sb, "System: %s\n\n", system)
		writePlainTurns(&sb, turns)
		fmt.Fprintf(&sb, "Student: %s\nTutor:", user)
	}
	return sb.String()
}

// Messages is the structured payload for chat providers.
func (b PromptBuilder) Messages(category Category, contextText, message string, history []Turn) []ai.Message {
	system, turns, user := b.parts(category, contextText, message, history)
	out := make([]ai.Message, 0, len(turns)+2)
	out = append(out, ai.Message{Role: "system", Text: system})
	for _, t := range turns {
		out = append(out, ai.Message{Role: string(t.Role), Text: t.Content})
	}
	return append(out, ai.Message{Role: "user", Text: user})
}

func (b PromptBuilder) parts(category Category, contextText, message string, history []Turn) (string, []Turn, string) {
	if category == CategoryTranslation {
		return translatorInstruction, nil, ParseTranslation(message).Tagged()
	}
	return contextText, recentTurns(history, b.HistoryLimit), strings.TrimSpace(message)
}

// recentTurns copies the last limit non-blank turns. history itself is never written.
func recentTurns(history []Turn, limit int) []Turn {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	start := len(history) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Turn, 0, len(history)-start)
	for _, t := range history[start:] {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		role := RoleUser
		if t.Role == RoleAssistant {
			role = RoleAssistant
		}
		out = append(out, Turn{Role: role, Content: content})
	}
	return out
}

func writePlainTurns(sb *strings.Builder, turns []Turn) {
	for _, t := range turns {
		label := "Student"
		if t.Role == RoleAssistant {
			label = "Tutor"
		}
		fmt.Fprintf(sb, "%s: %s\n", label, t.Content)
	}
}

// ContextText is the system preamble: persona, what we know about the student, and the instruction
// for the category.
func ContextText(snap student.Snapshot, category Category) string {
	var sb strings.Builder
	sb.WriteString(TutorPersona)
	sb.WriteString("\n\nAbout the student:\n")
	if snap.StudentName != "" {
		fmt.Fprintf(&sb, "- Name: %s\n", snap.StudentName)
	}
	fmt.Fprintf(&sb, "- Status: %s\n", snap.StudentStatus)
	fmt.Fprintf(&sb, "- Study time: %s\n", snap.LearningTime)
	if len(snap.Enrollments) > 0 {
		courses := make([]string, 0, len(snap.Enrollments))
		for _, e := range snap.Enrollments {
			courses = append(courses, fmt.Sprintf("%s (%.0f%%)", e.CourseTitle, e.Progress))
		}
		fmt.Fprintf(&sb, "- Courses: %s\n", strings.Join(courses, ", "))
	}
	if q := snap.QuizPerformance; q.Attempts > 0 {
		fmt.Fprintf(&sb, "- Quizzes: %d taken, average %.0f%%, best %.0f%%\n", q.Attempts, q.AverageScore, q.BestScore)
	}
	if len(snap.WeakAreas) > 0 {
		fmt.Fprintf(&sb, "- Needs work on: %s\n", strings.Join(snap.WeakAreas, ", "))
	}
	if len(snap.Strengths) > 0 {
		fmt.Fprintf(&sb, "- Strong at: %s\n", strings.Join(snap.Strengths, ", "))
	}

	instruction, ok := categoryInstructions[category]
	if !ok {
		instruction = categoryInstructions[CategoryGeneral]
	}
	sb.WriteString("\n")
	sb.WriteString(instruction)
	return sb.String()
}
