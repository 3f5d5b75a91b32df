package tutor

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

var (
	waGaCompare    = []string{"difference", "vs", "versus", " and ", " or ", "違い"}
	waGaMarkers    = []string{"wa and ga", "wa vs ga", "ga and wa", "wa or ga", "wa/ga"}
	teFormMarkers  = []string{"te-form", "te form", "て-form", "て form", "て形", "てform"}
	niDeMarkers    = []string{"ni and de", "ni vs de", "de and ni", "ni or de", "ni/de"}
	nextStepWords  = []string{"next step", "what next", "what should i do next", "what should i learn", "recommend", "suggest"}
	progressWords  = []string{"progress", "how am i doing", "how am i going", "my status", "how far"}
	studyHelpWords = []string{"help", "study", "weak", "improve", "practice", "practise"}
)

// Fallback builds deterministic replies from templates and the student snapshot. It does no I/O.
type Fallback struct {
	dict *phraseDict
}

func NewFallback() *Fallback {
	return &Fallback{dict: newPhraseDict(commonPhrases)}
}

// Respond never returns an empty string. A panic inside yields DefaultReply.
func (f *Fallback) Respond(snap student.Snapshot, message string, category Category) (reply string) {
	defer func() {
		if r := recover(); r != nil || strings.TrimSpace(reply) == "" {
			reply = DefaultReply
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(message))

	if category == CategoryTranslation {
		return f.translate(message)
	}
	if topic, ok := grammarTopic(lower); ok {
		return topic
	}
	switch {
	case containsAny(lower, nextStepWords):
		return nextStepsReply(snap)
	case containsAny(lower, progressWords):
		return progressReply(snap)
	case containsAny(lower, studyHelpWords):
		return studyHelpReply(snap)
	case category == CategoryQA:
		return specificQuestionReply
	}
	return greetingReply
}

func (f *Fallback) translate(message string) string {
	tr := ParseTranslation(message)
	if p, ok := f.dict.Lookup(tr.Text, tr.Direction); ok {
		if tr.Direction == DirectionJpEn {
			return fmt.Sprintf("%s (%s) means %q in English.", p.Japanese, p.Romaji, p.English)
		}
		return fmt.Sprintf("%q in Japanese is %s (%s).", p.English, p.Japanese, p.Romaji)
	}

	var sb strings.Builder
	sb.WriteString(commonPhrasesHeader)
	sb.WriteString("\n")
	for _, p := range commonPhrases[:8] {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", p.Japanese, p.Romaji, p.English)
	}
	sb.WriteString("\n")
	sb.WriteString(commonPhrasesFooter)
	return sb.String()
}

func grammarTopic(lower string) (string, bool) {
	switch {
	case containsAny(lower, waGaMarkers),
		strings.Contains(lower, "は") && strings.Contains(lower, "が") && containsAny(lower, waGaCompare):
		return waGaExplanation, true
	case containsAny(lower, teFormMarkers):
		return teFormExplanation, true
	case containsAny(lower, niDeMarkers),
		strings.Contains(lower, "に") && strings.Contains(lower, "で") && containsAny(lower, waGaCompare):
		return niDeExplanation, true
	}
	return "", false
}

func nextStepsReply(snap student.Snapshot) string {
	if len(snap.NextSteps) == 0 {
		return encouragementReply
	}
	var sb strings.Builder
	sb.WriteString("Here's what I'd suggest next:\n")
	for i, step := range snap.NextSteps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func progressReply(snap student.Snapshot) string {
	status := snap.StudentStatus
	if status == "" {
		status = student.StatusNewLearner
	}
	var sb strings.Builder
	if snap.StudentName != "" {
		fmt.Fprintf(&sb, "%s, here", snap.StudentName)
	} else {
		sb.WriteString("Here")
	}
	fmt.Fprintf(&sb, "'s where you stand. Status: %s.", status)
	if snap.LearningTime.TotalMinutes > 0 {
		fmt.Fprintf(&sb, " You've studied for %s in total", snap.LearningTime)
		if snap.LearningTime.LastWeekMinutes > 0 {
			fmt.Fprintf(&sb, ", %d minutes of it this past week", snap.LearningTime.LastWeekMinutes)
		}
		sb.WriteString(".")
	} else {
		sb.WriteString(" There's no recorded study time yet, so the best time to start is now.")
	}
	if q := snap.QuizPerformance; q.Attempts > 0 {
		fmt.Fprintf(&sb, " Your quiz average is %.0f%% over %d attempts.", q.AverageScore, q.Attempts)
	}
	return sb.String()
}

func studyHelpReply(snap student.Snapshot) string {
	if len(snap.WeakAreas) == 0 && len(snap.Strengths) == 0 {
		return studyTipsReply
	}
	var sb strings.Builder
	if len(snap.WeakAreas) > 0 {
		sb.WriteString("Topics worth another look:\n")
		for _, w := range snap.WeakAreas {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	if len(snap.Strengths) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("You're already strong at:\n")
		for _, s := range snap.Strengths {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
