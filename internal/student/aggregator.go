package student

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	attemptLimit   = 50
	recentLimit    = 5
	areaLimit      = 3
	nextStepsLimit = 4

	weakThreshold   = 60.0
	strongThreshold = 80.0
)

var ErrUnavailable = errors.New("student context unavailable")

// Aggregator builds a Snapshot from the platform database.
type Aggregator struct {
	store Store
	now   func() time.Time
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

func (a *Aggregator) GatherContext(ctx context.Context, studentID string) (Snapshot, error) {
	id, err := uuid.Parse(strings.TrimSpace(studentID))
	if err != nil {
		return Default(studentID), fmt.Errorf("invalid student id: %w", err)
	}
	sid := id.String()

	profile, err := a.store.GetProfile(ctx, sid)
	if err != nil {
		return Default(sid), err
	}
	enrollments, err := a.store.ListEnrollments(ctx, sid)
	if err != nil {
		return Default(sid), err
	}
	attempts, err := a.store.ListQuizAttempts(ctx, sid, attemptLimit)
	if err != nil {
		return Default(sid), err
	}
	sessions, err := a.store.ListStudySessions(ctx, sid)
	if err != nil {
		return Default(sid), err
	}

	return build(sid, profile, enrollments, attempts, sessions, a.now()), nil
}

func build(id string, p Profile, enrollments []Enrollment, attempts []QuizAttempt, sessions []StudySession, now time.Time) Snapshot {
	snap := Default(id)
	snap.StudentName = strings.TrimSpace(p.Name)
	if enrollments != nil {
		snap.Enrollments = enrollments
	}
	snap.LearningTime = learningTime(sessions, now)
	snap.QuizPerformance = quizPerformance(attempts)
	snap.WeakAreas, snap.Strengths = topicAreas(attempts)
	snap.RecentActivity = recentActivity(enrollments, attempts)
	snap.StudentStatus = status(enrollments, attempts, snap.LearningTime)
	snap.NextSteps = nextSteps(enrollments, attempts, snap.WeakAreas)
	return snap
}

func learningTime(sessions []StudySession, now time.Time) LearningTime {
	var lt LearningTime
	weekAgo := now.Add(-7 * 24 * time.Hour)
	for _, s := range sessions {
		if s.Minutes <= 0 {
			continue
		}
		lt.TotalMinutes += s.Minutes
		if s.StartedAt.After(weekAgo) {
			lt.LastWeekMinutes += s.Minutes
		}
	}
	return lt
}

func quizPerformance(attempts []QuizAttempt) QuizPerformance {
	var qp QuizPerformance
	var sum float64
	for _, a := range attempts {
		pct := a.Percent()
		sum += pct
		if pct > qp.BestScore {
			qp.BestScore = pct
		}
		qp.Attempts++
	}
	if qp.Attempts > 0 {
		qp.AverageScore = sum / float64(qp.Attempts)
	}
	return qp
}

type topicScore struct {
	topic string
	avg   float64
}

func topicAreas(attempts []QuizAttempt) (weak []string, strong []string) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, a := range attempts {
		t := strings.TrimSpace(a.Topic)
		if t == "" {
			continue
		}
		sums[t] += a.Percent()
		counts[t]++
	}

	scores := make([]topicScore, 0, len(sums))
	for t, s := range sums {
		scores = append(scores, topicScore{topic: t, avg: s / float64(counts[t])})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].avg != scores[j].avg {
			return scores[i].avg < scores[j].avg
		}
		return scores[i].topic < scores[j].topic
	})

	weak, strong = []string{}, []string{}
	for _, s := range scores {
		if s.avg < weakThreshold && len(weak) < areaLimit {
			weak = append(weak, s.topic)
		}
	}
	for i := len(scores) - 1; i >= 0; i-- {
		if scores[i].avg >= strongThreshold && len(strong) < areaLimit {
			strong = append(strong, scores[i].topic)
		}
	}
	return weak, strong
}

type activity struct {
	at   time.Time
	line string
}

func recentActivity(enrollments []Enrollment, attempts []QuizAttempt) []string {
	events := make([]activity, 0, len(attempts)+len(enrollments))
	for _, a := range attempts {
		events = append(events, activity{at: a.TakenAt, line: fmt.Sprintf("Scored %.0f%% on %s", a.Percent(), a.QuizTitle)})
	}
	for _, e := range enrollments {
		if e.CompletedAt != nil {
			events = append(events, activity{at: *e.CompletedAt, line: "Completed " + e.CourseTitle})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at.After(events[j].at) })

	out := []string{}
	for _, ev := range events {
		if len(out) == recentLimit {
			break
		}
		out = append(out, ev.line)
	}
	return out
}

func status(enrollments []Enrollment, attempts []QuizAttempt, lt LearningTime) string {
	if len(enrollments) == 0 && len(attempts) == 0 {
		return StatusNewLearner
	}
	var progress float64
	for _, e := range enrollments {
		progress += e.Progress
	}
	if len(enrollments) > 0 {
		progress /= float64(len(enrollments))
	}

	switch {
	case progress >= 80:
		return "advanced"
	case lt.TotalMinutes > 0 && lt.LastWeekMinutes == 0:
		return "returning after a break"
	case progress >= 40:
		return "making steady progress"
	default:
		return "getting started"
	}
}

func nextSteps(enrollments []Enrollment, attempts []QuizAttempt, weak []string) []string {
	steps := []string{}
	if len(enrollments) == 0 {
		steps = append(steps, "Enroll in a beginner Japanese course")
	}

	inProgress := 0
	for _, e := range enrollments {
		if inProgress == 2 {
			break
		}
		if e.CompletedAt == nil && e.Progress < 100 {
			steps = append(steps, fmt.Sprintf("Continue %s (%.0f%% complete)", e.CourseTitle, e.Progress))
			inProgress++
		}
	}

	for i, w := range weak {
		if i == 2 {
			break
		}
		steps = append(steps, fmt.Sprintf("Review %s and retake a quiz on it", w))
	}

	if len(attempts) == 0 && len(enrollments) > 0 {
		steps = append(steps, "Take your first quiz to measure your progress")
	}

	if len(steps) > nextStepsLimit {
		steps = steps[:nextStepsLimit]
	}
	return steps
}

// UnavailableSource is the context source used when no database is configured.
type UnavailableSource struct{}

func (UnavailableSource) GatherContext(_ context.Context, studentID string) (Snapshot, error) {
	return Default(studentID), ErrUnavailable
}
