package student

import (
	"context"
	"fmt"
	"time"
)

type Enrollment struct {
	CourseID    string
	CourseTitle string
	Progress    float64 // 0..100
	CompletedAt *time.Time
}

type LearningTime struct {
	TotalMinutes    int
	LastWeekMinutes int
}

func (t LearningTime) String() string {
	if t.TotalMinutes <= 0 {
		return "no recorded study time yet"
	}
	h, m := t.TotalMinutes/60, t.TotalMinutes%60
	switch {
	case h == 0:
		return plural(m, "minute")
	case m == 0:
		return plural(h, "hour")
	default:
		return plural(h, "hour") + " " + plural(m, "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

type QuizPerformance struct {
	Attempts     int
	AverageScore float64 // percent
	BestScore    float64 // percent
}

// Snapshot is the learning state of one student at request time.
type Snapshot struct {
	StudentID       string
	StudentName     string
	Enrollments     []Enrollment
	LearningTime    LearningTime
	StudentStatus   string
	QuizPerformance QuizPerformance
	RecentActivity  []string
	WeakAreas       []string
	Strengths       []string
	NextSteps       []string
}

const StatusNewLearner = "new learner"

// Default is the snapshot used whenever the real one cannot be gathered.
func Default(studentID string) Snapshot {
	return Snapshot{
		StudentID:      studentID,
		StudentStatus:  StatusNewLearner,
		Enrollments:    []Enrollment{},
		RecentActivity: []string{},
		WeakAreas:      []string{},
		Strengths:      []string{},
		NextSteps:      []string{},
	}
}

// Raw rows read from the platform database.

type Profile struct {
	ID   string
	Name string
}

type QuizAttempt struct {
	QuizTitle string
	Topic     string
	Score     float64
	MaxScore  float64
	TakenAt   time.Time
}

func (a QuizAttempt) Percent() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.Score / a.MaxScore * 100
}

type StudySession struct {
	Minutes   int
	StartedAt time.Time
}

// Store: read-only доступ к данным платформы
type Store interface {
	GetProfile(ctx context.Context, studentID string) (Profile, error)
	ListEnrollments(ctx context.Context, studentID string) ([]Enrollment, error)
	ListQuizAttempts(ctx context.Context, studentID string, limit int) ([]QuizAttempt, error)
	ListStudySessions(ctx context.Context, studentID string) ([]StudySession, error)
}
