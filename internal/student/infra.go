package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("student not found")

type postgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) GetProfile(ctx context.Context, studentID string) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, coalesce(full_name, '')
		FROM profiles
		WHERE id = $1
	`, studentID).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *postgresStore) ListEnrollments(ctx context.Context, studentID string) ([]Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, coalesce(e.progress, 0), e.completed_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []Enrollment
	for rows.Next() {
		var e Enrollment
		var completed sql.NullTime
		if err := rows.Scan(&e.CourseID, &e.CourseTitle, &e.Progress, &completed); err != nil {
			return nil, err
		}
		if completed.Valid {
			t := completed.Time
			e.CompletedAt = &t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *postgresStore) ListQuizAttempts(ctx context.Context, studentID string, limit int) ([]QuizAttempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.title, coalesce(q.topic, ''), a.score, a.max_score, a.created_at
		FROM quiz_attempts a
		JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttempt
	for rows.Next() {
		var a QuizAttempt
		if err := rows.Scan(&a.QuizTitle, &a.Topic, &a.Score, &a.MaxScore, &a.TakenAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *postgresStore) ListStudySessions(ctx context.Context, studentID string) ([]StudySession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT duration_minutes, started_at
		FROM study_sessions
		WHERE student_id = $1
		ORDER BY started_at DESC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	defer rows.Close()

	var out []StudySession
	for rows.Next() {
		var ss StudySession
		if err := rows.Scan(&ss.Minutes, &ss.StartedAt); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}
