package repository

import (
	"context"
	"fmt"

	"posgrad/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactStats summarizes submissions for the dashboard.
type ContactStats struct {
	Total      int
	Matricular int
}

// ContactRepository stores visitor inquiries
type ContactRepository interface {
	Create(ctx context.Context, s *model.ContactSubmission) error
	// GetByID retrieves a submission together with its course title
	GetByID(ctx context.Context, submissionID string) (*model.ContactSubmission, error)
	// RecordEmailResult stores the outcome of the notification email
	RecordEmailResult(ctx context.Context, submissionID string, sent bool, emailErr *string) error
	Stats(ctx context.Context) (ContactStats, error)
}

type contactRepo struct {
	pool *pgxpool.Pool
}

// NewContactRepo creates a new ContactRepository
func NewContactRepo(pool *pgxpool.Pool) ContactRepository {
	return &contactRepo{pool: pool}
}

// Create inserts a submission and fills in the generated fields
func (r *contactRepo) Create(ctx context.Context, s *model.ContactSubmission) error {
	query := `
		INSERT INTO contact_submissions (name, email, phone, course_id, interest)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)
		RETURNING id, email_sent, created_at
	`
	err := r.pool.QueryRow(ctx, query, s.Name, s.Email, s.Phone, s.CourseID, s.Interest).
		Scan(&s.ID, &s.EmailSent, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating contact submission: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a submission by its ID
func (r *contactRepo) GetByID(ctx context.Context, submissionID string) (*model.ContactSubmission, error) {
	query := `
		SELECT s.id, s.name, s.email, s.phone, COALESCE(s.course_id::text, ''), c.title,
			s.interest, s.email_sent, s.email_error, s.created_at
		FROM contact_submissions s
		LEFT JOIN courses c ON c.id = s.course_id
		WHERE s.id = $1
	`
	var s model.ContactSubmission
	err := r.pool.QueryRow(ctx, query, submissionID).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.CourseID,
		&s.CourseTitle,
		&s.Interest,
		&s.EmailSent,
		&s.EmailError,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getting contact submission %s: %w", submissionID, translate(err))
	}
	return &s, nil
}

// RecordEmailResult sets email_sent and email_error on a submission
func (r *contactRepo) RecordEmailResult(ctx context.Context, submissionID string, sent bool, emailErr *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET email_sent = $1, email_error = $2 WHERE id = $3`,
		sent, emailErr, submissionID,
	)
	if err != nil {
		return fmt.Errorf("recording email result for %s: %w", submissionID, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recording email result for %s: %w", submissionID, ErrNotFound)
	}
	return nil
}

// Stats counts all submissions and those asking to enroll
func (r *contactRepo) Stats(ctx context.Context) (ContactStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE interest = 'matricular')
		FROM contact_submissions
	`
	var st ContactStats
	if err := r.pool.QueryRow(ctx, query).Scan(&st.Total, &st.Matricular); err != nil {
		return ContactStats{}, fmt.Errorf("counting contact submissions: %w", err)
	}
	return st, nil
}
