package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"posgrad/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sort orders accepted by ListOptions.
const (
	OrderNewest = "newest"
	OrderTitle  = "title"
)

// ListOptions narrows a course listing. Zero values mean no restriction.
type ListOptions struct {
	Status  string
	OrderBy string
	Limit   int
}

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.Course, error)
	// GetByID retrieves a course by its ID
	GetByID(ctx context.Context, courseID string) (*model.Course, error)
	// GetBySlug retrieves a course by its public slug
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, courseID string) error
	// SlugTaken reports whether a course other than excludeID uses slug
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Count(ctx context.Context, status string) (int, error)
}

type courseRepo struct {
	pool *pgxpool.Pool
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(pool *pgxpool.Pool) CourseRepository {
	return &courseRepo{pool: pool}
}

const courseColumns = `
	id, slug, title, description, short_description, image_url, area, modality,
	modality_complement, duration_hours, min_students, max_students, start_date,
	location, investment, contact_us, status, content, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	var content []byte
	err := row.Scan(
		&c.ID,
		&c.Slug,
		&c.Title,
		&c.Description,
		&c.ShortDescription,
		&c.ImageURL,
		&c.Area,
		&c.Modality,
		&c.ModalityComplement,
		&c.DurationHours,
		&c.MinStudents,
		&c.MaxStudents,
		&c.StartDate,
		&c.Location,
		&c.Investment,
		&c.ContactUs,
		&c.Status,
		&content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &c.Content); err != nil {
			return nil, fmt.Errorf("decoding content of course %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

// List retrieves courses matching opts
func (r *courseRepo) List(ctx context.Context, opts ListOptions) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	var args []any
	if opts.Status != "" {
		args = append(args, opts.Status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	switch opts.OrderBy {
	case OrderTitle:
		query += " ORDER BY title ASC"
	default:
		query += " ORDER BY created_at DESC"
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepo) GetByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c, err := scanCourse(r.pool.QueryRow(ctx, query, courseID))
	if err != nil {
		return nil, fmt.Errorf("getting course by id %s: %w", courseID, translate(err))
	}
	return c, nil
}

// GetBySlug retrieves a course by its slug
func (r *courseRepo) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	c, err := scanCourse(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, fmt.Errorf("getting course by slug %s: %w", slug, translate(err))
	}
	return c, nil
}

// Create inserts a new course and fills in the generated fields
func (r *courseRepo) Create(ctx context.Context, c *model.Course) error {
	content, err := json.Marshal(c.Content)
	if err != nil {
		return fmt.Errorf("encoding course content: %w", err)
	}
	query := `
		INSERT INTO courses (
			slug, title, description, short_description, image_url, area, modality,
			modality_complement, duration_hours, min_students, max_students, start_date,
			location, investment, contact_us, status, content
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	err = r.pool.QueryRow(ctx, query,
		c.Slug, c.Title, c.Description, c.ShortDescription, c.ImageURL, c.Area, c.Modality,
		c.ModalityComplement, c.DurationHours, c.MinStudents, c.MaxStudents, c.StartDate,
		c.Location, c.Investment, c.ContactUs, c.Status, string(content),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating course: %w", translate(err))
	}
	return nil
}

// Update overwrites every editable field of an existing course
func (r *courseRepo) Update(ctx context.Context, c *model.Course) error {
	content, err := json.Marshal(c.Content)
	if err != nil {
		return fmt.Errorf("encoding course content: %w", err)
	}
	query := `
		UPDATE courses
		SET slug = $1, title = $2, description = $3, short_description = $4, image_url = $5,
			area = $6, modality = $7, modality_complement = $8, duration_hours = $9,
			min_students = $10, max_students = $11, start_date = $12, location = $13,
			investment = $14, contact_us = $15, status = $16, content = $17, updated_at = NOW()
		WHERE id = $18
		RETURNING created_at, updated_at
	`
	err = r.pool.QueryRow(ctx, query,
		c.Slug, c.Title, c.Description, c.ShortDescription, c.ImageURL,
		c.Area, c.Modality, c.ModalityComplement, c.DurationHours,
		c.MinStudents, c.MaxStudents, c.StartDate, c.Location,
		c.Investment, c.ContactUs, c.Status, string(content), c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating course %s: %w", c.ID, translate(err))
	}
	return nil
}

// Delete removes a course by its ID
func (r *courseRepo) Delete(ctx context.Context, courseID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("deleting course %s: %w", courseID, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting course %s: %w", courseID, ErrNotFound)
	}
	return nil
}

// SlugTaken reports whether another course already uses slug
func (r *courseRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM courses
			WHERE slug = $1 AND ($2 = '' OR id::text <> $2)
		)
	`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("checking slug %s: %w", slug, err)
	}
	return taken, nil
}

// Count returns how many courses have status, or all courses when status is empty
func (r *courseRepo) Count(ctx context.Context, status string) (int, error) {
	query := `SELECT COUNT(*) FROM courses WHERE $1 = '' OR status = $1`
	var n int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}
