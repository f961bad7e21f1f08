package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"posgrad/internal/catalog"
	"posgrad/internal/model"
	"posgrad/internal/repository"
	"posgrad/internal/slug"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// FeaturedLimit is how many courses the home page highlights.
const FeaturedLimit = 3

// CourseService defines course catalog and admin operations
type CourseService interface {
	// ListPublic returns active courses, newest first, narrowed by filters
	ListPublic(ctx context.Context, filters model.CourseFilters) ([]model.Course, error)
	Featured(ctx context.Context) ([]model.Course, error)
	// Options returns active courses ordered by title for the contact form
	Options(ctx context.Context) ([]model.Course, error)
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)

	ListAll(ctx context.Context) ([]model.Course, error)
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
	// PreviewSlug returns the slug a course with title would get right now
	PreviewSlug(ctx context.Context, title, excludeID string) (string, error)
}

// courseRules holds the admin form values checked before a write.
type courseRules struct {
	Title         string        `validate:"required"`
	Area          string        `validate:"required,oneof=enfermagem farmacia fisioterapia gestao nutricao oncologia"`
	Modality      string        `validate:"oneof=presencial online ead hibrido"`
	Status        string        `validate:"oneof=draft active inactive"`
	DurationHours int           `validate:"min=0"`
	MinStudents   int           `validate:"min=0"`
	MaxStudents   int           `validate:"min=0"`
	Program       []moduleRules `validate:"dive"`
}

type moduleRules struct {
	Hours int `validate:"min=0"`
}

// courseFields maps rule fields to the request body names.
var courseFields = map[string]string{
	"Title":         "title",
	"Area":          "area",
	"Modality":      "modality",
	"Status":        "status",
	"DurationHours": "duration_hours",
	"MinStudents":   "min_students",
	"MaxStudents":   "max_students",
	"Hours":         "program",
}

var courseMessages = map[string]string{
	"Title.required":    "Título é obrigatório",
	"Area.required":     "Área é obrigatória",
	"Area.oneof":        "Área inválida",
	"Modality.oneof":    "Modalidade inválida",
	"Status.oneof":      "Status inválido",
	"DurationHours.min": "Carga horária não pode ser negativa",
	"MinStudents.min":   "Mínimo de alunos não pode ser negativo",
	"MaxStudents.min":   "Máximo de alunos não pode ser negativo",
	"Hours.min":         "Carga horária do módulo não pode ser negativa",
}

type courseService struct {
	repo         repository.CourseRepository
	validate     *validator.Validate
	resolver     *slug.Resolver
	maxAttempts  int
	courseLogger zerolog.Logger
}

// NewCourseService creates a new CourseService. maxAttempts bounds both the
// slug search and the number of writes retried after a slug collision.
func NewCourseService(repo repository.CourseRepository, validate *validator.Validate, maxAttempts int, logger zerolog.Logger) CourseService {
	if maxAttempts <= 0 {
		maxAttempts = slug.DefaultMaxAttempts
	}
	return &courseService{
		repo:         repo,
		validate:     validate,
		resolver:     slug.NewResolver(repo, maxAttempts),
		maxAttempts:  maxAttempts,
		courseLogger: logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) ListPublic(ctx context.Context, filters model.CourseFilters) ([]model.Course, error) {
	courses, err := s.repo.List(ctx, repository.ListOptions{Status: model.StatusActive, OrderBy: repository.OrderNewest})
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to list active courses")
		return nil, err
	}
	return catalog.Apply(courses, catalog.Normalize(filters)), nil
}

func (s *courseService) Featured(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx, repository.ListOptions{
		Status:  model.StatusActive,
		OrderBy: repository.OrderNewest,
		Limit:   FeaturedLimit,
	})
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to list featured courses")
		return nil, err
	}
	return courses, nil
}

func (s *courseService) Options(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx, repository.ListOptions{Status: model.StatusActive, OrderBy: repository.OrderTitle})
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to list course options")
		return nil, err
	}
	return courses, nil
}

func (s *courseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	course, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.notFound(err, "slug", slug)
	}
	return course, nil
}

func (s *courseService) ListAll(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx, repository.ListOptions{OrderBy: repository.OrderNewest})
	if err != nil {
		s.courseLogger.Error().Err(err).Msg("Failed to list courses")
		return nil, err
	}
	return courses, nil
}

// GetCourseByID retrieves a course by its ID
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, s.notFound(err, "course_id", courseID)
	}
	return course, nil
}

// CreateCourse validates c, assigns its slug and stores it. New courses
// without a status start as drafts.
func (s *courseService) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if c.Status == "" {
		c.Status = model.StatusDraft
	}
	if err := s.prepare(c); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c, s.repo.Create); err != nil {
		return nil, err
	}
	s.courseLogger.Info().Str("course_id", c.ID).Str("slug", c.Slug).Msg("Course created")
	return c, nil
}

// UpdateCourse validates c and overwrites the stored course with the same ID
func (s *courseService) UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if err := s.prepare(c); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c, s.repo.Update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, c.ID)
		}
		return nil, err
	}
	s.courseLogger.Info().Str("course_id", c.ID).Str("slug", c.Slug).Msg("Course updated")
	return c, nil
}

// DeleteCourse deletes a course by its ID
func (s *courseService) DeleteCourse(ctx context.Context, courseID string) error {
	if err := s.repo.Delete(ctx, courseID); err != nil {
		return s.notFound(err, "course_id", courseID)
	}
	s.courseLogger.Info().Str("course_id", courseID).Msg("Course deleted")
	return nil
}

func (s *courseService) PreviewSlug(ctx context.Context, title, excludeID string) (string, error) {
	return s.resolver.Resolve(ctx, title, excludeID)
}

// save writes c with write. A generated slug that loses a race against a
// concurrent writer is resolved again; an explicit slug is never rewritten.
func (s *courseService) save(ctx context.Context, c *model.Course, write func(context.Context, *model.Course) error) error {
	generated := c.Slug == ""
	for attempt := 1; ; attempt++ {
		if generated {
			resolved, err := s.resolver.Resolve(ctx, c.Title, c.ID)
			if err != nil {
				if errors.Is(err, slug.ErrEmptySlug) {
					return invalid("title", "Título precisa conter letras ou números")
				}
				s.courseLogger.Error().Err(err).Str("title", c.Title).Msg("Failed to resolve slug")
				return err
			}
			c.Slug = resolved
		}

		err := write(ctx, c)
		if err == nil {
			return nil
		}
		if !generated || !errors.Is(err, repository.ErrDuplicateSlug) || attempt >= s.maxAttempts {
			if !errors.Is(err, repository.ErrNotFound) {
				s.courseLogger.Error().Err(err).Str("slug", c.Slug).Msg("Failed to save course")
			}
			return err
		}
		s.courseLogger.Warn().Str("slug", c.Slug).Int("attempt", attempt).Msg("Slug taken by a concurrent write, resolving again")
	}
}

// prepare trims c, drops empty program entries and validates it.
func (s *courseService) prepare(c *model.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	c.ShortDescription = strings.TrimSpace(c.ShortDescription)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	c.ModalityComplement = strings.TrimSpace(c.ModalityComplement)
	c.Location = strings.TrimSpace(c.Location)
	c.Investment = strings.TrimSpace(c.Investment)
	c.ContactUs = strings.TrimSpace(c.ContactUs)

	ct := &c.Content
	ct.About = strings.TrimSpace(ct.About)
	ct.TargetAudience = strings.TrimSpace(ct.TargetAudience)
	ct.CoordinationGeneral = strings.TrimSpace(ct.CoordinationGeneral)
	ct.CoordinationGeneralPhoto = strings.TrimSpace(ct.CoordinationGeneralPhoto)
	ct.Coordination = strings.TrimSpace(ct.Coordination)
	ct.CoordinationPhoto = strings.TrimSpace(ct.CoordinationPhoto)
	ct.Requirements = strings.TrimSpace(ct.Requirements)
	program := make([]model.ProgramModule, 0, len(ct.Program))
	for _, m := range ct.Program {
		if m.Name = strings.TrimSpace(m.Name); m.Name != "" {
			program = append(program, m)
		}
	}
	ct.Program = program

	if c.Modality == "" {
		c.Modality = model.ModalityOnline
	}
	if err := s.check(c); err != nil {
		return err
	}

	if raw := strings.TrimSpace(c.Slug); raw != "" {
		c.Slug = slug.Slugify(raw)
		if c.Slug == "" {
			return invalid("slug", "Slug inválido: %s", raw)
		}
	} else {
		c.Slug = ""
	}
	return nil
}

// check runs the course rules and reports the first failure by body field.
func (s *courseService) check(c *model.Course) error {
	rules := courseRules{
		Title:         c.Title,
		Area:          c.Area,
		Modality:      c.Modality,
		Status:        c.Status,
		DurationHours: c.DurationHours,
		MinStudents:   c.MinStudents,
		MaxStudents:   c.MaxStudents,
		Program:       make([]moduleRules, len(c.Content.Program)),
	}
	for i, m := range c.Content.Program {
		rules.Program[i].Hours = m.Hours
	}
	err := s.validate.Struct(rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating course: %w", err)
	}
	fe := verrs[0]
	return &ValidationError{
		Field:   courseFields[fe.StructField()],
		Message: courseMessages[fe.StructField()+"."+fe.Tag()],
	}
}

func (s *courseService) notFound(err error, key, value string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, value)
	}
	s.courseLogger.Error().Err(err).Str(key, value).Msg("Course lookup failed")
	return err
}
