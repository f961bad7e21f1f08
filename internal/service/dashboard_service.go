package service

import (
	"context"

	"posgrad/internal/model"
	"posgrad/internal/repository"

	"github.com/rs/zerolog"
)

// DashboardStats are the counters on the admin home.
type DashboardStats struct {
	TotalCourses   int
	ActiveCourses  int
	Submissions    int
	Enrollments    int
	ConversionRate float64
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	courses  repository.CourseRepository
	contacts repository.ContactRepository
	logger   zerolog.Logger
}

func NewDashboardService(courses repository.CourseRepository, contacts repository.ContactRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		courses:  courses,
		contacts: contacts,
		logger:   logger.With().Str("service", "DashboardService").Logger(),
	}
}

// Stats counts courses and submissions. ConversionRate is the share of
// submissions asking to enroll, in percent.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.courses.Count(ctx, "")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count courses")
		return nil, err
	}
	active, err := s.courses.Count(ctx, model.StatusActive)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count active courses")
		return nil, err
	}
	contacts, err := s.contacts.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count submissions")
		return nil, err
	}

	st := &DashboardStats{
		TotalCourses:  total,
		ActiveCourses: active,
		Submissions:   contacts.Total,
		Enrollments:   contacts.Matricular,
	}
	if contacts.Total > 0 {
		st.ConversionRate = float64(contacts.Matricular) * 100 / float64(contacts.Total)
	}
	return st, nil
}
