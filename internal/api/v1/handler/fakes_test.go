package handler

import (
	"context"
	"errors"
	"io"
	"strings"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/auth"
	"posgrad/internal/catalog"
	"posgrad/internal/model"
	"posgrad/internal/service"
	"posgrad/internal/storage"
)

type fakeCourseService struct {
	courses []model.Course
	saved   *model.Course
	deleted string
	err     error
}

func (f *fakeCourseService) ListPublic(ctx context.Context, filters model.CourseFilters) ([]model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return catalog.Apply(f.courses, filters), nil
}

func (f *fakeCourseService) Featured(ctx context.Context) ([]model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.courses) > service.FeaturedLimit {
		return f.courses[:service.FeaturedLimit], nil
	}
	return f.courses, nil
}

func (f *fakeCourseService) Options(ctx context.Context) ([]model.Course, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	for i := range f.courses {
		if f.courses[i].Slug == slug {
			return &f.courses[i], nil
		}
	}
	return nil, service.ErrCourseNotFound
}

func (f *fakeCourseService) ListAll(ctx context.Context) ([]model.Course, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	for i := range f.courses {
		if f.courses[i].ID == courseID {
			return &f.courses[i], nil
		}
	}
	return nil, service.ErrCourseNotFound
}

func (f *fakeCourseService) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	c.ID = "new-id"
	if c.Slug == "" {
		c.Slug = "gerado"
	}
	f.saved = c
	return c, nil
}

func (f *fakeCourseService) UpdateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := f.GetCourseByID(ctx, c.ID); err != nil {
		return nil, err
	}
	f.saved = c
	return c, nil
}

func (f *fakeCourseService) DeleteCourse(ctx context.Context, courseID string) error {
	if _, err := f.GetCourseByID(ctx, courseID); err != nil {
		return err
	}
	f.deleted = courseID
	return nil
}

func (f *fakeCourseService) PreviewSlug(ctx context.Context, title, excludeID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return strings.ToLower(strings.ReplaceAll(title, " ", "-")), nil
}

type fakeContactService struct {
	got service.ContactInput
	err error
}

func (f *fakeContactService) Submit(ctx context.Context, in service.ContactInput) (*model.ContactSubmission, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &model.ContactSubmission{ID: "sub-1", Name: in.Name}, nil
}

type fakeAuthenticator struct {
	session *auth.Session
	err     error
	signUps []string
}

func (f *fakeAuthenticator) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthenticator) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	f.signUps = append(f.signUps, email)
	return f.session, f.err
}

type fakeDashboard struct {
	stats *service.DashboardStats
	err   error
}

func (f *fakeDashboard) Stats(ctx context.Context) (*service.DashboardStats, error) {
	return f.stats, f.err
}

type fakeImageStore struct {
	got  storage.Upload
	data []byte
	err  error
}

func (f *fakeImageStore) Put(ctx context.Context, up storage.Upload) (string, error) {
	f.got = up
	f.data, _ = io.ReadAll(up.Body)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/course-images/" + up.Filename, nil
}

type fakeMailerService struct {
	got string
	err error
}

func (f *fakeMailerService) ProcessSubmission(ctx context.Context, submissionID string) (string, error) {
	f.got = submissionID
	if f.err != nil {
		return "", f.err
	}
	return "em_123", nil
}

var errStoreDown = errors.New("connection refused")

type fakeDeadLetterService struct {
	got []dto.PubSubPushRequest
	err error
}

func (f *fakeDeadLetterService) RecordPush(ctx context.Context, req *dto.PubSubPushRequest) error {
	f.got = append(f.got, *req)
	return f.err
}

func (f *fakeDeadLetterService) RecordQueue(ctx context.Context, queue string, msgID int64, payload []byte, cause error) error {
	return f.err
}
