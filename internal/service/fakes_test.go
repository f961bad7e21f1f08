package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"posgrad/internal/model"
	"posgrad/internal/repository"

	"github.com/google/uuid"
)

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]model.Course
	seq     int
	listErr error
	// stolen slugs are taken by a phantom writer right before the next write
	stolen []string
	writes int
}

func newFakeCourseRepo(courses ...model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[string]model.Course{}}
	for _, c := range courses {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.seq++
		c.CreatedAt = time.Unix(int64(r.seq), 0)
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeCourseRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []model.Course{}
	for _, c := range r.courses {
		if opts.Status == "" || c.Status == opts.Status {
			out = append(out, c)
		}
	}
	if opts.OrderBy == repository.OrderTitle {
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCourseRepo) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCourseRepo) steal() {
	for _, s := range r.stolen {
		r.seq++
		id := uuid.NewString()
		r.courses[id] = model.Course{ID: id, Slug: s, Title: "phantom", Status: model.StatusDraft, CreatedAt: time.Unix(int64(r.seq), 0)}
	}
	r.stolen = nil
}

func (r *fakeCourseRepo) slugUsed(slug, excludeID string) bool {
	for id, c := range r.courses {
		if c.Slug == slug && id != excludeID {
			return true
		}
	}
	return false
}

func (r *fakeCourseRepo) Create(ctx context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.steal()
	if r.slugUsed(c.Slug, "") {
		return repository.ErrDuplicateSlug
	}
	r.seq++
	c.ID = uuid.NewString()
	c.CreatedAt = time.Unix(int64(r.seq), 0)
	c.UpdatedAt = c.CreatedAt
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.steal()
	old, ok := r.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.slugUsed(c.Slug, c.ID) {
		return repository.ErrDuplicateSlug
	}
	c.CreatedAt = old.CreatedAt
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slugUsed(slug, excludeID), nil
}

func (r *fakeCourseRepo) Count(ctx context.Context, status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.courses {
		if status == "" || c.Status == status {
			n++
		}
	}
	return n, nil
}

type emailResult struct {
	sent bool
	err  *string
}

type fakeContactRepo struct {
	mu        sync.Mutex
	subs      map[string]model.ContactSubmission
	courses   *fakeCourseRepo
	createErr error
	results   map[string]emailResult
}

func newFakeContactRepo(courses *fakeCourseRepo) *fakeContactRepo {
	return &fakeContactRepo{subs: map[string]model.ContactSubmission{}, courses: courses, results: map[string]emailResult{}}
}

func (r *fakeContactRepo) Create(ctx context.Context, s *model.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.courses != nil {
		if _, err := r.courses.GetByID(ctx, s.CourseID); err != nil {
			return repository.ErrForeignKey
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	r.subs[s.ID] = *s
	return nil
}

func (r *fakeContactRepo) GetByID(ctx context.Context, id string) (*model.ContactSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.courses != nil {
		if c, err := r.courses.GetByID(ctx, s.CourseID); err == nil {
			title := c.Title
			s.CourseTitle = &title
		}
	}
	return &s, nil
}

func (r *fakeContactRepo) RecordEmailResult(ctx context.Context, id string, sent bool, emailErr *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.EmailSent, s.EmailError = sent, emailErr
	r.subs[id] = s
	r.results[id] = emailResult{sent, emailErr}
	return nil
}

func (r *fakeContactRepo) Stats(ctx context.Context) (repository.ContactStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st repository.ContactStats
	for _, s := range r.subs {
		st.Total++
		if s.Interest == model.InterestMatricular {
			st.Matricular++
		}
	}
	return st, nil
}

func titles(courses []model.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Title
	}
	return out
}
