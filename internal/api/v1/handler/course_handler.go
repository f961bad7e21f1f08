package handler

import (
	"context"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/api/v1/operation"
	"posgrad/internal/model"
	"posgrad/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// CourseHandler implements the public catalog and admin course operations
type CourseHandler struct {
	courseService service.CourseService
	logger        zerolog.Logger
}

func NewCourseHandler(courseService service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns the active catalog narrowed by the query filters
func (h *CourseHandler) ListCourses(ctx context.Context, input *operation.ListCoursesInput) (*operation.ListCoursesOutput, error) {
	courses, err := h.courseService.ListPublic(ctx, model.CourseFilters{
		Area:     input.Area,
		Modality: input.Modality,
		Search:   input.Search,
	})
	if err != nil {
		return nil, toAPIError(err, "Failed to list courses", h.logger)
	}
	return &operation.ListCoursesOutput{Body: dto.NewCourseList(courses)}, nil
}

func (h *CourseHandler) FeaturedCourses(ctx context.Context, _ *operation.FeaturedCoursesInput) (*operation.ListCoursesOutput, error) {
	courses, err := h.courseService.Featured(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to list featured courses", h.logger)
	}
	return &operation.ListCoursesOutput{Body: dto.NewCourseList(courses)}, nil
}

func (h *CourseHandler) CourseOptions(ctx context.Context, _ *operation.CourseOptionsInput) (*operation.CourseOptionsOutput, error) {
	courses, err := h.courseService.Options(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to list course options", h.logger)
	}
	out := make([]dto.CourseOptionDTO, 0, len(courses))
	for _, c := range courses {
		out = append(out, dto.CourseOptionDTO{ID: c.ID, Title: c.Title})
	}
	return &operation.CourseOptionsOutput{Body: out}, nil
}

func (h *CourseHandler) GetCourseBySlug(ctx context.Context, input *operation.GetCourseBySlugInput) (*operation.GetCourseOutput, error) {
	course, err := h.courseService.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, toAPIError(err, "Failed to get course", h.logger)
	}
	return &operation.GetCourseOutput{Body: dto.NewCourseResponse(course)}, nil
}

// ListAdminCourses returns every course regardless of status
func (h *CourseHandler) ListAdminCourses(ctx context.Context, _ *operation.ListAdminCoursesInput) (*operation.ListCoursesOutput, error) {
	courses, err := h.courseService.ListAll(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to list courses", h.logger)
	}
	return &operation.ListCoursesOutput{Body: dto.NewCourseList(courses)}, nil
}

func (h *CourseHandler) GetCourse(ctx context.Context, input *operation.GetCourseInput) (*operation.GetCourseOutput, error) {
	course, err := h.courseService.GetCourseByID(ctx, input.CourseID)
	if err != nil {
		return nil, toAPIError(err, "Failed to get course", h.logger)
	}
	return &operation.GetCourseOutput{Body: dto.NewCourseResponse(course)}, nil
}

func (h *CourseHandler) CreateCourse(ctx context.Context, input *operation.CreateCourseInput) (*operation.CreateCourseOutput, error) {
	course, err := input.Body.ToModel("")
	if err != nil {
		return nil, huma.Error400BadRequest("Data de início inválida", err)
	}
	created, err := h.courseService.CreateCourse(ctx, course)
	if err != nil {
		return nil, toAPIError(err, "Failed to create course", h.logger)
	}
	return &operation.CreateCourseOutput{Body: dto.NewCourseResponse(created)}, nil
}

func (h *CourseHandler) UpdateCourse(ctx context.Context, input *operation.UpdateCourseInput) (*operation.UpdateCourseOutput, error) {
	course, err := input.Body.ToModel(input.CourseID)
	if err != nil {
		return nil, huma.Error400BadRequest("Data de início inválida", err)
	}
	updated, err := h.courseService.UpdateCourse(ctx, course)
	if err != nil {
		return nil, toAPIError(err, "Failed to update course", h.logger)
	}
	return &operation.UpdateCourseOutput{Body: dto.NewCourseResponse(updated)}, nil
}

func (h *CourseHandler) DeleteCourse(ctx context.Context, input *operation.DeleteCourseInput) (*operation.DeleteCourseOutput, error) {
	if err := h.courseService.DeleteCourse(ctx, input.CourseID); err != nil {
		return nil, toAPIError(err, "Failed to delete course", h.logger)
	}
	return &operation.DeleteCourseOutput{}, nil
}

// PreviewSlug shows the slug the form would assign to a title
func (h *CourseHandler) PreviewSlug(ctx context.Context, input *operation.PreviewSlugInput) (*operation.PreviewSlugOutput, error) {
	s, err := h.courseService.PreviewSlug(ctx, input.Title, input.ExcludeID)
	if err != nil {
		return nil, toAPIError(err, "Failed to resolve slug", h.logger)
	}
	return &operation.PreviewSlugOutput{Body: dto.SlugPreviewDTO{Slug: s}}, nil
}
