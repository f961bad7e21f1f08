package operation

import "posgrad/internal/api/v1/dto"

// Public catalog operations

type ListCoursesInput struct {
	Area     []string `query:"area" doc:"Area filter; 'todas' means every area"`
	Modality []string `query:"modality" doc:"Modality filter"`
	Search   string   `query:"search" doc:"Case-insensitive match on title or description"`
}

type ListCoursesOutput struct {
	Body []dto.CourseResponseDTO `json:"body"`
}

type FeaturedCoursesInput struct{}

type CourseOptionsInput struct{}

type CourseOptionsOutput struct {
	Body []dto.CourseOptionDTO `json:"body"`
}

type GetCourseBySlugInput struct {
	Slug string `path:"slug" doc:"Course slug"`
}

type GetCourseOutput struct {
	Body dto.CourseResponseDTO `json:"body"`
}

// Admin course CRUD operations

type ListAdminCoursesInput struct{}

type GetCourseInput struct {
	CourseID string `path:"courseId" doc:"Course ID"`
}

type CreateCourseInput struct {
	Body dto.CourseSaveDTO `json:"body"`
}

type CreateCourseOutput struct {
	Body dto.CourseResponseDTO `json:"body"`
}

type UpdateCourseInput struct {
	CourseID string            `path:"courseId" doc:"Course ID"`
	Body     dto.CourseSaveDTO `json:"body"`
}

type UpdateCourseOutput struct {
	Body dto.CourseResponseDTO `json:"body"`
}

type DeleteCourseInput struct {
	CourseID string `path:"courseId" doc:"Course ID"`
}

type DeleteCourseOutput struct {
	// 204 No Content
}

type PreviewSlugInput struct {
	Title     string `query:"title" required:"true" doc:"Course title"`
	ExcludeID string `query:"excludeId" doc:"Course being edited"`
}

type PreviewSlugOutput struct {
	Body dto.SlugPreviewDTO `json:"body"`
}
