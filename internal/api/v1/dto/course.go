package dto

import (
	"time"

	"posgrad/internal/model"
)

type ProgramModuleDTO struct {
	Name  string `json:"name"`
	Hours int    `json:"hours" minimum:"0" required:"false"`
}

type CourseContentDTO struct {
	About                    string             `json:"about" required:"false"`
	TargetAudience           string             `json:"target_audience" required:"false"`
	Program                  []ProgramModuleDTO `json:"program" required:"false"`
	CoordinationGeneral      string             `json:"coordination_general" required:"false"`
	CoordinationGeneralPhoto string             `json:"coordination_general_photo" required:"false"`
	Coordination             string             `json:"coordination" required:"false"`
	CoordinationPhoto        string             `json:"coordination_photo" required:"false"`
	Requirements             string             `json:"requirements" required:"false"`
}

type CourseResponseDTO struct {
	ID                 string           `json:"id"`
	Slug               string           `json:"slug"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	ShortDescription   string           `json:"short_description"`
	ImageURL           string           `json:"image_url"`
	Area               string           `json:"area"`
	Modality           string           `json:"modality"`
	ModalityComplement string           `json:"modality_complement"`
	DurationHours      int              `json:"duration_hours"`
	MinStudents        int              `json:"min_students"`
	MaxStudents        int              `json:"max_students"`
	StartDate          *string          `json:"start_date"`
	Location           string           `json:"location"`
	Investment         string           `json:"investment"`
	ContactUs          string           `json:"contact_us"`
	Status             string           `json:"status"`
	Content            CourseContentDTO `json:"content"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// CourseSaveDTO is the admin form payload for both create and update. An
// empty slug asks the server to derive one from the title.
type CourseSaveDTO struct {
	Title              string           `json:"title" maxLength:"300"`
	Slug               string           `json:"slug,omitempty" required:"false"`
	Description        string           `json:"description,omitempty" required:"false"`
	ShortDescription   string           `json:"short_description,omitempty" required:"false"`
	ImageURL           string           `json:"image_url,omitempty" required:"false"`
	Area               string           `json:"area"`
	Modality           string           `json:"modality,omitempty" required:"false"`
	ModalityComplement string           `json:"modality_complement,omitempty" required:"false"`
	DurationHours      int              `json:"duration_hours,omitempty" required:"false"`
	MinStudents        int              `json:"min_students,omitempty" required:"false"`
	MaxStudents        int              `json:"max_students,omitempty" required:"false"`
	StartDate          string           `json:"start_date,omitempty" required:"false" doc:"YYYY-MM-DD"`
	Location           string           `json:"location,omitempty" required:"false"`
	Investment         string           `json:"investment,omitempty" required:"false"`
	ContactUs          string           `json:"contact_us,omitempty" required:"false"`
	Status             string           `json:"status,omitempty" required:"false"`
	Content            CourseContentDTO `json:"content,omitempty" required:"false"`
}

type CourseOptionDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SlugPreviewDTO struct {
	Slug string `json:"slug"`
}

const dateLayout = "2006-01-02"

// NewCourseResponse maps a stored course to its JSON shape.
func NewCourseResponse(c *model.Course) CourseResponseDTO {
	resp := CourseResponseDTO{
		ID:                 c.ID,
		Slug:               c.Slug,
		Title:              c.Title,
		Description:        c.Description,
		ShortDescription:   c.ShortDescription,
		ImageURL:           c.ImageURL,
		Area:               c.Area,
		Modality:           c.Modality,
		ModalityComplement: c.ModalityComplement,
		DurationHours:      c.DurationHours,
		MinStudents:        c.MinStudents,
		MaxStudents:        c.MaxStudents,
		Location:           c.Location,
		Investment:         c.Investment,
		ContactUs:          c.ContactUs,
		Status:             c.Status,
		Content: CourseContentDTO{
			About:                    c.Content.About,
			TargetAudience:           c.Content.TargetAudience,
			Program:                  make([]ProgramModuleDTO, 0, len(c.Content.Program)),
			CoordinationGeneral:      c.Content.CoordinationGeneral,
			CoordinationGeneralPhoto: c.Content.CoordinationGeneralPhoto,
			Coordination:             c.Content.Coordination,
			CoordinationPhoto:        c.Content.CoordinationPhoto,
			Requirements:             c.Content.Requirements,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, m := range c.Content.Program {
		resp.Content.Program = append(resp.Content.Program, ProgramModuleDTO(m))
	}
	if c.StartDate != nil {
		d := c.StartDate.Format(dateLayout)
		resp.StartDate = &d
	}
	return resp
}

// NewCourseList maps a slice of courses, never returning nil.
func NewCourseList(courses []model.Course) []CourseResponseDTO {
	out := make([]CourseResponseDTO, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}

// ToModel converts the payload into a course. An unparsable start date is
// reported as an error.
func (d CourseSaveDTO) ToModel(id string) (*model.Course, error) {
	c := &model.Course{
		ID:                 id,
		Slug:               d.Slug,
		Title:              d.Title,
		Description:        d.Description,
		ShortDescription:   d.ShortDescription,
		ImageURL:           d.ImageURL,
		Area:               d.Area,
		Modality:           d.Modality,
		ModalityComplement: d.ModalityComplement,
		DurationHours:      d.DurationHours,
		MinStudents:        d.MinStudents,
		MaxStudents:        d.MaxStudents,
		Location:           d.Location,
		Investment:         d.Investment,
		ContactUs:          d.ContactUs,
		Status:             d.Status,
		Content: model.CourseContent{
			About:                    d.Content.About,
			TargetAudience:           d.Content.TargetAudience,
			CoordinationGeneral:      d.Content.CoordinationGeneral,
			CoordinationGeneralPhoto: d.Content.CoordinationGeneralPhoto,
			Coordination:             d.Content.Coordination,
			CoordinationPhoto:        d.Content.CoordinationPhoto,
			Requirements:             d.Content.Requirements,
		},
	}
	for _, m := range d.Content.Program {
		c.Content.Program = append(c.Content.Program, model.ProgramModule(m))
	}
	if d.StartDate != "" {
		t, err := time.Parse(dateLayout, d.StartDate)
		if err != nil {
			return nil, err
		}
		c.StartDate = &t
	}
	return c, nil
}
