package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Course modalities.
const (
	ModalityPresencial = "presencial"
	ModalityOnline     = "online"
	ModalityEAD        = "ead"
	ModalityHibrido    = "hibrido"
)

// Course statuses.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Areas a course can be filed under in the admin form.
var Areas = []string{"enfermagem", "farmacia", "fisioterapia", "gestao", "nutricao", "oncologia"}

// Modalities lists every accepted modality value.
var Modalities = []string{ModalityPresencial, ModalityOnline, ModalityEAD, ModalityHibrido}

// Statuses lists every accepted status value.
var Statuses = []string{StatusDraft, StatusActive, StatusInactive}

// Course represents a catalog entry
type Course struct {
	ID                 string        `db:"id" json:"id"`
	Slug               string        `db:"slug" json:"slug"`
	Title              string        `db:"title" json:"title"`
	Description        string        `db:"description" json:"description"`
	ShortDescription   string        `db:"short_description" json:"short_description"`
	ImageURL           string        `db:"image_url" json:"image_url"`
	Area               string        `db:"area" json:"area"`
	Modality           string        `db:"modality" json:"modality"`
	ModalityComplement string        `db:"modality_complement" json:"modality_complement"`
	DurationHours      int           `db:"duration_hours" json:"duration_hours"`
	MinStudents        int           `db:"min_students" json:"min_students"`
	MaxStudents        int           `db:"max_students" json:"max_students"`
	StartDate          *time.Time    `db:"start_date" json:"start_date,omitempty"`
	Location           string        `db:"location" json:"location"`
	Investment         string        `db:"investment" json:"investment"`
	ContactUs          string        `db:"contact_us" json:"contact_us"`
	Status             string        `db:"status" json:"status"`
	Content            CourseContent `db:"content" json:"content"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

// CourseContent is the structured block shown in the course detail tabs.
type CourseContent struct {
	About                    string          `json:"about"`
	TargetAudience           string          `json:"target_audience"`
	Program                  []ProgramModule `json:"program"`
	CoordinationGeneral      string          `json:"coordination_general"`
	CoordinationGeneralPhoto string          `json:"coordination_general_photo"`
	Coordination             string          `json:"coordination"`
	CoordinationPhoto        string          `json:"coordination_photo"`
	Requirements             string          `json:"requirements"`
}

// UnmarshalJSON accepts requirements stored either as a string or as the
// older list-of-lines shape, which is joined with newlines.
func (c *CourseContent) UnmarshalJSON(data []byte) error {
	type plain CourseContent
	var raw struct {
		plain
		Requirements json.RawMessage `json:"requirements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CourseContent(raw.plain)
	c.Requirements = ""

	req := bytes.TrimSpace(raw.Requirements)
	if len(req) == 0 || bytes.Equal(req, []byte("null")) {
		return nil
	}
	if req[0] == '[' {
		var lines []string
		if err := json.Unmarshal(req, &lines); err != nil {
			return fmt.Errorf("decoding requirements list: %w", err)
		}
		c.Requirements = strings.Join(lines, "\n")
		return nil
	}
	return json.Unmarshal(req, &c.Requirements)
}

// ProgramModule is one entry of a course program.
type ProgramModule struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
}

// UnmarshalJSON normalizes legacy bare-string entries into {name, hours: 0}.
func (p *ProgramModule) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = ProgramModule{Name: name}
		return nil
	}
	type plain ProgramModule
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = ProgramModule(v)
	return nil
}

// CourseFilters is the transient filter state of a course list page.
// Empty Area or Modality means no restriction on that dimension.
type CourseFilters struct {
	Area     []string `json:"area"`
	Modality []string `json:"modality"`
	Search   string   `json:"search"`
}

// IsEmpty reports whether no criterion is set.
func (f CourseFilters) IsEmpty() bool {
	return len(f.Area) == 0 && len(f.Modality) == 0 && f.Search == ""
}
