package catalog

import (
	"slices"

	"posgrad/internal/model"
)

// Session owns the filter state of one course list page. Child views read
// from it and report changes through its methods; the OnChange callback
// propagates every change back up to the page.
//
// A Session is not safe for concurrent use.
type Session struct {
	courses  []model.Course
	filters  model.CourseFilters
	latest   uint64
	onChange func(model.CourseFilters)
}

// NewSession creates a session with empty filters. onChange may be nil.
func NewSession(onChange func(model.CourseFilters)) *Session {
	return &Session{onChange: onChange}
}

// Filters returns a copy of the current criteria.
func (s *Session) Filters() model.CourseFilters {
	return model.CourseFilters{
		Area:     slices.Clone(s.filters.Area),
		Modality: slices.Clone(s.filters.Modality),
		Search:   s.filters.Search,
	}
}

// SetFilters replaces every criterion at once.
func (s *Session) SetFilters(f model.CourseFilters) {
	s.filters = Normalize(f)
	s.changed()
}

// ToggleArea adds or removes an area, checkbox style.
func (s *Session) ToggleArea(area string) {
	if area == AreaAll {
		s.SelectArea(area)
		return
	}
	s.filters.Area = toggle(s.filters.Area, area)
	s.changed()
}

// SelectArea restricts to a single area, radio style. AreaAll or "" clears
// the area restriction.
func (s *Session) SelectArea(area string) {
	if area == AreaAll || area == "" {
		s.filters.Area = nil
	} else {
		s.filters.Area = []string{area}
	}
	s.changed()
}

// ToggleModality adds or removes a modality, checkbox style.
func (s *Session) ToggleModality(modality string) {
	s.filters.Modality = toggle(s.filters.Modality, modality)
	s.changed()
}

// SetSearch replaces the search query.
func (s *Session) SetSearch(q string) {
	s.filters.Search = q
	s.changed()
}

// Begin issues a token for a course load. Only the load carrying the most
// recent token is accepted by Load.
func (s *Session) Begin() uint64 {
	s.latest++
	return s.latest
}

// Load installs the courses fetched under token. Results from superseded
// loads are discarded and Load reports false.
func (s *Session) Load(token uint64, courses []model.Course) bool {
	if token != s.latest {
		return false
	}
	s.courses = courses
	return true
}

// Visible returns the loaded courses narrowed by the current filters.
func (s *Session) Visible() []model.Course {
	return Apply(s.courses, s.filters)
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange(s.Filters())
	}
}

func toggle(values []string, v string) []string {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}
