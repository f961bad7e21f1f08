// Package catalog narrows the public course list by the visitor's filters.
package catalog

import (
	"slices"
	"strings"

	"posgrad/internal/model"
)

// AreaAll is the "todas" option of single-choice area pickers. Selecting it
// removes the area restriction instead of filtering by a literal value.
const AreaAll = "todas"

// Apply returns the courses that satisfy every non-empty criterion of f,
// in input order. Area and modality match by set membership; search is a
// case-insensitive substring of the title or the description.
func Apply(courses []model.Course, f model.CourseFilters) []model.Course {
	search := strings.ToLower(f.Search)
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if len(f.Area) > 0 && !slices.Contains(f.Area, c.Area) {
			continue
		}
		if len(f.Modality) > 0 && !slices.Contains(f.Modality, c.Modality) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Normalize drops blank and duplicate values and clears the area set when it
// carries the AreaAll sentinel.
func Normalize(f model.CourseFilters) model.CourseFilters {
	area := compact(f.Area)
	if slices.Contains(area, AreaAll) {
		area = nil
	}
	return model.CourseFilters{
		Area:     area,
		Modality: compact(f.Modality),
		Search:   f.Search,
	}
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
