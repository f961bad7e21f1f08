// Package route maps site paths to the page that renders them.
package route

import "strings"

// Page identifies a page of the site.
type Page string

const (
	PageHome         Page = "home"
	PageCourses      Page = "courses"
	PageCourseDetail Page = "course-detail"
	PageAbout        Page = "about"
	PageAdminLogin   Page = "admin-login"
	PageAdminSetup   Page = "admin-setup"
	PageAdminHome    Page = "admin-dashboard"
	PageAdminCourses Page = "admin-courses"
	PageCourseNew    Page = "admin-course-new"
	PageCourseEdit   Page = "admin-course-edit"
)

// Match is the resolved page plus the trailing path segment for pages that
// take a parameter (course slug, course id).
type Match struct {
	Page  Page
	Param string
}

// IsAdmin reports whether the page belongs to the admin area.
func (m Match) IsAdmin() bool {
	return strings.HasPrefix(string(m.Page), "admin-")
}

type rule struct {
	path   string
	prefix bool
	page   Page
}

// First match wins. No normalization of trailing slashes, query strings or
// case happens here.
var rules = []rule{
	{path: "/", page: PageHome},
	{path: "/cursos", page: PageCourses},
	{path: "/curso/", prefix: true, page: PageCourseDetail},
	{path: "/sobre", page: PageAbout},
	{path: "/admin/login", page: PageAdminLogin},
	{path: "/admin/setup", page: PageAdminSetup},
	{path: "/admin", page: PageAdminHome},
	{path: "/admin/courses", page: PageAdminCourses},
	{path: "/admin/courses/new", page: PageCourseNew},
	{path: "/admin/courses/edit/", prefix: true, page: PageCourseEdit},
}

// Resolve returns the page for path, falling back to the home page.
func Resolve(path string) Match {
	for _, r := range rules {
		if r.prefix {
			if strings.HasPrefix(path, r.path) {
				return Match{Page: r.page, Param: lastSegment(path)}
			}
			continue
		}
		if path == r.path {
			return Match{Page: r.page}
		}
	}
	return Match{Page: PageHome}
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
