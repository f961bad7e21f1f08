package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"posgrad/internal/model"
)

// UnknownCourse labels submissions whose course no longer exists.
const UnknownCourse = "Curso não especificado"

// Message is a composed notification email.
type Message struct {
	Subject string
	HTML    string
}

var bodyTemplate = template.Must(template.New("contact").Parse(`
<h2>Novo contato recebido</h2>
<p><strong>Nome:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Telefone:</strong> {{.Phone}}</p>
<p><strong>Curso de interesse:</strong> {{.Course}}</p>
<p><strong>Tipo de interesse:</strong> {{.Interest}}</p>
<hr>
<p><small>Enviado em {{.SentAt}}</small></p>
`))

// Composer renders submissions into messages, printing timestamps in loc.
type Composer struct {
	loc *time.Location
	now func() time.Time
}

// NewComposer loads the named time zone; an empty name means UTC.
func NewComposer(timezone string) (*Composer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", timezone, err)
	}
	return &Composer{loc: loc, now: time.Now}, nil
}

// Compose builds the subject and HTML body for s.
func (c *Composer) Compose(s *model.ContactSubmission) (Message, error) {
	course := UnknownCourse
	if s.CourseTitle != nil && *s.CourseTitle != "" {
		course = *s.CourseTitle
	}
	label := s.InterestLabel()

	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, map[string]string{
		"Name":     s.Name,
		"Email":    s.Email,
		"Phone":    s.Phone,
		"Course":   course,
		"Interest": label,
		"SentAt":   c.now().In(c.loc).Format("02/01/2006, 15:04:05"),
	})
	if err != nil {
		return Message{}, fmt.Errorf("rendering contact email: %w", err)
	}
	return Message{
		Subject: fmt.Sprintf("Novo contato: %s - %s", label, course),
		HTML:    buf.String(),
	}, nil
}
