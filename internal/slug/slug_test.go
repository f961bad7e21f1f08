package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gestão Hospitalar", "gestao-hospitalar"},
		{"Neuropsicologia: Avançada!", "neuropsicologia-avancada"},
		{"  Enfermagem   em  UTI  ", "enfermagem-em-uti"},
		{"Oncologia -- Clínica", "oncologia-clinica"},
		{"Fisioterapia Respiratória", "fisioterapia-respiratoria"},
		{"MBA 2025", "mba-2025"},
		{"Nutrição_Esportiva", "nutricaoesportiva"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyProperties(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		"Gestão Hospitalar",
		"Pós-Graduação em Farmácia Clínica",
		"ÁÉÍÓÚ ãõ çÇ",
		"a -- b",
		"Título\tcom\ttabs\ne quebras",
		"São Paulo / Manaus (2025)",
		"---",
	}
	for _, in := range inputs {
		got := Slugify(in)
		assert.Regexp(t, valid, got, in)
		assert.NotContains(t, got, "--", in)
		assert.Equal(t, got, Slugify(got), "slugify must be idempotent for %q", in)
	}
}
