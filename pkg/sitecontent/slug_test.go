package sitecontent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"CleanSlugUnchanged", "garden-planner", "garden-planner"},
		{"Uppercase", "Garden-Planner", "garden-planner"},
		{"SpacesBecomeHyphens", "spring color palette", "spring-color-palette"},
		{"Diacritics", "café-für-niños", "cafe-fur-ninos"},
		{"PunctuationCollapses", "hello!!world", "hello-world"},
		{"LeadingTrailingStripped", "--about--", "about"},
		{"Numbers", "portfolio-2026", "portfolio-2026"},
		{"OnlyPunctuation", "!!!", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sitecontent.NormalizeSlug(tt.input))
		})
	}
}
