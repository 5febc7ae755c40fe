package sitecontent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

func TestContentTypeIsValid(t *testing.T) {
	tests := []struct {
		name        string
		contentType sitecontent.ContentType
		valid       bool
	}{
		{"page", sitecontent.ContentTypePage, true},
		{"post", sitecontent.ContentTypePost, true},
		{"project", sitecontent.ContentTypeProject, true},
		{"service", sitecontent.ContentTypeService, true},
		{"team-member", sitecontent.ContentTypeTeamMember, true},
		{"empty", sitecontent.ContentType(""), false},
		{"unknown", sitecontent.ContentType("article"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.contentType.IsValid())
		})
	}
}

func TestContentStatusIsValid(t *testing.T) {
	tests := []struct {
		name   string
		status sitecontent.ContentStatus
		valid  bool
	}{
		{"draft", sitecontent.ContentStatusDraft, true},
		{"published", sitecontent.ContentStatusPublished, true},
		{"archived", sitecontent.ContentStatusArchived, true},
		{"empty", sitecontent.ContentStatus(""), false},
		{"unknown", sitecontent.ContentStatus("live"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
		})
	}
}

func TestListFiltersMatches(t *testing.T) {
	item := &sitecontent.ContentItem{
		Type:   sitecontent.ContentTypeProject,
		Status: sitecontent.ContentStatusPublished,
	}

	var none sitecontent.ListFilters
	assert.True(t, none.Matches(item))

	assert.True(t, none.WithType(sitecontent.ContentTypeProject).Matches(item))
	assert.False(t, none.WithType(sitecontent.ContentTypePost).Matches(item))

	assert.True(t, none.WithStatus(sitecontent.ContentStatusPublished).Matches(item))
	assert.False(t, none.WithStatus(sitecontent.ContentStatusDraft).Matches(item))

	both := none.WithType(sitecontent.ContentTypeProject).WithStatus(sitecontent.ContentStatusPublished)
	assert.True(t, both.Matches(item))

	mismatch := none.WithType(sitecontent.ContentTypeProject).WithStatus(sitecontent.ContentStatusDraft)
	assert.False(t, mismatch.Matches(item))
}
