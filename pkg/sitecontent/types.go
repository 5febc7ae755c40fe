package sitecontent

import "time"

// ContentType is the domain type tagging what kind of site content an item is.
type ContentType string

// Content type constants (typed).
const (
	ContentTypePage       ContentType = "page"
	ContentTypePost       ContentType = "post"
	ContentTypeProject    ContentType = "project"
	ContentTypeService    ContentType = "service"
	ContentTypeTeamMember ContentType = "team-member"
)

// IsValid reports whether the content type is one of the known constants.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypePage, ContentTypePost, ContentTypeProject, ContentTypeService, ContentTypeTeamMember:
		return true
	}
	return false
}

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// IsValid reports whether the content status is one of the known constants.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// ContentItem is the single persisted domain entity: any piece of site
// content (page, post, project, service, or team member).
//
// Content holds the type-specific document payload. Its shape varies per
// Type (a project carries hero/overview/technologies/features/results/gallery
// sections, a team member carries role/bio/photo, and so on); the store never
// inspects it beyond what ValidatePayload checks at the API boundary.
// Metadata is an optional free-form map that is opaque end to end.
type ContentItem struct {
	ID        string                 `json:"id" dynamodbav:"id"`
	Type      ContentType            `json:"type" dynamodbav:"type"`
	Slug      string                 `json:"slug" dynamodbav:"slug"`
	Title     string                 `json:"title" dynamodbav:"title"`
	Status    ContentStatus          `json:"status" dynamodbav:"status"`
	Content   map[string]interface{} `json:"content" dynamodbav:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt" dynamodbav:"updatedAt"`
}

// ListFilters narrows a list operation. Nil fields mean no constraint on
// that attribute. Each filter maps to a single-attribute secondary index on
// the store, so only exact-match filtering is supported.
type ListFilters struct {
	Type   *ContentType
	Status *ContentStatus
}

// WithType returns ListFilters narrowed to the given content type.
func (f ListFilters) WithType(t ContentType) ListFilters {
	f.Type = &t
	return f
}

// WithStatus returns ListFilters narrowed to the given status.
func (f ListFilters) WithStatus(s ContentStatus) ListFilters {
	f.Status = &s
	return f
}

// Matches reports whether an item satisfies the filters.
func (f ListFilters) Matches(item *ContentItem) bool {
	if f.Type != nil && item.Type != *f.Type {
		return false
	}
	if f.Status != nil && item.Status != *f.Status {
		return false
	}
	return true
}
