package sitecontent

import "context"

// Service defines the main interface for the content library
type Service interface {
	// Content operations
	CreateContent(ctx context.Context, req CreateContentRequest) (*ContentItem, error)
	// BulkCreateContent creates items sequentially. The batch is not
	// transactional: on failure it returns a *BulkCreateError describing
	// which items were already committed.
	BulkCreateContent(ctx context.Context, req BulkCreateContentRequest) ([]*ContentItem, error)
	GetContent(ctx context.Context, id string) (*ContentItem, error)
	GetContentBySlug(ctx context.Context, slug string, contentType *ContentType) (*ContentItem, error)
	// UpdateContent applies a partial update: only supplied fields change,
	// and UpdatedAt is refreshed. Last write wins on concurrent updates.
	UpdateContent(ctx context.Context, id string, req UpdateContentRequest) (*ContentItem, error)
	DeleteContent(ctx context.Context, id string) error
	ListContent(ctx context.Context, filters ListFilters) ([]*ContentItem, error)
	CountContent(ctx context.Context, filters ListFilters) (int, error)
}
