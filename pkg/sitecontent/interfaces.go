package sitecontent

import "context"

// Repository defines the interface for content item persistence.
//
// GetBySlug and List are backed by single-attribute secondary indexes on the
// store: exact-match lookup only, and no per-index uniqueness. Multiple items
// may legally share a slug; slug uniqueness in practice is an application
// concern, not a store guarantee.
type Repository interface {
	CreateContent(ctx context.Context, item *ContentItem) error
	GetContent(ctx context.Context, id string) (*ContentItem, error)
	// GetContentBySlug returns the first item matching slug, optionally
	// narrowed by content type. Returns ErrContentNotFound when no item
	// matches.
	GetContentBySlug(ctx context.Context, slug string, contentType *ContentType) (*ContentItem, error)
	UpdateContent(ctx context.Context, item *ContentItem) error
	// DeleteContent removes the item permanently. There is no tombstone and
	// no cascading cleanup; content items are standalone.
	DeleteContent(ctx context.Context, id string) error
	// ListContent returns items matching the filters. Order is store-defined
	// and not guaranteed stable.
	ListContent(ctx context.Context, filters ListFilters) ([]*ContentItem, error)
	CountContent(ctx context.Context, filters ListFilters) (int, error)
}

// EventSink defines the interface for content lifecycle event handling
type EventSink interface {
	// ContentCreated is fired when a content item is created
	ContentCreated(ctx context.Context, item *ContentItem) error

	// ContentUpdated is fired when a content item is updated
	ContentUpdated(ctx context.Context, item *ContentItem) error

	// ContentDeleted is fired when a content item is deleted
	ContentDeleted(ctx context.Context, id string) error
}
