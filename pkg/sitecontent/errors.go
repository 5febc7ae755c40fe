package sitecontent

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrContentNotFound indicates a content item was not found
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidContentType indicates an unknown content type
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidContentStatus indicates an unknown content status
	ErrInvalidContentStatus = errors.New("invalid content status")

	// ErrInvalidPayload indicates the content payload failed shape validation
	ErrInvalidPayload = errors.New("invalid content payload")

	// ErrSlugRequired indicates a create request with an empty slug
	ErrSlugRequired = errors.New("slug is required")

	// ErrTitleRequired indicates a create request with an empty title
	ErrTitleRequired = errors.New("title is required")
)

// ContentError represents an error related to a content operation
type ContentError struct {
	ContentID string
	Op        string
	Err       error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("content operation %s failed for content %s: %v", e.Op, e.ContentID, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// BulkCreateError reports a failed bulk create. Bulk creation is not
// transactional: items before Index were already committed and stay
// committed. Committed holds those items so callers can reconcile.
type BulkCreateError struct {
	Index     int
	Committed []*ContentItem
	Err       error
}

func (e *BulkCreateError) Error() string {
	return fmt.Sprintf("bulk create failed at item %d after committing %d items: %v", e.Index, len(e.Committed), e.Err)
}

func (e *BulkCreateError) Unwrap() error {
	return e.Err
}
