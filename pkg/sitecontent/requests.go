package sitecontent

// Request DTOs

// CreateContentRequest contains parameters for creating a new content item.
// ID and timestamps are assigned by the service.
type CreateContentRequest struct {
	Type     ContentType            `json:"type"`
	Slug     string                 `json:"slug"`
	Title    string                 `json:"title"`
	Status   ContentStatus          `json:"status,omitempty"` // defaults to draft
	Content  map[string]interface{} `json:"content,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateContentRequest contains parameters for a partial update. Nil fields
// are left untouched on the stored item (merge semantics); UpdatedAt is
// always refreshed. There is no update path for Type or ID.
type UpdateContentRequest struct {
	Slug     *string                `json:"slug,omitempty"`
	Title    *string                `json:"title,omitempty"`
	Status   *ContentStatus         `json:"status,omitempty"`
	Content  map[string]interface{} `json:"content,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// BulkCreateContentRequest contains parameters for creating several content
// items in one call. Creation is sequential and best-effort, not atomic.
type BulkCreateContentRequest struct {
	Items []CreateContentRequest `json:"items"`
}
