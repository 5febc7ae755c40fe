package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

// Repository implements sitecontent.Repository using in-memory storage.
//
// The secondary maps mirror the store's hash-only secondary indexes: exact
// match only, many items per key, no uniqueness enforced.
type Repository struct {
	mu       sync.RWMutex
	items    map[string]*sitecontent.ContentItem
	bySlug   map[string][]string                    // slug -> []id
	byType   map[sitecontent.ContentType][]string   // type -> []id
	byStatus map[sitecontent.ContentStatus][]string // status -> []id
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		items:    make(map[string]*sitecontent.ContentItem),
		bySlug:   make(map[string][]string),
		byType:   make(map[sitecontent.ContentType][]string),
		byStatus: make(map[sitecontent.ContentStatus][]string),
	}
}

var _ sitecontent.Repository = (*Repository)(nil)

func (r *Repository) CreateContent(ctx context.Context, item *sitecontent.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	itemCopy := copyItem(item)
	r.items[item.ID] = itemCopy
	r.index(itemCopy)

	return nil
}

func (r *Repository) GetContent(ctx context.Context, id string) (*sitecontent.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, sitecontent.ErrContentNotFound
	}
	return copyItem(item), nil
}

func (r *Repository) GetContentBySlug(ctx context.Context, slug string, contentType *sitecontent.ContentType) (*sitecontent.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.bySlug[slug] {
		item, exists := r.items[id]
		if !exists {
			continue
		}
		if contentType != nil && item.Type != *contentType {
			continue
		}
		return copyItem(item), nil
	}
	return nil, sitecontent.ErrContentNotFound
}

func (r *Repository) UpdateContent(ctx context.Context, item *sitecontent.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists {
		return sitecontent.ErrContentNotFound
	}

	r.unindex(existing)
	itemCopy := copyItem(item)
	r.items[item.ID] = itemCopy
	r.index(itemCopy)

	return nil
}

func (r *Repository) DeleteContent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return sitecontent.ErrContentNotFound
	}

	r.unindex(item)
	delete(r.items, id)
	return nil
}

func (r *Repository) ListContent(ctx context.Context, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sitecontent.ContentItem
	for _, item := range r.items {
		if filters.Matches(item) {
			result = append(result, copyItem(item))
		}
	}

	// Sort by created_at descending for a stable-ish listing
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) CountContent(ctx context.Context, filters sitecontent.ListFilters) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if filters.Matches(item) {
			count++
		}
	}
	return count, nil
}

// index and unindex maintain the secondary lookup maps. Callers must hold
// the write lock.

func (r *Repository) index(item *sitecontent.ContentItem) {
	r.bySlug[item.Slug] = append(r.bySlug[item.Slug], item.ID)
	r.byType[item.Type] = append(r.byType[item.Type], item.ID)
	r.byStatus[item.Status] = append(r.byStatus[item.Status], item.ID)
}

func (r *Repository) unindex(item *sitecontent.ContentItem) {
	r.bySlug[item.Slug] = removeID(r.bySlug[item.Slug], item.ID)
	r.byType[item.Type] = removeID(r.byType[item.Type], item.ID)
	r.byStatus[item.Status] = removeID(r.byStatus[item.Status], item.ID)
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func copyItem(item *sitecontent.ContentItem) *sitecontent.ContentItem {
	itemCopy := *item
	itemCopy.Content = copyMap(item.Content)
	itemCopy.Metadata = copyMap(item.Metadata)
	return &itemCopy
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(m))
	for k, v := range m {
		dst[k] = v
	}
	return dst
}
