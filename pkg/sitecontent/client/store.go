package client

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

// ContentStore is a shared, cached view over the Content API. One store
// instance is meant to be injected into every consumer: concurrent readers of
// the same list query share a single in-flight request and a single cached
// result, and mutations update the cached lists in place (append on create,
// replace on update, drop on delete) without a refetch.
//
// The optimistic updates reflect the server's response item, so they stay
// consistent with any server-side defaulting. Reads honor their context: a
// fetch whose caller has gone away still completes for other waiters, but a
// canceled caller gets ctx.Err() instead of a stale commit.
//
// ContentStore is safe for concurrent use by multiple goroutines.
type ContentStore struct {
	client *Client
	group  singleflight.Group

	mu    sync.RWMutex
	lists map[string][]string                  // filter key -> ordered ids
	items map[string]*sitecontent.ContentItem // id -> item
}

// NewContentStore creates a store over the given client
func NewContentStore(c *Client) *ContentStore {
	return &ContentStore{
		client: c,
		lists:  make(map[string][]string),
		items:  make(map[string]*sitecontent.ContentItem),
	}
}

// List returns the items matching the filters, fetching from the API on a
// cold cache. Concurrent calls with the same filters share one request.
func (s *ContentStore) List(ctx context.Context, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	key := filterKey(filters)

	s.mu.RLock()
	ids, cached := s.lists[key]
	if cached {
		result := s.itemsForLocked(ids)
		s.mu.RUnlock()
		return result, nil
	}
	s.mu.RUnlock()

	return s.fetchList(ctx, key, filters)
}

// Refresh re-fetches a list from the API regardless of cache state
func (s *ContentStore) Refresh(ctx context.Context, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	return s.fetchList(ctx, filterKey(filters), filters)
}

func (s *ContentStore) fetchList(ctx context.Context, key string, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	// The flight is detached from any single caller so that one canceled
	// consumer does not fail the shared request.
	ch := s.group.DoChan("list:"+key, func() (interface{}, error) {
		items, err := s.client.GetAllContent(context.WithoutCancel(ctx), filters)
		if err != nil {
			return nil, err
		}
		s.commitList(key, items)
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*sitecontent.ContentItem), nil
	}
}

// GetByID returns an item by id, (nil, nil) when it genuinely does not
// exist, and a non-nil error on transport or server failure.
func (s *ContentStore) GetByID(ctx context.Context, id string) (*sitecontent.ContentItem, error) {
	s.mu.RLock()
	if item, ok := s.items[id]; ok {
		s.mu.RUnlock()
		return copyItem(item), nil
	}
	s.mu.RUnlock()

	ch := s.group.DoChan("id:"+id, func() (interface{}, error) {
		item, err := s.client.GetContentByID(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		s.commitItem(item)
		return item, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, ErrNotFound) {
				return nil, nil
			}
			return nil, res.Err
		}
		return copyItem(res.Val.(*sitecontent.ContentItem)), nil
	}
}

// GetBySlug returns an item by slug (optionally narrowed by type), with the
// same absence contract as GetByID.
func (s *ContentStore) GetBySlug(ctx context.Context, slug string, contentType *sitecontent.ContentType) (*sitecontent.ContentItem, error) {
	key := "slug:" + slug
	if contentType != nil {
		key += ":" + string(*contentType)
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		item, err := s.client.GetContentBySlug(context.WithoutCancel(ctx), slug, contentType)
		if err != nil {
			return nil, err
		}
		s.commitItem(item)
		return item, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, ErrNotFound) {
				return nil, nil
			}
			return nil, res.Err
		}
		return copyItem(res.Val.(*sitecontent.ContentItem)), nil
	}
}

// Create creates an item through the API and folds the stored item into every
// cached list it matches.
func (s *ContentStore) Create(ctx context.Context, req sitecontent.CreateContentRequest) (*sitecontent.ContentItem, error) {
	item, err := s.client.CreateContent(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items[item.ID] = copyItem(item)
	for key, ids := range s.lists {
		if keyMatches(key, item) && !containsID(ids, item.ID) {
			s.lists[key] = append(ids, item.ID)
		}
	}
	s.mu.Unlock()

	return item, nil
}

// Update applies a partial update through the API and replaces the cached
// copy. Lists whose filters the updated item no longer matches drop it.
func (s *ContentStore) Update(ctx context.Context, id string, req sitecontent.UpdateContentRequest) (*sitecontent.ContentItem, error) {
	item, err := s.client.UpdateContent(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items[item.ID] = copyItem(item)
	for key, ids := range s.lists {
		switch {
		case keyMatches(key, item) && !containsID(ids, item.ID):
			s.lists[key] = append(ids, item.ID)
		case !keyMatches(key, item):
			s.lists[key] = removeID(ids, item.ID)
		}
	}
	s.mu.Unlock()

	return item, nil
}

// Delete removes an item through the API and drops it from the cache
func (s *ContentStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteContent(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.items, id)
	for key, ids := range s.lists {
		s.lists[key] = removeID(ids, id)
	}
	s.mu.Unlock()

	return nil
}

// Invalidate drops all cached state. The next read of any query refetches.
func (s *ContentStore) Invalidate() {
	s.mu.Lock()
	s.lists = make(map[string][]string)
	s.items = make(map[string]*sitecontent.ContentItem)
	s.mu.Unlock()
}

func (s *ContentStore) commitList(key string, items []*sitecontent.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		s.items[item.ID] = copyItem(item)
	}
	s.lists[key] = ids
}

func (s *ContentStore) commitItem(item *sitecontent.ContentItem) {
	s.mu.Lock()
	s.items[item.ID] = copyItem(item)
	s.mu.Unlock()
}

// itemsForLocked resolves ids to item copies. Callers must hold at least the
// read lock.
func (s *ContentStore) itemsForLocked(ids []string) []*sitecontent.ContentItem {
	result := make([]*sitecontent.ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			result = append(result, copyItem(item))
		}
	}
	return result
}

// filterKey builds a canonical cache key for a list query
func filterKey(filters sitecontent.ListFilters) string {
	parts := make([]string, 0, 2)
	if filters.Type != nil {
		parts = append(parts, "type="+string(*filters.Type))
	}
	if filters.Status != nil {
		parts = append(parts, "status="+string(*filters.Status))
	}
	sort.Strings(parts)
	return strings.Join(parts, "&")
}

// keyMatches reports whether an item satisfies the filters encoded in a
// cache key.
func keyMatches(key string, item *sitecontent.ContentItem) bool {
	if key == "" {
		return true
	}
	for _, part := range strings.Split(key, "&") {
		name, value, _ := strings.Cut(part, "=")
		switch name {
		case "type":
			if string(item.Type) != value {
				return false
			}
		case "status":
			if string(item.Status) != value {
				return false
			}
		}
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
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
	if item == nil {
		return nil
	}
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
