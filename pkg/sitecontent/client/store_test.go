package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/api"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/client"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/repo/memory"
)

// countingTransport counts round trips so tests can assert on cache behavior
type countingTransport struct {
	requests atomic.Int64
	base     http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests.Add(1)
	return t.base.RoundTrip(req)
}

func setupStore(t *testing.T) (*client.ContentStore, *countingTransport) {
	t.Helper()

	svc, err := sitecontent.New(sitecontent.WithRepository(memory.New()))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/content", api.NewContentHandler(svc).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	transport := &countingTransport{base: http.DefaultTransport}
	c := client.NewClient(server.URL, client.WithHTTPClient(&http.Client{Transport: transport}))
	return client.NewContentStore(c), transport
}

func TestContentStoreListCaching(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypeProject, Slug: "p1", Title: "P1",
	})
	require.NoError(t, err)
	before := transport.requests.Load()

	var filters sitecontent.ListFilters
	items, err := store.List(ctx, filters)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Second read of the same query is served from cache
	items, err = store.List(ctx, filters)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, before+1, transport.requests.Load())

	// A different query is its own cache entry
	_, err = store.List(ctx, filters.WithType(sitecontent.ContentTypeProject))
	require.NoError(t, err)
	assert.Equal(t, before+2, transport.requests.Load())
}

func TestContentStoreConcurrentListDedup(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypePage, Slug: "about", Title: "About",
	})
	require.NoError(t, err)
	before := transport.requests.Load()

	var filters sitecontent.ListFilters
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, listErr := store.List(ctx, filters)
			assert.NoError(t, listErr)
			assert.Len(t, items, 1)
		}()
	}
	wg.Wait()

	// All callers shared at most one in-flight request; later callers may
	// also have hit the committed cache.
	assert.LessOrEqual(t, transport.requests.Load(), before+1)
}

func TestContentStoreGetByID(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypePost, Slug: "spring", Title: "Spring",
	})
	require.NoError(t, err)
	before := transport.requests.Load()

	// Create committed the item, so this read is cache-only
	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, before, transport.requests.Load())

	// Mutating the returned copy must not leak into the cache
	got.Title = "Mutated"
	again, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring", again.Title)
}

func TestContentStoreGetByIDAbsent(t *testing.T) {
	store, _ := setupStore(t)

	item, err := store.GetByID(context.Background(), "no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestContentStoreGetBySlug(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypeService, Slug: "branding", Title: "Branding",
	})
	require.NoError(t, err)

	serviceType := sitecontent.ContentTypeService
	got, err := store.GetBySlug(ctx, "branding", &serviceType)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	missing, err := store.GetBySlug(ctx, "nope", nil)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentStoreOptimisticCreate(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	var filters sitecontent.ListFilters
	projects := filters.WithType(sitecontent.ContentTypeProject)
	drafts := filters.WithStatus(sitecontent.ContentStatusPublished)

	// Warm both list caches
	_, err := store.List(ctx, projects)
	require.NoError(t, err)
	_, err = store.List(ctx, drafts)
	require.NoError(t, err)
	before := transport.requests.Load()

	created, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypeProject, Slug: "p1", Title: "P1",
	})
	require.NoError(t, err)

	// The new draft project shows up in the matching list and not the other,
	// without any refetch.
	items, err := store.List(ctx, projects)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	published, err := store.List(ctx, drafts)
	require.NoError(t, err)
	assert.Empty(t, published)

	assert.Equal(t, before+1, transport.requests.Load()) // just the create
}

func TestContentStoreOptimisticUpdateMovesBetweenLists(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypeProject, Slug: "p1", Title: "P1",
	})
	require.NoError(t, err)

	var filters sitecontent.ListFilters
	draftList := filters.WithStatus(sitecontent.ContentStatusDraft)
	publishedList := filters.WithStatus(sitecontent.ContentStatusPublished)

	_, err = store.List(ctx, draftList)
	require.NoError(t, err)
	_, err = store.List(ctx, publishedList)
	require.NoError(t, err)
	before := transport.requests.Load()

	publishedStatus := sitecontent.ContentStatusPublished
	_, err = store.Update(ctx, created.ID, sitecontent.UpdateContentRequest{Status: &publishedStatus})
	require.NoError(t, err)

	drafts, err := store.List(ctx, draftList)
	require.NoError(t, err)
	assert.Empty(t, drafts)

	published, err := store.List(ctx, publishedList)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, created.ID, published[0].ID)

	assert.Equal(t, before+1, transport.requests.Load()) // just the update
}

func TestContentStoreDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sitecontent.CreateContentRequest{
		Type: sitecontent.ContentTypePage, Slug: "about", Title: "About",
	})
	require.NoError(t, err)

	var filters sitecontent.ListFilters
	_, err = store.List(ctx, filters)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	items, err := store.List(ctx, filters)
	require.NoError(t, err)
	assert.Empty(t, items)

	got, err := store.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestContentStoreInvalidate(t *testing.T) {
	store, transport := setupStore(t)
	ctx := context.Background()

	var filters sitecontent.ListFilters
	_, err := store.List(ctx, filters)
	require.NoError(t, err)
	before := transport.requests.Load()

	store.Invalidate()

	_, err = store.List(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, before+1, transport.requests.Load())
}

func TestContentStoreCanceledCaller(t *testing.T) {
	// The backend never answers, so the only way out is the caller's context.
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(block)

	store := client.NewContentStore(client.NewClient(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var filters sitecontent.ListFilters
	_, err := store.List(ctx, filters)
	assert.ErrorIs(t, err, context.Canceled)
}
