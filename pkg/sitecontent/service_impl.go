package sitecontent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	eventSink  EventSink
	now        func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		eventSink: NewNoopEventSink(),
		now:       time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// Content operations

func (s *service) CreateContent(ctx context.Context, req CreateContentRequest) (*ContentItem, error) {
	req.Slug = NormalizeSlug(req.Slug)
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = ContentStatusDraft
	}

	now := s.now().UTC()
	item := &ContentItem{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Slug:      req.Slug,
		Title:     req.Title,
		Status:    status,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateContent(ctx, item); err != nil {
		return nil, &ContentError{ContentID: item.ID, Op: "create", Err: err}
	}

	// Events are advisory; the write already succeeded.
	_ = s.eventSink.ContentCreated(ctx, item)

	return item, nil
}

func (s *service) BulkCreateContent(ctx context.Context, req BulkCreateContentRequest) ([]*ContentItem, error) {
	committed := make([]*ContentItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		item, err := s.CreateContent(ctx, itemReq)
		if err != nil {
			return committed, &BulkCreateError{Index: i, Committed: committed, Err: err}
		}
		committed = append(committed, item)
	}
	return committed, nil
}

func (s *service) GetContent(ctx context.Context, id string) (*ContentItem, error) {
	item, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetContentBySlug(ctx context.Context, slug string, contentType *ContentType) (*ContentItem, error) {
	if contentType != nil && !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}
	return s.repository.GetContentBySlug(ctx, NormalizeSlug(slug), contentType)
}

func (s *service) UpdateContent(ctx context.Context, id string, req UpdateContentRequest) (*ContentItem, error) {
	item, err := s.repository.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		slug := NormalizeSlug(*req.Slug)
		if slug == "" {
			return nil, ErrSlugRequired
		}
		item.Slug = slug
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, ErrInvalidContentStatus
		}
		item.Status = *req.Status
	}
	if req.Content != nil {
		if err := ValidatePayload(item.Type, req.Content); err != nil {
			return nil, err
		}
		item.Content = req.Content
	}
	if req.Metadata != nil {
		item.Metadata = req.Metadata
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.repository.UpdateContent(ctx, item); err != nil {
		return nil, &ContentError{ContentID: id, Op: "update", Err: err}
	}

	// Events are advisory; the write already succeeded.
	_ = s.eventSink.ContentUpdated(ctx, item)

	return item, nil
}

func (s *service) DeleteContent(ctx context.Context, id string) error {
	if err := s.repository.DeleteContent(ctx, id); err != nil {
		return err
	}

	// Events are advisory; the delete already succeeded.
	_ = s.eventSink.ContentDeleted(ctx, id)

	return nil
}

func (s *service) ListContent(ctx context.Context, filters ListFilters) ([]*ContentItem, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, ErrInvalidContentType
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, ErrInvalidContentStatus
	}
	return s.repository.ListContent(ctx, filters)
}

func (s *service) CountContent(ctx context.Context, filters ListFilters) (int, error) {
	return s.repository.CountContent(ctx, filters)
}

func validateCreate(req CreateContentRequest) error {
	if !req.Type.IsValid() {
		return ErrInvalidContentType
	}
	if req.Slug == "" {
		return ErrSlugRequired
	}
	if req.Title == "" {
		return ErrTitleRequired
	}
	if req.Status != "" && !req.Status.IsValid() {
		return ErrInvalidContentStatus
	}
	if req.Content != nil {
		if err := ValidatePayload(req.Type, req.Content); err != nil {
			return err
		}
	}
	return nil
}
