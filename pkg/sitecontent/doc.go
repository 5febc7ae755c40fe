// Package sitecontent provides the content layer for the Pixels & Petals
// site: a single ContentItem entity (pages, posts, projects, services, and
// team members) with pluggable repository backends.
//
// It exposes a Service interface that handles creation, slug and id lookup,
// partial (merge) updates, hard deletes, and filtered listing. Repository
// implementations are provided under subpackages: an in-memory store for
// tests and local development, and a DynamoDB store backed by a single table
// with hash-only secondary indexes on slug, type, and status.
//
// # Payload Strategy
//
// First-class fields (Type, Slug, Title, Status) are authoritative and
// indexed. The type-specific document lives in ContentItem.Content and the
// optional ContentItem.Metadata map; both are persisted as-is. ValidatePayload
// applies shallow per-type shape checks at the service boundary, but the
// store itself never inspects the payload.
package sitecontent
