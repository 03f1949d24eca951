package services

import "context"

// Enrichment is the AI-derived description and category for a product name.
type Enrichment struct {
	Description string
	Category    string
}

// ImageUploader stores a binary payload and returns a public URL for it.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// ProductEnricher derives a short description and a category from a product
// name.
type ProductEnricher interface {
	Enrich(ctx context.Context, name string) (*Enrichment, error)
}

// EnrichmentQueue accepts retry events for products that were persisted
// without AI fields because enrichment failed or timed out.
type EnrichmentQueue interface {
	PublishEnrichmentRetry(productID, name string) error
}
