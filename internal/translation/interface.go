// Package translation produces and applies the Arabic renditions of job
// postings. Translation is on demand: nothing is translated until an
// Arabic read or a posting write asks for it.
package translation

import (
	"context"

	"tabashir-engine/pkg/models"
)

// Provider defines the interface for translation providers.
type Provider interface {
	// TranslateJob renders the posting's localized fields into Arabic.
	TranslateJob(ctx context.Context, job models.JobPosting) (models.TranslatedFields, error)

	// IsHealthy checks if the provider is available.
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider.
	GetProviderName() string
}
