package translation

import (
	"fmt"

	"tabashir-engine/internal/config"
	"tabashir-engine/internal/translation/providers"
)

// Factory creates translation provider instances.
type Factory struct {
	config *config.Config
}

// NewFactory creates a new provider factory.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateProvider creates a translation provider based on the configuration.
func (f *Factory) CreateProvider() (Provider, error) {
	switch f.config.Translator.Provider {
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", f.config.Translator.Provider)
	}
}

// GetSupportedProviders returns the list of supported providers.
func (f *Factory) GetSupportedProviders() []string {
	return []string{"claude"}
}
