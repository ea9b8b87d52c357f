package vision

import (
	"fmt"

	"cardintake/internal/config"
	"cardintake/internal/port"
)

// ProviderFactory is a function that creates a CardDescriber from a provider config.
type ProviderFactory func(cfg *config.VisionProviderConfig) (port.CardDescriber, error)

// registry of vision provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a vision provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewDescriber creates a CardDescriber from a provider config using the registered factory.
func NewDescriber(cfg *config.VisionProviderConfig) (port.CardDescriber, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
