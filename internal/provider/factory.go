package provider

import "go.uber.org/zap"

// New builds a provider from its config. A missing API key yields nil; a
// valid state meaning no remote tier is configured, not an error.
func New(cfg Config, logger *zap.Logger) Provider {
	if cfg.APIKey == "" {
		return nil
	}
	switch cfg.Type {
	case "anthropic":
		return NewAnthropicProvider(cfg, logger)
	default:
		return NewOpenAIProvider(cfg, logger)
	}
}
