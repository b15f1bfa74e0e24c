package driving

import "github.com/custodia-labs/similar/internal/core/domain"

// SettingsService reads and updates the persisted configuration.
type SettingsService interface {
	// Get returns the settings with defaults applied to absent keys.
	Get() (domain.Settings, error)
	// Set parses value for key, validates it and persists it.
	Set(key, value string) error
	// Keys returns the recognised setting keys.
	Keys() []string
}
