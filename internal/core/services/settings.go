package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyThreshold   = "cluster.threshold"
	KeyIndexDir    = "index.dir_name"
	KeyExpandTerms = "index.expand_terms"
	KeyWorkers     = "query.workers"
	KeyColor       = "output.color"
)

type settingKind int

const (
	kindInt settingKind = iota
	kindString
	kindBool
)

var settingKinds = map[string]settingKind{
	KeyThreshold:   kindInt,
	KeyIndexDir:    kindString,
	KeyExpandTerms: kindInt,
	KeyWorkers:     kindInt,
	KeyColor:       kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. On a validation error the
// stored settings are returned along with the error.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := s.load()
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("%s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// load reads the stored values over the defaults without validating them.
func (s *SettingsService) load() domain.Settings {
	settings := domain.DefaultSettings()

	if _, ok := s.configStore.Get(KeyThreshold); ok {
		settings.Cluster.Threshold = s.configStore.GetInt(KeyThreshold)
		settings.Cluster.HasThreshold = true
	}
	if v := s.configStore.GetString(KeyIndexDir); v != "" {
		settings.Index.DirName = v
	}
	if _, ok := s.configStore.Get(KeyExpandTerms); ok {
		settings.Index.ExpandTerms = s.configStore.GetInt(KeyExpandTerms)
	}
	if _, ok := s.configStore.Get(KeyWorkers); ok {
		settings.Query.Workers = s.configStore.GetInt(KeyWorkers)
	}
	if _, ok := s.configStore.Get(KeyColor); ok {
		settings.Output.Color = s.configStore.GetBool(KeyColor)
	}
	return settings
}

// Set parses value according to key, checks it and persists it. Only the
// new value is checked, so a file holding other invalid values can still
// be repaired one key at a time.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSettings, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidSettings, key, value)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidSettings, key, value)
		}
		parsed = b
	default:
		parsed = value
	}

	candidate := domain.DefaultSettings()
	apply(&candidate, key, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func apply(settings *domain.Settings, key string, value any) {
	switch key {
	case KeyThreshold:
		settings.Cluster.Threshold = value.(int)
		settings.Cluster.HasThreshold = true
	case KeyIndexDir:
		settings.Index.DirName = value.(string)
	case KeyExpandTerms:
		settings.Index.ExpandTerms = value.(int)
	case KeyWorkers:
		settings.Query.Workers = value.(int)
	case KeyColor:
		settings.Output.Color = value.(bool)
	}
}
