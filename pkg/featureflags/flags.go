// ABOUTME: Feature flag management for optional server surfaces
// ABOUTME: Flags come from FEATURE_* environment variables with per-flag defaults

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// TTSEnabled exposes /tts and /voices
	TTSEnabled FeatureFlag = "tts_enabled"

	// HeadlinesEnabled exposes /headlines
	HeadlinesEnabled FeatureFlag = "headlines_enabled"

	// RateLimitEnabled enables per-IP rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"

	// PrewarmEnabled runs the prewarm worker pool and exposes /prewarm
	PrewarmEnabled FeatureFlag = "prewarm_enabled"
)

// Defaults holds the state of each flag when nothing overrides it
var Defaults = map[FeatureFlag]bool{
	TTSEnabled:       true,
	HeadlinesEnabled: true,
	RateLimitEnabled: true,
	PrewarmEnabled:   false,
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
	}
}

// IsEnabled checks overrides, then the environment, then Defaults
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	if enabled, ok := m.overrides[flag]; ok {
		m.mu.RUnlock()
		return enabled
	}
	m.mu.RUnlock()

	value := strings.ToLower(strings.TrimSpace(os.Getenv(m.prefix + strings.ToUpper(string(flag)))))
	switch value {
	case "true", "1", "enabled", "on":
		return true
	case "false", "0", "disabled", "off":
		return false
	}
	return Defaults[flag]
}

// SetEnabled sets a feature flag's state (mainly for testing)
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		flags[flag] = m.IsEnabled(ctx, flag)
	}
	return flags
}

// StaticManager implements Manager with static configuration
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{
		flags: flags,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool)
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}

// Snapshot renders a manager's flags with string keys
func Snapshot(m Manager) map[string]bool {
	all := m.GetAllFlags()
	out := make(map[string]bool, len(all))
	for k, v := range all {
		out[string(k)] = v
	}
	return out
}
