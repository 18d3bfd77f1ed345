package source

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hwg121/eProject-sub001/app/content"
)

const (
	DefaultRefreshInterval = 900
	DefaultTimeout         = 30
)

// Registry holds the source configuration of every content type. Types
// without a <type>.yml file in dir use the built-in defaults.
type Registry struct {
	dir     string
	baseURL string
	cache   map[content.Type]*Config
	mu      sync.RWMutex
}

func NewRegistry(dir, baseURL string) *Registry {
	return &Registry{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   make(map[content.Type]*Config),
	}
}

func (r *Registry) Run() error {
	loaded := make(map[content.Type]bool)

	if r.dir != "" {
		if _, err := os.Stat(r.dir); err == nil {
			files, err := filepath.Glob(filepath.Join(r.dir, "*.yml"))
			if err != nil {
				return fmt.Errorf("failed to find YML files: %w", err)
			}

			for _, file := range files {
				name := strings.TrimSuffix(filepath.Base(file), ".yml")
				t, err := content.ParseType(name)
				if err != nil {
					return fmt.Errorf("error loading %s: %w", file, err)
				}
				if loaded[t] {
					return fmt.Errorf("error loading %s: duplicate configuration for %s", file, t)
				}

				config, err := r.loadFile(t, file)
				if err != nil {
					return fmt.Errorf("error loading %s: %w", file, err)
				}
				loaded[t] = true

				slog.Debug("Configuration loaded", "type", t, "endpoint", config.Endpoint, "policy", config.FallbackPolicy, "enabled", config.Settings.Enabled)
			}
		}
	}

	for _, t := range content.Types {
		if loaded[t] {
			continue
		}
		if _, err := r.store(r.defaultConfig(t), "built-in defaults"); err != nil {
			return err
		}
	}

	return nil
}

// LoadConfig reloads the configuration of t from disk, falling back to the
// built-in defaults when no file exists.
func (r *Registry) LoadConfig(t content.Type) (*Config, error) {
	for _, file := range []string{r.getConfigFilePath(t), filepath.Join(r.dir, string(t)+"s.yml")} {
		if _, err := os.Stat(file); err == nil {
			return r.loadFile(t, file)
		}
	}
	return r.store(r.defaultConfig(t), "built-in defaults")
}

func (r *Registry) GetConfig(t content.Type) (*Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.cache[t]
	if !ok {
		return nil, fmt.Errorf("source config for '%s' not found", t)
	}
	return config, nil
}

func (r *Registry) GetConfigs() map[content.Type]*Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configsCopy := make(map[content.Type]*Config, len(r.cache))
	for k, v := range r.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (r *Registry) GetEnabledConfigs() map[content.Type]*Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := make(map[content.Type]*Config)
	for k, v := range r.cache {
		if v.Settings.Enabled {
			enabled[k] = v
		}
	}
	return enabled
}

func (r *Registry) GetConfigCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// Declarations is the resolution contract of every loaded type.
func (r *Registry) Declarations() map[content.Type]content.Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decls := make(map[content.Type]content.Declaration, len(r.cache))
	for t, config := range r.cache {
		decls[t] = config.Declaration()
	}
	return decls
}

func (r *Registry) loadFile(t content.Type, file string) (*Config, error) {
	config, err := r.parseConfig(t, file)
	if err != nil {
		return nil, err
	}
	return r.store(config, file)
}

func (r *Registry) store(config *Config, origin string) (*Config, error) {
	if err := r.validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", origin, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[config.Type] = config

	return config, nil
}

func (r *Registry) defaultConfig(t content.Type) *Config {
	decl := content.DefaultDeclaration(t)
	return &Config{
		Type:           t,
		Endpoint:       r.resolveEndpoint(string(t) + "s"),
		Format:         FormatJSON,
		FallbackPolicy: string(decl.Policy),
		SlugField:      decl.SlugField,
		TitleField:     decl.TitleField,
		Settings: ConfigSettings{
			Enabled:         true,
			RefreshInterval: DefaultRefreshInterval,
			Timeout:         DefaultTimeout,
		},
	}
}

func (r *Registry) parseConfig(t content.Type, file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Keys missing from the file keep their default values.
	config := r.defaultConfig(t)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Type = t
	config.Endpoint = r.resolveEndpoint(config.Endpoint)
	config.Format = Format(strings.ToLower(string(config.Format)))

	if config.Settings.RefreshInterval == 0 {
		config.Settings.RefreshInterval = DefaultRefreshInterval
	}
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = DefaultTimeout
	}

	return config, nil
}

// resolveEndpoint joins relative endpoints onto the content API base URL.
func (r *Registry) resolveEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || r.baseURL == "" {
		return endpoint
	}
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return r.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

func (r *Registry) validateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	if config.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(config.Endpoint)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("endpoint must be an absolute URL: %q", config.Endpoint)
	}

	switch config.Format {
	case FormatJSON, FormatFeed:
	default:
		return fmt.Errorf("invalid format: %q", config.Format)
	}

	policy, err := content.ParsePolicy(config.FallbackPolicy)
	if err != nil {
		return err
	}
	config.FallbackPolicy = string(policy)

	requiredFields := map[string]string{
		"slug field":  config.SlugField,
		"title field": config.TitleField,
	}

	for fieldName, fieldValue := range requiredFields {
		if strings.TrimSpace(fieldValue) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": config.Settings.RefreshInterval,
		"timeout":          config.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func (r *Registry) getConfigFilePath(t content.Type) string {
	return filepath.Join(r.dir, string(t)+".yml")
}
