package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"safelogist/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Endpoint   EndpointSettings   `toml:"endpoint"`
	Search     SearchSettings     `toml:"search"`
	Navigation NavigationSettings `toml:"navigation"`
	Log        LogSettings        `toml:"log"`
}

// EndpointSettings points at the remote company lookup
type EndpointSettings struct {
	URL       string `toml:"url" validate:"required,url"`
	TimeoutMs int    `toml:"timeout_ms" validate:"gte=0"` // 0 means no client-side timeout
}

// SearchSettings tunes the incremental search box
type SearchSettings struct {
	DebounceMs     int    `toml:"debounce_ms" validate:"gte=0,lte=5000"`
	MinQueryLength int    `toml:"min_query_length" validate:"gte=1,lte=64"`
	Limit          int    `toml:"limit" validate:"gte=1,lte=50"`
	CloseDelayMs   int    `toml:"close_delay_ms" validate:"gte=0,lte=5000"`
	EmptyText      string `toml:"empty_text" validate:"required"`
	LoadingText    string `toml:"loading_text" validate:"required"`
}

// NavigationSettings controls where selections lead
type NavigationSettings struct {
	Locale    string `toml:"locale" validate:"required,bcp47_language_tag"`
	Section   string `toml:"section" validate:"required,excludesall=/?#"`
	BasePath  string `toml:"base_path" validate:"omitempty,startswith=/"` // overrides locale + section
	SiteURL   string `toml:"site_url" validate:"omitempty,url"`
	Mode      string `toml:"mode" validate:"oneof=pager print"`
	PageLimit int    `toml:"page_limit" validate:"gte=1,lte=50"`
}

// LogSettings configures the log sink
type LogSettings struct {
	Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn error off"`
	File  string `toml:"file"`
}

// DebounceDelay returns the debounce window
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// CloseDelay returns the dropdown collapse delay
func (c *Config) CloseDelay() time.Duration {
	return time.Duration(c.Search.CloseDelayMs) * time.Millisecond
}

// RequestTimeout returns the per-lookup timeout, zero for none
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Endpoint.TimeoutMs) * time.Millisecond
}

// BasePath returns the locale-prefixed path all navigation targets hang off,
// e.g. /ru/reviews
func (c *Config) BasePath() string {
	if c.Navigation.BasePath != "" {
		return strings.TrimRight(c.Navigation.BasePath, "/")
	}
	return "/" + CanonicalLocale(c.Navigation.Locale) + "/" + strings.Trim(c.Navigation.Section, "/")
}

// CanonicalLocale reduces a BCP 47 tag to the language prefix used in site
// URLs ("ru-RU" -> "ru"). Unparseable tags are lower-cased as-is.
func CanonicalLocale(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(tag))
	}
	base, _ := t.Base()
	return base.String()
}

// ValidationError lists every invalid field
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Fields, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// report toml key names instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks the config against its constraints
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Param() != "" {
			ve.Fields = append(ve.Fields, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			ve.Fields = append(ve.Fields, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return ve
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/safelogist/config.toml or the
// platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "safelogist", "config.toml")
}

// NewConfigService creates a config service bound to path, or to
// DefaultPath when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service that announces loads and
// saves on the bus
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the bound path. A missing file yields
// DefaultConfig.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the bound path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Endpoint: EndpointSettings{
			URL: "http://localhost:8080/api/companies/search",
		},
		Search: SearchSettings{
			DebounceMs:     300,
			MinQueryLength: 2,
			Limit:          10,
			CloseDelayMs:   300,
			EmptyText:      "Nothing found",
			LoadingText:    "Searching…",
		},
		Navigation: NavigationSettings{
			Locale:    "ru",
			Section:   "reviews",
			Mode:      "pager",
			PageLimit: 50,
		},
		Log: LogSettings{
			Level: "info",
			File:  "safelogist.log",
		},
	}
}
