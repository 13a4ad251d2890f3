package types

import "time"

const (
	// DefaultBaseURL is the public creature-data API root.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultPageSize is the number of records per grid page. The search
	// engine paginates its matches with the same size.
	DefaultPageSize = 12

	// DefaultNameIndexLimit is high enough to return every record in one
	// request to the collection endpoint.
	DefaultNameIndexLimit = 2000

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "dex-browser/0.1"
)

// HTTPConfig holds shared HTTP settings used by every component that talks
// to the upstream API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CatalogConfig holds settings for the browse, search, and detail components.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API root, without a trailing slash.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// PageSize is the grid page size (default 12).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// NameIndexLimit is the limit used for the one-off name index fetch (default 2000).
	NameIndexLimit int `json:"name_index_limit" yaml:"name_index_limit" mapstructure:"name_index_limit"`

	// MaxConcurrency bounds in-flight enrichment requests. Zero means unbounded.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency" mapstructure:"max_concurrency"`
}

// DefaultCatalogConfig returns the configuration used when nothing is set.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		BaseURL:        DefaultBaseURL,
		PageSize:       DefaultPageSize,
		NameIndexLimit: DefaultNameIndexLimit,
	}
}

// WithDefaults fills zero-valued fields from DefaultCatalogConfig.
// Timeout is left as given since zero is meaningful.
func (c CatalogConfig) WithDefaults() CatalogConfig {
	d := DefaultCatalogConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.NameIndexLimit <= 0 {
		c.NameIndexLimit = d.NameIndexLimit
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.MaxConcurrency < 0 {
		c.MaxConcurrency = 0
	}
	return c
}
