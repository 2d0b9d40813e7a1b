package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "copydesk/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the draft source connector.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the origin of the content-management system
	// (e.g. "https://boingboing.net").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Username and AppPassword form the credential pair for the source API.
	// Both are required in fresh mode.
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	AppPassword string `json:"app_password,omitempty" yaml:"app_password,omitempty"`

	// PerPage bounds the size of a single pending-drafts request (default 50).
	PerPage int `json:"per_page" yaml:"per_page"`

	// CachePath is the JSON snapshot written after a fresh fetch and read
	// in cached mode (default "pending-cache.json").
	CachePath string `json:"cache_path" yaml:"cache_path"`
}

// AIConfig holds shared settings for stages that call the transformation service.
type AIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the transformation service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of rate-limit retries per call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// EditorConfig holds settings for the copy-editing stage.
type EditorConfig struct {
	AIConfig `yaml:",inline"`

	// MaxTokens bounds the completion size (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// RelatedConfig holds settings for the related-content finder.
type RelatedConfig struct {
	AIConfig `yaml:",inline"`

	// Origin is the publisher's canonical origin; candidate URLs outside it
	// are discarded (default "https://boingboing.net").
	Origin string `json:"origin" yaml:"origin"`

	// MaxLinks caps the related links kept per draft (default 3).
	MaxLinks int `json:"max_links" yaml:"max_links"`
}

// RenderConfig holds settings for artifact rendering.
type RenderConfig struct {
	// OutDir is the directory rendered artifacts are written to (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// CatalogConfig holds settings for the catalog index updater.
type CatalogConfig struct {
	// IndexPath is the catalog index document (default "index.html").
	IndexPath string `json:"index_path" yaml:"index_path"`
}

// HistoryConfig holds settings for the processing journal.
type HistoryConfig struct {
	// DBPath is the SQLite journal file (default "history.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Source  SourceConfig  `json:"source" yaml:"source"`
	Editor  EditorConfig  `json:"editor" yaml:"editor"`
	Related RelatedConfig `json:"related" yaml:"related"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	History HistoryConfig `json:"history" yaml:"history"`
}
