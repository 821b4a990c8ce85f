package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fabdl/fabdl/internal/auth"
)

// Settings holds all configuration options.
type Settings struct {
	// Endpoint URL templates. AssetFormats uses {asset_uid}; DownloadInfo
	// uses {asset_uid} and {file_uid}.
	LibrarySearchURL string `json:"library_search_url"`
	AssetFormatsURL  string `json:"asset_formats_url"`
	DownloadInfoURL  string `json:"download_info_url"`

	// Authentication
	Cookies   map[string]string `json:"cookies"`
	UserAgent string            `json:"user_agent"`
	Headers   map[string]string `json:"headers,omitempty"`

	// Transport
	VerifySSL             bool    `json:"verify_ssl"`
	ConnectTimeoutSeconds float64 `json:"connect_timeout_seconds"`
	ReadTimeoutSeconds    float64 `json:"read_timeout_seconds"`
	RateLimitDelaySeconds float64 `json:"rate_limit_delay_seconds"`

	// Download settings
	OutputDir         string `json:"output_dir"`
	SortBy            string `json:"sort_by"`
	FormatCode        string `json:"format_code"`
	Platform          string `json:"platform"`
	ValidateManifests bool   `json:"validate_manifests"`
}

// DefaultSettings returns settings with default values. Endpoint URLs
// and cookies have no defaults; they must come from the settings file or
// flags.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		UserAgent:             "fabdl",
		VerifySSL:             true,
		ConnectTimeoutSeconds: 10,
		ReadTimeoutSeconds:    30,
		RateLimitDelaySeconds: 1.5,
		OutputDir:             filepath.Join(homeDir, "Downloads", "manifests"),
		SortBy:                "-createdAt",
		FormatCode:            "unreal-engine",
		Platform:              "Windows",
		ValidateManifests:     false,
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Endpoints converts the configured URLs to the transport's endpoint set.
func (s *Settings) Endpoints() auth.Endpoints {
	return auth.Endpoints{
		LibrarySearch: s.LibrarySearchURL,
		AssetFormats:  s.AssetFormatsURL,
		DownloadInfo:  s.DownloadInfoURL,
	}
}

// ToCookieConfig converts settings to a cookie provider configuration.
func (s *Settings) ToCookieConfig() auth.CookieConfig {
	return auth.CookieConfig{
		Cookies:            s.Cookies,
		Endpoints:          s.Endpoints(),
		UserAgent:          s.UserAgent,
		Headers:            s.Headers,
		InsecureSkipVerify: !s.VerifySSL,
		ConnectTimeout:     secondsToDuration(s.ConnectTimeoutSeconds),
		ReadTimeout:        secondsToDuration(s.ReadTimeoutSeconds),
	}
}

// RateLimitDelay returns the fixed inter-request delay as a duration.
func (s *Settings) RateLimitDelay() time.Duration {
	return secondsToDuration(s.RateLimitDelaySeconds)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
