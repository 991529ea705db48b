package server

// HTTPServerConfig holds listener configuration for the web frontend
type HTTPServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	// SecureCookies switches preference cookies to SameSite=None with
	// the Secure attribute, for HTTPS deployments behind a proxy
	SecureCookies bool `mapstructure:"secure_cookies" yaml:"secure_cookies"`
}

// PreferencesServerConfig tunes the dual-channel preference store
type PreferencesServerConfig struct {
	CookieTTLDays   int    `mapstructure:"cookie_ttl_days"   yaml:"cookie_ttl_days"`
	DefaultPageSize int    `mapstructure:"default_page_size" yaml:"default_page_size"`
	DefaultViewMode string `mapstructure:"default_view_mode" yaml:"default_view_mode"`
}
