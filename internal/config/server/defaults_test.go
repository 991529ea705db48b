package server

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Preferences.CookieTTLDays != 365 {
		t.Fatalf("unexpected default cookie ttl: %d", cfg.Preferences.CookieTTLDays)
	}
	if cfg.Preferences.DefaultViewMode != "card" {
		t.Fatalf("unexpected default view mode: %q", cfg.Preferences.DefaultViewMode)
	}
	if cfg.Metadata.SQLite.Path == "" {
		t.Fatal("expected a default sqlite path")
	}
	if cfg.Log.Level != "INFO" {
		t.Fatalf("unexpected default log level: %q", cfg.Log.Level)
	}
}

func TestLoadServerConfigOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("http.addr", ":9090")
	viper.Set("preferences.cookie_ttl_days", 30)

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("override not applied: %q", cfg.HTTP.Addr)
	}
	if cfg.Preferences.CookieTTLDays != 30 {
		t.Fatalf("override not applied: %d", cfg.Preferences.CookieTTLDays)
	}
}
