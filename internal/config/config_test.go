package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "EMAIL_PROVIDER", "RATE_LIMIT_BURST", "MAX_BODY_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "ses" {
		t.Errorf("expected default email provider ses, got %s", cfg.EmailProvider)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("expected default burst 20, got %d", cfg.RateLimitBurst)
	}
	if cfg.MaxBodyBytes != 64*1024 {
		t.Errorf("expected default body cap 64KiB, got %d", cfg.MaxBodyBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LEADS_TABLE", "leads")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, *.b.example ,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REQUIRE_CONSENT", "true")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.LeadsTable != "leads" {
		t.Errorf("expected leads table, got %s", cfg.LeadsTable)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %q", cfg.EmailProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "*.b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("expected rps 2.5, got %f", cfg.RateLimitRPS)
	}
	if !cfg.RequireConsent {
		t.Error("expected consent to be required")
	}
}

func TestValidateRequiresLeadsTable(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != ErrMissingLeadsTable {
		t.Fatalf("expected ErrMissingLeadsTable, got %v", err)
	}

	cfg.LeadsTable = "leads"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotifierConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"ses with addresses", Config{EmailProvider: "ses", NotifyFromEmail: "f@x.com", NotifyToEmail: "t@x.com"}, true},
		{"ses missing recipient", Config{EmailProvider: "ses", NotifyFromEmail: "f@x.com"}, false},
		{"sendgrid with key", Config{EmailProvider: "sendgrid", SendGridAPIKey: "k", NotifyFromEmail: "f@x.com", NotifyToEmail: "t@x.com"}, true},
		{"sendgrid without key", Config{EmailProvider: "sendgrid", NotifyFromEmail: "f@x.com", NotifyToEmail: "t@x.com"}, false},
		{"provider none", Config{EmailProvider: "none", NotifyFromEmail: "f@x.com", NotifyToEmail: "t@x.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.NotifierConfigured(); got != tt.want {
				t.Errorf("NotifierConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
