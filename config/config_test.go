package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://127.0.0.1:27017" {
		t.Errorf("MongoURI = %q, want localhost default", cfg.MongoURI)
	}
	if cfg.Database != "community_connect" {
		t.Errorf("Database = %q, want community_connect", cfg.Database)
	}
	if !cfg.IsDevelopment() {
		t.Error("default AppEnv should be development")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db.internal:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
	if cfg.IsDevelopment() {
		t.Error("production AppEnv should not be development")
	}
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://community.example.edu")
	t.Setenv("BACKEND_URL", "")

	cfg := Load()
	origins := cfg.AllowedOrigins()

	found := false
	for _, o := range origins {
		if o == "https://community.example.edu" {
			found = true
		}
		if o == "" {
			t.Error("empty origins must be filtered out")
		}
	}
	if !found {
		t.Error("FRONTEND_URL should be in the allowed origins")
	}
}
