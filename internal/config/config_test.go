package config_test

import (
	"testing"
	"time"

	"github.com/Krtikgoswami/project001/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// keep the environment out of the picture
	for _, key := range []string{"APP_ENV", "PORT", "JWT_SECRET", "JWT_TTL_MINUTES", "ADMIN_EMAILS", "CORS_ORIGINS", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}

	if cfg.Port != 5174 {
		t.Errorf("Port = %d, want 5174", cfg.Port)
	}

	if cfg.JWTTTLMinutes != 60 || cfg.TokenTTL() != time.Hour {
		t.Errorf("token ttl = %v, want 1h", cfg.TokenTTL())
	}

	if len(cfg.AdminEmails) != 1 || cfg.AdminEmails[0] != "admin@gmail.com" {
		t.Errorf("AdminEmails = %v, want the original default", cfg.AdminEmails)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("dev defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("JWT_TTL_MINUTES", "30")
	t.Setenv("ADMIN_EMAILS", "ops@corp.com, root@corp.com")

	cfg := config.Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}

	if cfg.TokenTTL() != 30*time.Minute {
		t.Errorf("token ttl = %v, want 30m", cfg.TokenTTL())
	}

	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "root@corp.com" {
		t.Errorf("AdminEmails = %v", cfg.AdminEmails)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("explicit prod config should validate: %v", err)
	}
}

func TestValidateRejectsDefaultSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	cfg := config.Load()

	if err := cfg.Validate(); err == nil {
		t.Fatalf("prod with the fallback secret must not validate")
	}
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "0")

	cfg := config.Load()

	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero ttl must not validate")
	}
}
