package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Store.Dir != "data" {
		t.Errorf("Expected default data dir, got %s", cfg.Store.Dir)
	}
	if cfg.JWT.ExpiryHours != 168 {
		t.Errorf("Expected default JWT expiry 168, got %d", cfg.JWT.ExpiryHours)
	}
	if cfg.API.RateLimitActionsPerSec != 5 {
		t.Errorf("Expected default rate limit 5, got %d", cfg.API.RateLimitActionsPerSec)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_DIR", "/var/forum/data")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://forum.example.com,https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Store.Dir != "/var/forum/data" {
		t.Errorf("Expected overridden data dir, got %s", cfg.Store.Dir)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when JWT_SECRET is unset in production")
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed with secret set: %v", err)
	}
	if cfg.JWT.Secret != "a-real-secret" {
		t.Errorf("Expected configured secret, got %s", cfg.JWT.Secret)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "redis.internal", Port: "6380"}}
	if got := cfg.GetRedisAddr(); got != "redis.internal:6380" {
		t.Errorf("GetRedisAddr() = %s, want redis.internal:6380", got)
	}
}
