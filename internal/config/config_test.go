package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envFrom(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "5000")
	}
	if cfg.Payment.Delay != 2*time.Second {
		t.Errorf("Payment.Delay = %v, want 2s", cfg.Payment.Delay)
	}
	if cfg.Payment.JobPrice != 100 || cfg.Payment.TelegramJobPrice != 150 {
		t.Errorf("prices = %v/%v, want 100/150", cfg.Payment.JobPrice, cfg.Payment.TelegramJobPrice)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(envFrom(nil)); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	cfg, err := LoadFrom(envFrom(map[string]string{
		"JWT_SECRET":      "x",
		"PORT":            "8080",
		"PAYMENT_DELAY":   "250ms",
		"JOB_PRICE":       "120",
		"CORS_ORIGINS":    "https://a.example, https://b.example",
		"AUTH_RATE_BURST": "3",
		"APP_ENV":         "production",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Payment.Delay != 250*time.Millisecond {
		t.Errorf("Payment.Delay = %v", cfg.Payment.Delay)
	}
	if cfg.Payment.JobPrice != 120 {
		t.Errorf("JobPrice = %v", cfg.Payment.JobPrice)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.AuthRateLimit.Burst != 3 {
		t.Errorf("Burst = %d", cfg.AuthRateLimit.Burst)
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	_, err := LoadFrom(envFrom(map[string]string{"JWT_SECRET": "x", "PAYMENT_DELAY": "soon"}))
	if err == nil {
		t.Fatal("expected error for bad PAYMENT_DELAY")
	}
}

func TestLoadFrom_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
port: "7000"
jwt_secret: from-file
payment:
  delay: 3s
  telegram_job_price: 175
log:
  level: debug
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(envFrom(map[string]string{"CONFIG_FILE": path, "PORT": "7001"}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "7001" {
		t.Errorf("Port = %q, want env override 7001", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.Payment.Delay != 3*time.Second {
		t.Errorf("Delay = %v", cfg.Payment.Delay)
	}
	if cfg.Payment.TelegramJobPrice != 175 {
		t.Errorf("TelegramJobPrice = %v", cfg.Payment.TelegramJobPrice)
	}
	if cfg.Payment.JobPrice != 100 {
		t.Errorf("JobPrice = %v, want default kept", cfg.Payment.JobPrice)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}
