package config

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL string
	SupabaseKey string
	RedisAddr   string
	ClassifyURL string
	ReportDir   string
}

// envFiles is the cascade the sync scripts have always used; the first
// file that defines a key wins because godotenv never overrides a value
// that is already set.
var envFiles = []string{".env", ".env.development", ".env.local"}

func LoadConfig() (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	cfg := &Config{
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		ClassifyURL: os.Getenv("CLASSIFY_URL"),
		ReportDir:   os.Getenv("DRIVEMETA_REPORT_DIR"),
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "docs/script-reports"
	}
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY environment variables are required")
	}
	return cfg, nil
}

// KeyClaims is what we can read out of a Supabase API key without
// verifying it: the key role and its expiry.
type KeyClaims struct {
	Role      string
	ExpiresAt time.Time
}

// InspectKey parses the Supabase key as an unverified JWT. Mutating
// commands need a service_role key; an anon key will pass RLS-filtered
// reads but fail writes, which is worth a warning before a long run.
func InspectKey(key string) (*KeyClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return nil, fmt.Errorf("supabase key is not a JWT: %w", err)
	}
	kc := &KeyClaims{}
	if role, ok := claims["role"].(string); ok {
		kc.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		kc.ExpiresAt = exp.Time
	}
	return kc, nil
}

// ExpiresSoon reports whether the key expires within 30 days.
func (k *KeyClaims) ExpiresSoon(now time.Time) bool {
	if k.ExpiresAt.IsZero() {
		return false
	}
	return k.ExpiresAt.Before(now.Add(30 * 24 * time.Hour))
}
