package config

import (
	"os"
	"strings"
)

// Config holds the solver service's environment-sourced settings. Unlike
// the routing engine, whose constants are fixed rather than
// environment-tunable, the HTTP service around it needs the ordinary
// ambient settings: where to listen, where Postgres and Redis live, and
// how to verify a caller's token.
type Config struct {
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	CORSAllowedOrigins []string
	ExternalSolverURL  string
}

// Load reads Config from the process environment, applying the same
// defaults a local development run would need.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/cvrp_solver?sslmode=disable"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:          getEnv("JWT_SECRET", "development-secret-change-me"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ExternalSolverURL:  getEnv("EXTERNAL_SOLVER_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
