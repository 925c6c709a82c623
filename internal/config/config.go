package config

import "os"

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	CORSOrigin  string
}

// Load reads configuration from the environment with development defaults.
// JWT secrets are read lazily by the auth package.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=hospital sslmode=disable"),
		Env:         getEnv("APP_ENV", "development"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
