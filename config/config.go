package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the client-side settings. The backend base URL defaults
// to a local development address when unset.
type Config struct {
	APIBaseURL string
	StatePath  string
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		APIBaseURL: getEnv("FOOD_API_URL", "http://localhost:8080"),
		StatePath:  getEnv("FOOD_CLIENT_STATE", "food_client_state.db"),
	}
}

// JWTSecret used by the development server to sign tokens — read from
// env or fallback
func JWTSecret() []byte {
	return []byte(getEnv("JWT_SECRET", "food_delivery_super_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
