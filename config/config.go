package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var load sync.Once

// Config returns the value of an environment variable, loading .env once
// as a fallback source for local development.
func Config(key string) string {
	load.Do(func() {
		godotenv.Load(".env")
	})
	return os.Getenv(key)
}

// MustConfig is Config for values the service cannot run without.
// A missing key stops startup instead of continuing with an empty
// (or worse, guessable) value.
func MustConfig(key string) string {
	value := Config(key)
	if value == "" {
		panic(fmt.Sprintf("required configuration %s is not set", key))
	}
	return value
}
