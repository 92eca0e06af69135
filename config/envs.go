// Package config loads the server environment and parses maze parameter
// files.
package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Env holds the server configuration loaded from environment variables.
type Env struct {
	HostIP   string // Host IP for the server
	RESTPort int    // Port for the REST API

	DBHost     string // Hostname or IP address for MongoDB
	DBPort     int    // Port number for MongoDB
	DBUser     string // Username for MongoDB
	DBPassword string // Password for MongoDB
	DBName     string // Database name

	RedisHost string // Hostname or IP address for Redis
	RedisPort int    // Port number for Redis

	GinMode   string // Mode for the Gin framework (release, debug, test)
	JWTSecret string // Secret key for JWT signing
	JWTIssuer string // Issuer claim for JWTs
}

var (
	env     Env
	envOnce sync.Once
)

// Envs loads the environment once and returns it. Loading is lazy so the
// CLI, which needs no server environment, can import this package freely.
func Envs() Env {
	envOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
		}

		env = Env{
			HostIP:     mustGetEnv("HOST_IP"),
			RESTPort:   mustGetEnvAsInt("REST_PORT"),
			DBHost:     mustGetEnv("DB_HOST"),
			DBPort:     mustGetEnvAsInt("DB_PORT"),
			DBUser:     mustGetEnv("DB_USER"),
			DBPassword: mustGetEnv("DB_PASS"),
			DBName:     mustGetEnv("DB_NAME"),
			RedisHost:  mustGetEnv("REDIS_HOST"),
			RedisPort:  mustGetEnvAsInt("REDIS_PORT"),
			GinMode:    getEnvWithDefault("GIN_MODE", "release"),
			JWTSecret:  mustGetEnv("JWT_SECRET"),
			JWTIssuer:  mustGetEnv("JWT_ISSUER"),
		}
	})
	return env
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
