package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServerPort int

	DatabaseURL string

	JWTSecret  []byte
	BcryptCost int

	UploadDir string

	KafkaBrokers []string

	LogLevel string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		BcryptCost:   EnvIntDefault("BCRYPT_COST", bcrypt.DefaultCost),
		UploadDir:    EnvDefault("UPLOAD_DIR", "./uploads"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	return cfg
}

// MustValidate aborts startup when a required setting is missing. Running
// without a signing secret would mean running unauthenticated.
func (c *Config) MustValidate() {
	MustNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
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

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
