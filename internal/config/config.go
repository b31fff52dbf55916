package config

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
)

const defaultExpiresIn = 3600

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Token    TokenConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TokenConfig carries the key material for the bearer-token protocol.
// PrivateKey is set only on the identity service, PublicKey only on the
// downstream service; Passphrase is shared by both and never transmitted.
type TokenConfig struct {
	PrivateKeyB64 string
	PublicKeyB64  string
	Passphrase    string
	ExpiresIn     int64
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
			Mode: getenv("APP_MODE", "debug"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Token: TokenConfig{
			PrivateKeyB64: os.Getenv("JWT_PRIVATE_KEY"),
			PublicKeyB64:  os.Getenv("JWT_PUBLIC_KEY"),
			Passphrase:    os.Getenv("JWT_KEY"),
			ExpiresIn:     expiresIn(os.Getenv("JWT_EXPIRES_IN")),
		},
	}
}

// SigningKey decodes and parses the RSA private key. Missing or invalid
// key material is fatal at startup, never a per-request condition.
func (c TokenConfig) SigningKey() (*rsa.PrivateKey, error) {
	pem, err := decodeKey(c.PrivateKeyB64, "JWT_PRIVATE_KEY")
	if err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotConfigured, "invalid JWT_PRIVATE_KEY", err)
	}
	return key, nil
}

// VerifyKey decodes and parses the RSA public key for the downstream
// verifier.
func (c TokenConfig) VerifyKey() (*rsa.PublicKey, error) {
	pem, err := decodeKey(c.PublicKeyB64, "JWT_PUBLIC_KEY")
	if err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotConfigured, "invalid JWT_PUBLIC_KEY", err)
	}
	return key, nil
}

func decodeKey(b64, name string) ([]byte, error) {
	if b64 == "" {
		return nil, apperr.E(apperr.KindNotConfigured, fmt.Sprintf("%s is required", name))
	}
	pem, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotConfigured, fmt.Sprintf("%s is not valid base64", name), err)
	}
	return pem, nil
}

// expiresIn falls back to the default window when the variable is unset
// or unparsable.
func expiresIn(raw string) int64 {
	if raw == "" {
		return defaultExpiresIn
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return defaultExpiresIn
	}
	return parsed
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
