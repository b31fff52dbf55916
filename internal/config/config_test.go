package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
)

func testKeyPairB64(t *testing.T) (string, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})

	return base64.StdEncoding.EncodeToString(privPEM), base64.StdEncoding.EncodeToString(pubPEM)
}

func TestTokenConfigKeys(t *testing.T) {
	privB64, pubB64 := testKeyPairB64(t)

	cfg := TokenConfig{PrivateKeyB64: privB64, PublicKeyB64: pubB64}

	priv, err := cfg.SigningKey()
	if err != nil {
		t.Fatalf("SigningKey error: %v", err)
	}
	pub, err := cfg.VerifyKey()
	if err != nil {
		t.Fatalf("VerifyKey error: %v", err)
	}
	if priv.PublicKey.N.Cmp(pub.N) != 0 {
		t.Fatal("parsed public key does not match the private key")
	}
}

func TestTokenConfigMissingKeys(t *testing.T) {
	var cfg TokenConfig

	if _, err := cfg.SigningKey(); apperr.KindOf(err) != apperr.KindNotConfigured {
		t.Fatalf("missing private key: err = %v, want not_configured", err)
	}
	if _, err := cfg.VerifyKey(); apperr.KindOf(err) != apperr.KindNotConfigured {
		t.Fatalf("missing public key: err = %v, want not_configured", err)
	}
}

func TestTokenConfigInvalidKeys(t *testing.T) {
	cfg := TokenConfig{PrivateKeyB64: "!!not-base64!!", PublicKeyB64: base64.StdEncoding.EncodeToString([]byte("not a pem"))}

	if _, err := cfg.SigningKey(); apperr.KindOf(err) != apperr.KindNotConfigured {
		t.Fatalf("bad base64: err = %v, want not_configured", err)
	}
	if _, err := cfg.VerifyKey(); apperr.KindOf(err) != apperr.KindNotConfigured {
		t.Fatalf("bad pem: err = %v, want not_configured", err)
	}
}

func TestExpiresInDefaults(t *testing.T) {
	cases := map[string]int64{
		"":     3600,
		"abc":  3600,
		"0":    3600,
		"-5":   3600,
		"7200": 7200,
	}

	for raw, want := range cases {
		if got := expiresIn(raw); got != want {
			t.Errorf("expiresIn(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("JWT_KEY", "mysecretkey")
	t.Setenv("JWT_EXPIRES_IN", "1800")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Errorf("Redis.Addr = %q, want redis:6380", cfg.Redis.Addr)
	}
	if cfg.Token.Passphrase != "mysecretkey" {
		t.Errorf("Passphrase = %q", cfg.Token.Passphrase)
	}
	if cfg.Token.ExpiresIn != 1800 {
		t.Errorf("ExpiresIn = %d, want 1800", cfg.Token.ExpiresIn)
	}
}
