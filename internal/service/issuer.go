package service

import (
	"context"
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
	"github.com/gavilanm26/prueba-backend-fgs/internal/cache"
	"github.com/gavilanm26/prueba-backend-fgs/internal/crypto"
	"github.com/gavilanm26/prueba-backend-fgs/internal/model"
)

const (
	cacheKeyPrefix   = "token:"
	defaultExpiresIn = 3600
)

// tokenClaims is the signed payload: the encrypted identity envelope
// plus the standard issue/expiry timestamps.
type tokenClaims struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// IssuerService mints bearer tokens: credentials are validated, the
// identity is encrypted into an envelope, the envelope is signed with
// RS256, and the result is reused through a TTL cache keyed by username.
type IssuerService struct {
	users      UserValidator
	cache      cache.TokenCache
	signKey    *rsa.PrivateKey
	passphrase string
	expiresIn  int64
	logger     *zap.Logger
}

func NewIssuerService(users UserValidator, tokenCache cache.TokenCache, signKey *rsa.PrivateKey, passphrase string, expiresIn int64, logger *zap.Logger) (*IssuerService, error) {
	if signKey == nil {
		return nil, apperr.E(apperr.KindNotConfigured, "signing key is required")
	}
	if passphrase == "" {
		return nil, apperr.E(apperr.KindNotConfigured, "JWT_KEY is required")
	}
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return &IssuerService{
		users:      users,
		cache:      tokenCache,
		signKey:    signKey,
		passphrase: passphrase,
		expiresIn:  expiresIn,
		logger:     logger,
	}, nil
}

// GenerateToken runs the issuance state machine: validate credentials,
// check the cache, and on a miss encrypt, sign and store a fresh token.
// Invalid credentials reject before any cache access.
func (s *IssuerService) GenerateToken(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	userID, err := s.users.ValidateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid credentials")
	}

	cacheKey := cacheKeyPrefix + username
	entry, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		return nil, err
	}

	if entry.Value != "" {
		// Trust the store's own TTL; a non-positive remainder is clamped
		// to the default window rather than surfaced as zero.
		ttl := entry.TTL
		if ttl <= 0 {
			ttl = defaultExpiresIn
		}
		s.logger.Info("token reused from cache", zap.String("username", username))
		return &model.AuthResponse{AccessToken: entry.Value, ExpiresIn: ttl}, nil
	}

	payload := model.TokenPayload{Sub: userID, Username: username}
	envelope, err := crypto.Encrypt(payload, s.passphrase)
	if err != nil {
		s.logger.Error("payload encryption failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindInternal, "Error generating token", err)
	}

	accessToken, err := s.sign(envelope)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindInternal, "Error generating token", err)
	}

	if err := s.cache.Save(ctx, cacheKey, accessToken, s.expiresIn); err != nil {
		return nil, err
	}

	s.logger.Info("token generated and cached", zap.String("username", username))
	return &model.AuthResponse{AccessToken: accessToken, ExpiresIn: s.expiresIn}, nil
}

func (s *IssuerService) sign(envelope string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Data: envelope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expiresIn) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.signKey)
}
