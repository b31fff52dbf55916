package service

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
	fgscrypto "github.com/gavilanm26/prueba-backend-fgs/internal/crypto"
	"github.com/gavilanm26/prueba-backend-fgs/internal/model"
)

const bearerPrefix = "Bearer "

// supportedAlg is the only accepted signing algorithm. There is no
// negotiation: anything else in the header rejects the token.
const supportedAlg = "RS256"

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

type tokenBody struct {
	Exp  any `json:"exp"`
	Iat  any `json:"iat"`
	Data any `json:"data"`
}

// VerifierService reconstructs an identity from a raw bearer token
// without calling back into the identity service and without a JWT
// library: the token is parsed, validated and decrypted stage by stage.
// It is stateless; failed tokens are never retried and results are
// never cached.
type VerifierService struct {
	verifyKey  *rsa.PublicKey
	passphrase string
	now        func() time.Time
}

func NewVerifierService(verifyKey *rsa.PublicKey, passphrase string) (*VerifierService, error) {
	if verifyKey == nil {
		return nil, apperr.E(apperr.KindNotConfigured, "Token validation is not configured")
	}
	if passphrase == "" {
		return nil, apperr.E(apperr.KindNotConfigured, "Token validation is not configured")
	}

	return &VerifierService{
		verifyKey:  verifyKey,
		passphrase: passphrase,
		now:        time.Now,
	}, nil
}

// VerifyAuthorization runs the full pipeline over an Authorization
// header value and returns the verified identity. Every failure maps to
// Unauthorized with a generic message.
func (s *VerifierService) VerifyAuthorization(authHeader string) (*model.VerifiedIdentity, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, apperr.E(apperr.KindUnauthorized, "Authorization token is required")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}

	return s.VerifyToken(token)
}

// VerifyToken validates a raw compact token: split, decode, pin the
// algorithm, check expiry, verify the RSA signature over the signing
// input, decrypt the payload envelope and check the claims.
func (s *VerifierService) VerifyToken(token string) (*model.VerifiedIdentity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}
	encodedHeader, encodedPayload, encodedSignature := parts[0], parts[1], parts[2]

	var header tokenHeader
	if err := decodeSegment(encodedHeader, &header); err != nil {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}

	var body tokenBody
	if err := decodeSegment(encodedPayload, &body); err != nil {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}

	if header.Alg != supportedAlg {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token algorithm")
	}

	// A missing or non-numeric exp takes the expired path, matching the
	// distinct rejection reason for expiry.
	exp, isNumber := body.Exp.(float64)
	if !isNumber || int64(exp) <= s.now().Unix() {
		return nil, apperr.E(apperr.KindUnauthorized, "Token expired")
	}

	signature, err := base64URLDecode(encodedSignature)
	if err != nil {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}

	signingInput := encodedHeader + "." + encodedPayload
	hashed := sha256.Sum256([]byte(signingInput))
	if err := rsa.VerifyPKCS1v15(s.verifyKey, crypto.SHA256, hashed[:], signature); err != nil {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token")
	}

	envelope, ok := body.Data.(string)
	if !ok || strings.Count(envelope, ":") < 2 {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token payload")
	}

	var payload model.TokenPayload
	if err := fgscrypto.Decrypt(envelope, s.passphrase, &payload); err != nil {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token payload")
	}

	if payload.Sub == "" || payload.Username == "" {
		return nil, apperr.E(apperr.KindUnauthorized, "Invalid token payload")
	}

	return &model.VerifiedIdentity{Sub: payload.Sub, Username: payload.Username}, nil
}

func decodeSegment(segment string, out any) error {
	raw, err := base64URLDecode(segment)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// base64URLDecode translates the URL-safe alphabet back to the standard
// one and restores '=' padding before decoding.
func base64URLDecode(value string) ([]byte, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(value)
	if rem := len(normalized) % 4; rem != 0 {
		normalized += strings.Repeat("=", 4-rem)
	}
	return base64.StdEncoding.DecodeString(normalized)
}
