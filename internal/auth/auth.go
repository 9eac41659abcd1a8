// Package auth verifies ZGW bearer tokens on inbound requests and signs the
// tokens the registry presents to other ZGW services.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/handlers"
)

// ScopeForceUnlock allows releasing a lock without presenting its token.
const ScopeForceUnlock = "documenten.geforceerd-unlock"

var (
	// ErrUnexpectedSigningMethod is returned when the token is not HMAC signed.
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")

	// ErrInvalidToken is returned for a malformed, expired or badly signed bearer token.
	ErrInvalidToken = faults.Validation("", "invalid-token", "the bearer token is invalid")
)

// Claims is the payload of a ZGW token.
type Claims struct {
	jwt.StandardClaims

	ClientID           string   `json:"client_id"`
	UserID             string   `json:"user_id,omitempty"`
	UserRepresentation string   `json:"user_representation,omitempty"`
	Scopes             []string `json:"scopes,omitempty"`
}

// HasScope reports whether the claims grant scope. Nil claims grant nothing.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Scopes, scope)
}

// Sign issues a token identifying the registry as creds.ClientID.
func Sign(creds config.ClientCredentials, now time.Time) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:   creds.ClientID,
			IssuedAt: now.Unix(),
		},
		ClientID: creds.ClientID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(creds.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and checks its HMAC signature against secret.
func Verify(token, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %w", t.Method.Alg(), ErrUnexpectedSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

type claimsKey struct{}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext returns the claims of the request, or nil for anonymous callers.
func FromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey{}).(*Claims)
	return claims
}

// Middleware verifies the bearer token of each request and stores its
// claims in the request context. Requests without a token stay anonymous.
// A present but invalid token is rejected with 401.
func Middleware(cfg *config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			claims, err := Verify(strings.TrimSpace(raw), cfg.Secret)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken.Wrap(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
