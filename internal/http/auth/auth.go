// Package auth authenticates API callers with HS256 bearer tokens. The
// token subject is the owner every request acts for.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type ctxKey struct{}

var errMissingToken = errors.New("missing bearer token")

// WithOwner stores ownerID in ctx.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, ownerID)
}

// Owner returns the authenticated owner.
func Owner(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// Middleware rejects requests without a valid token signed with secret.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := authenticate(parser, secret, r)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), ownerID)))
		})
	}
}

func authenticate(parser *jwt.Parser, secret []byte, r *http.Request) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return uuid.Nil, errMissingToken
	}

	var claims jwt.RegisteredClaims

	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, errors.New("invalid token")
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("token subject is not an owner id")
	}

	return ownerID, nil
}

// Issue signs a token for ownerID valid for ttl.
func Issue(secret []byte, ownerID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   ownerID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(secret)
}

// MustOwner returns the authenticated owner, answering 401 itself when
// there is none.
func MustOwner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := Owner(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, errMissingToken.Error())
	}

	return id, ok
}
