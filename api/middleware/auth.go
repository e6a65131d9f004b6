package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coauto/coauto-backend/api/responses"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/identity"
	"github.com/coauto/coauto-backend/pkg/logger"
)

// Auth checks the bearer token locally for shape and expiry, then confirms it
// with the directory and seeds the request context with the resolved account.
func Auth(verifier *identity.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if err := checkTokenShape(token); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			account, err := verifier.GetUser(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUsername(r.Context(), account.Username)
			ctx = WithAccessToken(ctx, token)
			if sub := account.Attributes["sub"]; sub != "" {
				ctx = WithUserSub(ctx, sub)
			}

			if logg != nil {
				ctx = logg.WithUsername(ctx, account.Username)
				if sub := account.Attributes["sub"]; sub != "" {
					ctx = logg.WithUserID(ctx, sub)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// checkTokenShape rejects malformed or expired tokens without a directory
// round trip. Signature verification stays with the directory itself.
func checkTokenShape(tokenString string) error {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if exp != nil && exp.Before(time.Now()) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")
	}
	return nil
}
