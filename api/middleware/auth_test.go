package middleware

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coauto/coauto-backend/pkg/config"
	"github.com/coauto/coauto-backend/pkg/identity"
)

func unsignedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": "abc", "exp": exp.Unix()})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(payload))
}

func directoryStub(t *testing.T, status int, body string) *identity.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	client, err := identity.NewClient(config.IdentityConfig{
		BaseURL:      server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
	})
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	return client
}

func runAuth(t *testing.T, client *identity.Client, authorization string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/users/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	Auth(client, nil)(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMissingCredentials(t *testing.T) {
	rec, _ := runAuth(t, directoryStub(t, http.StatusOK, `{}`), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthMalformedToken(t *testing.T) {
	rec, _ := runAuth(t, directoryStub(t, http.StatusOK, `{}`), "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	token := unsignedToken(t, time.Now().Add(-time.Hour))
	rec, _ := runAuth(t, directoryStub(t, http.StatusOK, `{}`), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthDirectoryRejection(t *testing.T) {
	token := unsignedToken(t, time.Now().Add(time.Hour))
	client := directoryStub(t, http.StatusBadRequest, `{"__type":"NotAuthorizedException","message":"Access Token has been revoked"}`)
	rec, _ := runAuth(t, client, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthSeedsContext(t *testing.T) {
	token := unsignedToken(t, time.Now().Add(time.Hour))
	body := `{"Username":"maria","UserAttributes":[{"Name":"sub","Value":"sub-123"},{"Name":"email","Value":"maria@example.com"}]}`
	client := directoryStub(t, http.StatusOK, body)

	rec, captured := runAuth(t, client, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if captured == nil {
		t.Fatalf("next handler not reached")
	}
	ctx := captured.Context()
	if UsernameFromContext(ctx) != "maria" {
		t.Fatalf("unexpected username %q", UsernameFromContext(ctx))
	}
	if UserSubFromContext(ctx) != "sub-123" {
		t.Fatalf("unexpected sub %q", UserSubFromContext(ctx))
	}
	if AccessTokenFromContext(ctx) != token {
		t.Fatalf("access token not seeded")
	}
}
