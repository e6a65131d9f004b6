package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coauto/coauto-backend/pkg/config"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.IdentityConfig{
		BaseURL:      srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserPoolID:   "pool-1",
		Timeout:      2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.IdentityConfig{}); err == nil {
		t.Fatal("expected error without base url")
	}
}

func TestSecretHash(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	mac := hmac.New(sha256.New, []byte("client-secret"))
	mac.Write([]byte("jdoe@example.com" + "client-id"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got := client.SecretHash("jdoe@example.com"); got != want {
		t.Fatalf("secret hash mismatch: got %q want %q", got, want)
	}
}

func TestSignUpSendsTargetAndSecretHash(t *testing.T) {
	var gotTarget string
	var gotBody map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTarget = r.Header.Get("X-Amz-Target")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"UserSub":       "sub-123",
			"UserConfirmed": false,
		})
	})

	result, err := client.SignUp(context.Background(), "jdoe@example.com", "Passw0rd!", []AttributeValue{
		{Name: "email", Value: "jdoe@example.com"},
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if result.Sub != "sub-123" {
		t.Fatalf("unexpected sub %q", result.Sub)
	}
	if result.Confirmed {
		t.Fatal("expected unconfirmed account")
	}
	if gotTarget != "AWSCognitoIdentityProviderService.SignUp" {
		t.Fatalf("unexpected target %q", gotTarget)
	}
	if gotBody["SecretHash"] == "" {
		t.Fatal("expected secret hash in payload")
	}
	if gotBody["Username"] != "jdoe@example.com" {
		t.Fatalf("unexpected username %v", gotBody["Username"])
	}
}

func TestInitiateAuthReturnsTokens(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"AuthenticationResult": map[string]any{
				"AccessToken":  "access",
				"IdToken":      "id",
				"RefreshToken": "refresh",
				"ExpiresIn":    3600,
				"TokenType":    "Bearer",
			},
		})
	})

	tokens, err := client.InitiateAuth(context.Background(), "jdoe@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("initiate auth: %v", err)
	}
	if tokens.AccessToken != "access" || tokens.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens %+v", tokens)
	}
	if tokens.ExpiresIn != 3600 {
		t.Fatalf("unexpected expiry %d", tokens.ExpiresIn)
	}
}

func TestRejectionMapping(t *testing.T) {
	cases := []struct {
		rejection string
		wantCode  pkgerrors.Code
	}{
		{RejectionCodeMismatch, pkgerrors.CodeValidation},
		{RejectionExpiredCode, pkgerrors.CodeValidation},
		{RejectionInvalidParameter, pkgerrors.CodeValidation},
		{RejectionInvalidPassword, pkgerrors.CodeValidation},
		{RejectionNotAuthorized, pkgerrors.CodeUnauthorized},
		{RejectionForbidden, pkgerrors.CodeForbidden},
		{RejectionUserNotConfirmed, pkgerrors.CodePrecondition},
		{RejectionPasswordResetRequired, pkgerrors.CodePrecondition},
		{RejectionResourceNotFound, pkgerrors.CodeNotFound},
		{RejectionUserNotFound, pkgerrors.CodeNotFound},
		{RejectionUsernameExists, pkgerrors.CodeConflict},
		{RejectionAliasExists, pkgerrors.CodeConflict},
		{RejectionLimitExceeded, pkgerrors.CodeRateLimit},
		{RejectionTooManyRequests, pkgerrors.CodeRateLimit},
		{RejectionInternalError, pkgerrors.CodeInternal},
		{RejectionUnexpectedLambda, pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		t.Run(tc.rejection, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"__type":  tc.rejection,
					"message": "details from the directory",
				})
			})

			err := client.ConfirmSignUp(context.Background(), "jdoe@example.com", "123456")
			typed := pkgerrors.As(err)
			if typed == nil {
				t.Fatalf("expected typed error, got %v", err)
			}
			if typed.Code() != tc.wantCode {
				t.Fatalf("rejection %s: expected %s got %s", tc.rejection, tc.wantCode, typed.Code())
			}
		})
	}
}

func TestUnknownRejectionFallsBackToInternal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"__type": "BrandNewException"})
	})

	err := client.ResendConfirmationCode(context.Background(), "jdoe@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected generic internal error, got %v", err)
	}
}

func TestPrefixedRejectionTypeIsNormalized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"__type": "com.amazonaws.cognito#UserNotFoundException",
		})
	})

	err := client.ForgotPassword(context.Background(), "ghost@example.com")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetUserFlattensAttributes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"Username": "sub-123",
			"UserAttributes": []map[string]string{
				{"Name": "email", "Value": "jdoe@example.com"},
				{"Name": "name", "Value": "Jay"},
			},
		})
	})

	user, err := client.GetUser(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Username != "sub-123" {
		t.Fatalf("unexpected username %q", user.Username)
	}
	if user.Attributes["email"] != "jdoe@example.com" {
		t.Fatalf("unexpected attributes %v", user.Attributes)
	}
}

func TestAdminListGroupsForUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Amz-Target"); got != "AWSCognitoIdentityProviderService.AdminListGroupsForUser" {
			t.Errorf("unexpected target %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"Groups": []map[string]string{{"GroupName": "coauto-users"}, {"GroupName": "admins"}},
		})
	})

	groups, err := client.AdminListGroupsForUser(context.Background(), "sub-123")
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 2 || groups[0] != "coauto-users" {
		t.Fatalf("unexpected groups %v", groups)
	}
}

func TestTransportFailureMapsToDependency(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := client.AdminEnableUser(context.Background(), "sub-123")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}
