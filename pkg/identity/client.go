// Package identity is the gateway to the external user directory. It speaks
// the directory's JSON-RPC style wire protocol (x-amz-json-1.1 with an
// X-Amz-Target operation header) and translates its closed set of rejection
// types into the service error taxonomy.
package identity

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coauto/coauto-backend/pkg/config"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
)

const (
	targetPrefix          = "AWSCognitoIdentityProviderService."
	contentType           = "application/x-amz-json-1.1"
	responseBodyReadLimit = 1 << 20
)

var errBaseURLRequired = errors.New("identity base url is required")

// Client wraps the directory operations used by the auth and user services.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	userPoolID   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a directory client from configuration.
func NewClient(cfg config.IdentityConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		userPoolID:   strings.TrimSpace(cfg.UserPoolID),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// SecretHash computes the keyed message hash the directory expects alongside
// every username-bearing call: base64(HMAC-SHA256(username+clientID)).
func (c *Client) SecretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AttributeValue is a single directory user attribute.
type AttributeValue struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// SignUpResult reports the subject id assigned by the directory.
type SignUpResult struct {
	Sub       string
	Confirmed bool
}

// SignUp registers a new account in the directory.
func (c *Client) SignUp(ctx context.Context, username, password string, attributes []AttributeValue) (*SignUpResult, error) {
	payload := struct {
		ClientID       string           `json:"ClientId"`
		SecretHash     string           `json:"SecretHash"`
		Username       string           `json:"Username"`
		Password       string           `json:"Password"`
		UserAttributes []AttributeValue `json:"UserAttributes,omitempty"`
	}{
		ClientID:       c.clientID,
		SecretHash:     c.SecretHash(username),
		Username:       username,
		Password:       password,
		UserAttributes: attributes,
	}

	var out struct {
		UserSub       string `json:"UserSub"`
		UserConfirmed bool   `json:"UserConfirmed"`
	}
	if err := c.call(ctx, "SignUp", payload, &out); err != nil {
		return nil, err
	}
	return &SignUpResult{Sub: out.UserSub, Confirmed: out.UserConfirmed}, nil
}

// ConfirmSignUp confirms a pending account with the emailed code.
func (c *Client) ConfirmSignUp(ctx context.Context, username, code string) error {
	payload := struct {
		ClientID         string `json:"ClientId"`
		SecretHash       string `json:"SecretHash"`
		Username         string `json:"Username"`
		ConfirmationCode string `json:"ConfirmationCode"`
	}{
		ClientID:         c.clientID,
		SecretHash:       c.SecretHash(username),
		Username:         username,
		ConfirmationCode: code,
	}
	return c.call(ctx, "ConfirmSignUp", payload, nil)
}

// ResendConfirmationCode re-sends the account confirmation code.
func (c *Client) ResendConfirmationCode(ctx context.Context, username string) error {
	payload := struct {
		ClientID   string `json:"ClientId"`
		SecretHash string `json:"SecretHash"`
		Username   string `json:"Username"`
	}{
		ClientID:   c.clientID,
		SecretHash: c.SecretHash(username),
		Username:   username,
	}
	return c.call(ctx, "ResendConfirmationCode", payload, nil)
}

// Tokens is the credential triple issued on a successful login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// InitiateAuth performs a username/password login.
func (c *Client) InitiateAuth(ctx context.Context, username, password string) (*Tokens, error) {
	payload := struct {
		ClientID       string            `json:"ClientId"`
		AuthFlow       string            `json:"AuthFlow"`
		AuthParameters map[string]string `json:"AuthParameters"`
	}{
		ClientID: c.clientID,
		AuthFlow: "USER_PASSWORD_AUTH",
		AuthParameters: map[string]string{
			"USERNAME":    username,
			"PASSWORD":    password,
			"SECRET_HASH": c.SecretHash(username),
		},
	}

	var out struct {
		AuthenticationResult struct {
			AccessToken  string `json:"AccessToken"`
			IdToken      string `json:"IdToken"`
			RefreshToken string `json:"RefreshToken"`
			ExpiresIn    int    `json:"ExpiresIn"`
			TokenType    string `json:"TokenType"`
		} `json:"AuthenticationResult"`
	}
	if err := c.call(ctx, "InitiateAuth", payload, &out); err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:  out.AuthenticationResult.AccessToken,
		IDToken:      out.AuthenticationResult.IdToken,
		RefreshToken: out.AuthenticationResult.RefreshToken,
		ExpiresIn:    out.AuthenticationResult.ExpiresIn,
		TokenType:    out.AuthenticationResult.TokenType,
	}, nil
}

// ChangePassword rotates the password for the bearer of the access token.
func (c *Client) ChangePassword(ctx context.Context, accessToken, previous, proposed string) error {
	payload := struct {
		AccessToken      string `json:"AccessToken"`
		PreviousPassword string `json:"PreviousPassword"`
		ProposedPassword string `json:"ProposedPassword"`
	}{
		AccessToken:      accessToken,
		PreviousPassword: previous,
		ProposedPassword: proposed,
	}
	return c.call(ctx, "ChangePassword", payload, nil)
}

// ForgotPassword starts the reset flow for a username.
func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	payload := struct {
		ClientID   string `json:"ClientId"`
		SecretHash string `json:"SecretHash"`
		Username   string `json:"Username"`
	}{
		ClientID:   c.clientID,
		SecretHash: c.SecretHash(username),
		Username:   username,
	}
	return c.call(ctx, "ForgotPassword", payload, nil)
}

// ConfirmForgotPassword completes the reset flow with the emailed code.
func (c *Client) ConfirmForgotPassword(ctx context.Context, username, code, password string) error {
	payload := struct {
		ClientID         string `json:"ClientId"`
		SecretHash       string `json:"SecretHash"`
		Username         string `json:"Username"`
		ConfirmationCode string `json:"ConfirmationCode"`
		Password         string `json:"Password"`
	}{
		ClientID:         c.clientID,
		SecretHash:       c.SecretHash(username),
		Username:         username,
		ConfirmationCode: code,
		Password:         password,
	}
	return c.call(ctx, "ConfirmForgotPassword", payload, nil)
}

// DirectoryUser is the directory's view of an account.
type DirectoryUser struct {
	Username   string
	Attributes map[string]string
}

// GetUser resolves the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*DirectoryUser, error) {
	payload := struct {
		AccessToken string `json:"AccessToken"`
	}{AccessToken: accessToken}

	var out struct {
		Username       string           `json:"Username"`
		UserAttributes []AttributeValue `json:"UserAttributes"`
	}
	if err := c.call(ctx, "GetUser", payload, &out); err != nil {
		return nil, err
	}

	user := &DirectoryUser{
		Username:   out.Username,
		Attributes: make(map[string]string, len(out.UserAttributes)),
	}
	for _, attr := range out.UserAttributes {
		user.Attributes[attr.Name] = attr.Value
	}
	return user, nil
}

// AdminListGroupsForUser returns the group names an account belongs to.
func (c *Client) AdminListGroupsForUser(ctx context.Context, username string) ([]string, error) {
	payload := struct {
		Username   string `json:"Username"`
		UserPoolID string `json:"UserPoolId"`
	}{Username: username, UserPoolID: c.userPoolID}

	var out struct {
		Groups []struct {
			GroupName string `json:"GroupName"`
		} `json:"Groups"`
	}
	if err := c.call(ctx, "AdminListGroupsForUser", payload, &out); err != nil {
		return nil, err
	}

	groups := make([]string, 0, len(out.Groups))
	for _, g := range out.Groups {
		groups = append(groups, g.GroupName)
	}
	return groups, nil
}

// AdminAddUserToGroup places an account in a directory group.
func (c *Client) AdminAddUserToGroup(ctx context.Context, username, group string) error {
	payload := struct {
		Username   string `json:"Username"`
		UserPoolID string `json:"UserPoolId"`
		GroupName  string `json:"GroupName"`
	}{Username: username, UserPoolID: c.userPoolID, GroupName: group}
	return c.call(ctx, "AdminAddUserToGroup", payload, nil)
}

// AdminEnableUser re-activates a directory account.
func (c *Client) AdminEnableUser(ctx context.Context, username string) error {
	return c.adminToggleUser(ctx, "AdminEnableUser", username)
}

// AdminDisableUser deactivates a directory account.
func (c *Client) AdminDisableUser(ctx context.Context, username string) error {
	return c.adminToggleUser(ctx, "AdminDisableUser", username)
}

func (c *Client) adminToggleUser(ctx context.Context, operation, username string) error {
	payload := struct {
		Username   string `json:"Username"`
		UserPoolID string `json:"UserPoolId"`
	}{Username: username, UserPoolID: c.userPoolID}
	return c.call(ctx, operation, payload, nil)
}

type rejectionBody struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
	AltMsg  string `json:"Message"`
}

func (c *Client) call(ctx context.Context, operation string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s request", operation))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", operation))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Amz-Target", targetPrefix+operation)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("directory %s call failed", operation))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s response", operation))
	}

	if resp.StatusCode >= 400 {
		var rejection rejectionBody
		if err := json.Unmarshal(raw, &rejection); err != nil || rejection.Type == "" {
			return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("directory %s returned status %d", operation, resp.StatusCode))
		}
		msg := rejection.Message
		if msg == "" {
			msg = rejection.AltMsg
		}
		return mapRejection(normalizeRejectionType(rejection.Type), msg)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", operation))
	}
	return nil
}

// normalizeRejectionType strips the service prefix some deployments include,
// e.g. "com.amazonaws.cognito#UserNotFoundException".
func normalizeRejectionType(t string) string {
	if idx := strings.LastIndexAny(t, "#."); idx >= 0 && idx < len(t)-1 {
		candidate := t[idx+1:]
		if strings.HasSuffix(candidate, "Exception") {
			return candidate
		}
	}
	return t
}
