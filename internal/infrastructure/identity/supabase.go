// Package identity is the client for the external identity provider. It
// owns session issuance, refresh and destruction; the rest of the app only
// sees domain.Session values through the session store.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// Access tokens within this skew of expiry are refreshed eagerly so a
// request issued right after restore does not race the expiry.
const expirySkew = 30 * time.Second

// SupabaseClient implements domain.IdentityProvider against a GoTrue-style
// auth endpoint.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	sessions   SessionPersistence
	log        zerolog.Logger
}

// Config configures the identity client.
type Config struct {
	URL        string
	AnonKey    string
	HTTPClient *http.Client
	// Sessions persists the credential across restarts. Defaults to a JSON
	// file under the user config dir.
	Sessions SessionPersistence
	Logger   zerolog.Logger
}

// NewSupabaseClient creates an identity client.
func NewSupabaseClient(cfg Config) (*SupabaseClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("identity: URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("identity: anon key is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	sessions := cfg.Sessions
	if sessions == nil {
		var err error
		sessions, err = NewFileSessionStore("")
		if err != nil {
			return nil, err
		}
	}
	return &SupabaseClient{
		baseURL:    cfg.URL,
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
		sessions:   sessions,
		log:        cfg.Logger.With().Str("component", "identity").Logger(),
	}, nil
}

type authResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *struct {
		ID string `json:"id"`
	} `json:"user"`
}

type authErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

// RestoreSession implements domain.IdentityProvider. A stale persisted
// session is refreshed; when the refresh is rejected the persisted state is
// cleared rather than surfacing an error at startup.
func (c *SupabaseClient) RestoreSession(ctx context.Context) (*domain.Session, error) {
	session, err := c.sessions.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if time.Until(session.ExpiresAt) > expirySkew {
		return session, nil
	}

	refreshed, err := c.Refresh(ctx, session.RefreshToken)
	if err != nil {
		c.log.Info().Err(err).Msg("persisted session refresh rejected, clearing")
		if clearErr := c.sessions.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return refreshed, nil
}

// SignIn implements domain.IdentityProvider via the password grant.
func (c *SupabaseClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.tokenExchange(ctx, "/auth/v1/token?grant_type=password", body)
}

// SignUp implements domain.IdentityProvider.
func (c *SupabaseClient) SignUp(ctx context.Context, params domain.SignUpParams) (*domain.Session, error) {
	body := map[string]any{
		"email":    params.Email,
		"password": params.Password,
	}
	if params.FullName != "" {
		body["data"] = map[string]string{"full_name": params.FullName}
	}
	return c.tokenExchange(ctx, "/auth/v1/signup", body)
}

// Refresh implements domain.IdentityProvider.
func (c *SupabaseClient) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, &domain.AuthError{Message: "no refresh token"}
	}
	body := map[string]string{"refresh_token": refreshToken}
	return c.tokenExchange(ctx, "/auth/v1/token?grant_type=refresh_token", body)
}

// SignOut implements domain.IdentityProvider. The persisted session is
// always cleared, even when the remote revoke fails.
func (c *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	clearErr := c.sessions.Clear()

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
	if err != nil {
		return clearErr
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("remote sign-out failed, local session already cleared")
		return clearErr
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return clearErr
}

func (c *SupabaseClient) tokenExchange(ctx context.Context, path string, body any) (*domain.Session, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &domain.AuthError{Message: err.Error()}
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return nil, &domain.AuthError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.AuthError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.AuthError{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeAuthError(respBody)
	}

	var auth authResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return nil, &domain.AuthError{Message: "malformed identity provider response"}
	}
	if auth.AccessToken == "" {
		return nil, &domain.AuthError{Message: "identity provider returned no session"}
	}

	session := sessionFromAuth(auth)
	if err := c.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *SupabaseClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	return req, nil
}

func normalizeAuthError(body []byte) *domain.AuthError {
	var authErr authErrorResponse
	if err := json.Unmarshal(body, &authErr); err == nil {
		switch {
		case authErr.ErrorDescription != "":
			return &domain.AuthError{Message: authErr.ErrorDescription}
		case authErr.Msg != "":
			return &domain.AuthError{Message: authErr.Msg}
		case authErr.Error != "":
			return &domain.AuthError{Message: authErr.Error}
		}
	}
	return &domain.AuthError{Message: "authentication failed"}
}

// sessionFromAuth builds the session, preferring the exp claim baked into
// the access token over the advisory expires_in field.
func sessionFromAuth(auth authResponse) *domain.Session {
	session := &domain.Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		TokenType:    auth.TokenType,
	}
	if auth.User != nil {
		session.UserID = auth.User.ID
	}

	if exp, ok := tokenExpiry(auth.AccessToken); ok {
		session.ExpiresAt = exp
	} else if auth.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second)
	}
	return session
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client never trusts the token for authorization, only for scheduling the
// refresh.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
