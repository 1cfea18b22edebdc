package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/logging"

	"github.com/google/uuid"
)

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup request payload.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
}

// AuthResponse is the flat auth envelope. Only Token and Message are relied
// on directly; everything else goes through the candidate-key extraction.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
}

// Accessor reads and writes the persisted session and performs the auth
// calls against the remote API. It is the only component that touches the
// session store's auth keys.
type Accessor struct {
	store      *Store
	baseURL    string
	httpClient *http.Client
}

// NewAccessor creates an accessor over the given store and API base URL.
func NewAccessor(store *Store, baseURL string, timeout time.Duration) *Accessor {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Accessor{
		store:      store,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Token returns the stored bearer token, or "" when logged out.
func (a *Accessor) Token() string { return a.get(KeyToken) }

// RefreshToken returns the stored refresh token. It is persisted but never
// rotated; no refresh flow is implemented.
func (a *Accessor) RefreshToken() string { return a.get(KeyRefreshToken) }

// Role returns the stored user role.
func (a *Accessor) Role() string { return a.get(KeyRole) }

// Email returns the stored user email.
func (a *Accessor) Email() string { return a.get(KeyEmail) }

// Name returns the stored user name.
func (a *Accessor) Name() string { return a.get(KeyName) }

// Phone returns the stored user phone.
func (a *Accessor) Phone() string { return a.get(KeyPhone) }

// IsLoggedIn reports whether a token is present.
func (a *Accessor) IsLoggedIn() bool { return a.Token() != "" }

func (a *Accessor) get(key string) string {
	v, _ := a.store.Get(key)
	return v
}

// Login posts the credentials to auth/login. On a response carrying a token
// it persists the token and refresh token, plus role/email/name resolved
// through the candidate-key extraction. The response is returned either way
// so the caller can surface the backend's message.
func (a *Accessor) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	body, err := a.postJSON(ctx, "auth/login", creds)
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	if resp.Token != "" {
		a.persistAuth(resp.Token, resp.RefreshToken, body)
		a.EnsureUserCached()
	}
	return &resp, nil
}

// Register posts the payload to auth/register. If the backend returns a token
// the user is auto-logged-in with the same persistence as Login.
func (a *Accessor) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	body, err := a.postJSON(ctx, "auth/register", reg)
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode register response: %w", err)
	}

	if resp.Token != "" {
		a.persistAuth(resp.Token, resp.RefreshToken, body)
		if resp.Phone != "" {
			_ = a.store.Set(KeyPhone, resp.Phone)
		}
		a.EnsureUserCached()
	}
	return &resp, nil
}

// CurrentUser fetches auth/me with bearer authorization and persists any
// recovered fields, then fills remaining gaps from the token payload.
// Without a token it returns nil, nil.
func (a *Accessor) CurrentUser(ctx context.Context) (map[string]interface{}, error) {
	token := a.Token()
	if token == "" {
		return nil, nil
	}

	reqID := uuid.NewString()[:8]
	rlog := logging.WithRequestID(logging.CategorySession, reqID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rlog.Info("GET %sauth/me", a.baseURL)
	resp, err := a.httpClient.Do(req)
	if err != nil {
		rlog.Error("profile fetch failed: %v", err)
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rlog.Error("profile fetch -> %d", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status %d from auth/me", resp.StatusCode)
	}

	var profile map[string]interface{}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	a.persistExtracted(profile, false)
	if phone := stringValue(profile["phone"]); phone != "" {
		_ = a.store.Set(KeyPhone, phone)
	}
	a.EnsureUserCached()

	return profile, nil
}

// EnsureUserCached fills missing email/role/name from the token payload.
// Existing stored values are never overwritten. Without a token, or when
// email and role are both already cached, this is a no-op.
func (a *Accessor) EnsureUserCached() {
	token := a.Token()
	if token == "" {
		logging.SessionDebug("ensure cache: no token, skipping")
		return
	}
	if a.Email() != "" && a.Role() != "" {
		logging.SessionDebug("ensure cache: email and role already cached")
		return
	}

	payload, err := decodeTokenPayload(token)
	if err != nil {
		logging.Get(logging.CategorySession).Warn("token decode failed: %v", err)
		return
	}

	a.persistExtracted(payload, true)
}

// Logout clears the entire persistent store, not just the auth keys, so no
// cached identity survives a sign-out.
func (a *Accessor) Logout() error {
	logging.Session("logout: clearing session store")
	return a.store.Clear()
}

// persistAuth stores the token pair and the best-effort extracted user
// fields from a raw auth response body.
func (a *Accessor) persistAuth(token, refreshToken string, rawBody []byte) {
	_ = a.store.Set(KeyToken, token)
	if refreshToken != "" {
		_ = a.store.Set(KeyRefreshToken, refreshToken)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return
	}
	a.persistExtracted(payload, false)
}

// persistExtracted resolves role/email/name through the candidate-key
// mapping and stores whatever was found. With onlyIfAbsent, a stored value
// always wins over a freshly extracted one.
func (a *Accessor) persistExtracted(payload map[string]interface{}, onlyIfAbsent bool) {
	for _, field := range []string{KeyRole, KeyEmail, KeyName} {
		value := extractField(payload, field)
		if value == "" {
			if field == KeyRole {
				logging.Get(logging.CategorySession).Warn("no role found in response")
			}
			continue
		}
		if onlyIfAbsent {
			_ = a.store.SetIfAbsent(field, value)
		} else {
			_ = a.store.Set(field, value)
		}
	}
}

// postJSON posts a JSON payload and returns the raw response body. Non-2xx
// statuses are errors; the body is still read so the backend's message can
// be included.
func (a *Accessor) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqID := uuid.NewString()[:8]
	rlog := logging.WithRequestID(logging.CategorySession, reqID)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	rlog.Info("POST %s%s", a.baseURL, path)
	resp, err := a.httpClient.Do(req)
	if err != nil {
		rlog.Error("POST %s failed: %v", path, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rlog.Error("POST %s -> %d", path, resp.StatusCode)
		var failure struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &failure) == nil && failure.Message != "" {
			return nil, fmt.Errorf("%s: %s", path, failure.Message)
		}
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	rlog.Info("POST %s -> %d", path, resp.StatusCode)
	return body, nil
}
