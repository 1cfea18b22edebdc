package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccessor(t *testing.T, handler http.Handler) *Accessor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewAccessor(store, srv.URL+"/api/", 5*time.Second)
}

func TestAccessor_LoginPersistsSession(t *testing.T) {
	token := ""
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.com", creds.Email)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":        token,
			"refreshToken": "refresh-1",
			"role":         "customer",
			"email":        "a@b.com",
			"name":         "Alice",
		})
	}))
	token = "tok-1"

	resp, err := a.Login(context.Background(), Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)

	assert.Equal(t, "tok-1", a.Token())
	assert.Equal(t, "refresh-1", a.RefreshToken())
	assert.Equal(t, "customer", a.Role())
	assert.Equal(t, "a@b.com", a.Email())
	assert.Equal(t, "Alice", a.Name())
	assert.True(t, a.IsLoggedIn())
}

func TestAccessor_LoginExtractsNestedFields(t *testing.T) {
	// Backend that wraps user data in a nested object under unusual keys
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"token": "tok-2",
			"data": {"account": {"userEmail": "n@b.com", "authorities": ["admin"]}}
		}`))
	}))

	_, err := a.Login(context.Background(), Credentials{Email: "n@b.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "n@b.com", a.Email())
	assert.Equal(t, "admin", a.Role())
}

func TestAccessor_LoginWithoutTokenPersistsNothing(t *testing.T) {
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "Invalid credentials"}`))
	}))

	resp, err := a.Login(context.Background(), Credentials{Email: "a@b.com", Password: "bad"})
	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.False(t, a.IsLoggedIn())
}

func TestAccessor_LoginServerError(t *testing.T) {
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Unauthorized"}`))
	}))

	_, err := a.Login(context.Background(), Credentials{Email: "a@b.com", Password: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestAccessor_RegisterAutoLogin(t *testing.T) {
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		w.Write([]byte(`{"token":"tok-3","role":"customer","email":"r@b.com","name":"Reg","phone":"555-0100"}`))
	}))

	_, err := a.Register(context.Background(), Registration{
		Name: "Reg", Email: "r@b.com",
		Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass", Role: "customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-3", a.Token())
	assert.Equal(t, "r@b.com", a.Email())
	assert.Equal(t, "555-0100", a.Phone())
}

func TestAccessor_EnsureUserCached(t *testing.T) {
	a := newTestAccessor(t, http.NotFoundHandler())

	token := makeToken(t, map[string]interface{}{"email": "a@b.com", "role": "admin", "name": "Tok Name"})
	require.NoError(t, a.store.Set(KeyToken, token))

	a.EnsureUserCached()

	assert.Equal(t, "a@b.com", a.Email())
	assert.Equal(t, "admin", a.Role())
	assert.Equal(t, "Tok Name", a.Name())
}

func TestAccessor_EnsureUserCachedDoesNotOverwrite(t *testing.T) {
	a := newTestAccessor(t, http.NotFoundHandler())

	token := makeToken(t, map[string]interface{}{"email": "token@b.com", "role": "admin"})
	require.NoError(t, a.store.Set(KeyToken, token))
	require.NoError(t, a.store.Set(KeyEmail, "stored@b.com"))

	a.EnsureUserCached()

	assert.Equal(t, "stored@b.com", a.Email(), "stored value must win over the token payload")
	assert.Equal(t, "admin", a.Role(), "missing role is filled from the payload")
}

func TestAccessor_EnsureUserCachedNoToken(t *testing.T) {
	a := newTestAccessor(t, http.NotFoundHandler())
	a.EnsureUserCached()
	assert.Empty(t, a.Email())
}

func TestAccessor_CurrentUser(t *testing.T) {
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-4", r.Header.Get("Authorization"))
		w.Write([]byte(`{"email":"me@b.com","role":"customer","name":"Me","phone":"555-0101"}`))
	}))

	require.NoError(t, a.store.Set(KeyToken, "tok-4"))

	profile, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "me@b.com", a.Email())
	assert.Equal(t, "555-0101", a.Phone())
}

func TestAccessor_CurrentUserWithoutToken(t *testing.T) {
	a := newTestAccessor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a token")
	}))

	profile, err := a.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestAccessor_Logout(t *testing.T) {
	a := newTestAccessor(t, http.NotFoundHandler())

	require.NoError(t, a.store.Set(KeyToken, "tok"))
	require.NoError(t, a.store.Set(KeyEmail, "a@b.com"))
	require.NoError(t, a.store.Set(KeyRole, "admin"))
	require.NoError(t, a.store.Set(KeyPhone, "555"))

	require.NoError(t, a.Logout())

	assert.Empty(t, a.Token())
	assert.Empty(t, a.Email())
	assert.Empty(t, a.Role())
	assert.Empty(t, a.Phone())
	assert.False(t, a.IsLoggedIn())
}
