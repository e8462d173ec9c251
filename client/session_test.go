package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformAuthenticate_ParsesTokenAndProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/authenticate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"accessToken":"tok-123","user":{"_id":"u1","username":"admin","role":"admin"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	result, err := c.PerformAuthenticate(context.Background(), "admin", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.AccessToken)
	assert.Equal(t, "admin", result.User.Username)
	assert.Equal(t, "admin", result.User.Role)
}

func TestPerformAuthenticate_MissingTokenIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user":{"username":"admin"}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	_, err := c.PerformAuthenticate(context.Background(), "admin", "secret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")
}

func TestPerformAuthenticate_RejectionNeverTriggersRecovery(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Wrong username or password"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	recoverer := &fakeRecoverer{}
	c.SetRecoverer(recoverer)

	_, err := c.PerformAuthenticate(context.Background(), "admin", "wrong")

	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Wrong username or password", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "a rejected login must not be retried")
	assert.Equal(t, int32(0), atomic.LoadInt32(&recoverer.refreshCalls), "a rejected login must not trigger a refresh")
}

func TestPerformTokenRefresh_ParsesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/refreshToken", r.URL.Path)
		fmt.Fprint(w, `{"accessToken":"tok-new"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	token, err := c.PerformTokenRefresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
}

func TestPerformTokenRefresh_RejectionNeverTriggersRecovery(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Refresh token expired"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{cred: &db.Credential{Token: "tok-old"}})
	recoverer := &fakeRecoverer{}
	c.SetRecoverer(recoverer)

	_, err := c.PerformTokenRefresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, int32(0), atomic.LoadInt32(&recoverer.refreshCalls), "a failed refresh must not recurse into recovery")
}

func TestPerformLogout(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"message":"Logged out"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	err := c.PerformLogout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/user/logout", path)
}

// The renewal cookie set by the authenticate endpoint must travel on every
// subsequent request through the same client, including the refresh call.
func TestCookieJar_CarriesRenewalCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/authenticate":
			http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "cookie-xyz", Path: "/", HttpOnly: true})
			fmt.Fprint(w, `{"accessToken":"tok-123","user":{"_id":"u1","username":"admin"}}`)
		case "/user/refreshToken":
			cookie, err := r.Cookie("refreshToken")
			if err != nil || cookie.Value != "cookie-xyz" {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message":"No refresh token"}`)
				return
			}
			fmt.Fprint(w, `{"accessToken":"tok-new"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, &memStore{})
	_, err := c.PerformAuthenticate(context.Background(), "admin", "secret")
	require.NoError(t, err)

	token, err := c.PerformTokenRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
}
