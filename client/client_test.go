package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory CredentialRepository for tests.
type memStore struct {
	mu   sync.Mutex
	cred *db.Credential
}

func (s *memStore) Get(ctx context.Context) (*db.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	copied := *s.cred
	return &copied, nil
}

func (s *memStore) Set(ctx context.Context, cred *db.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cred
	s.cred = &copied
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

// fakeRecoverer counts recovery calls and lets tests script the refresh outcome.
type fakeRecoverer struct {
	refreshCalls int32
	logoutCalls  int32
	onRefresh    func(ctx context.Context) error
}

func (r *fakeRecoverer) RefreshSession(ctx context.Context) error {
	atomic.AddInt32(&r.refreshCalls, 1)
	if r.onRefresh != nil {
		return r.onRefresh(ctx)
	}
	return nil
}

func (r *fakeRecoverer) ForceLogout(ctx context.Context) error {
	atomic.AddInt32(&r.logoutCalls, 1)
	return nil
}

func newTestClient(t *testing.T, baseURL string, store *memStore) *client.Client {
	t.Helper()
	c, err := client.New(baseURL, store)
	require.NoError(t, err)
	return c
}

func TestGet_AttachesBearerHeader(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-A", r.Header.Get("Authorization"))
		assert.Len(t, r.Header.Values("Authorization"), 1, "decoration must overwrite, not accumulate")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	body, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_AnonymousRequestHasNoHeader(t *testing.T) {
	store := &memStore{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.NoError(t, err)
}

func TestGet_RecoversFromRejectedCredential(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	recoverer := &fakeRecoverer{
		onRefresh: func(ctx context.Context) error {
			return store.Set(ctx, &db.Credential{Token: "tok-B"})
		},
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n == 1 {
			assert.Equal(t, "Bearer tok-A", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusForbidden)
			return
		}
		// The retry must carry the refreshed token, not the old one.
		assert.Equal(t, "Bearer tok-B", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id":"123","roomNumber":"101"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	body, err := c.Get(context.Background(), "/room/123", client.RequestOptions{})
	require.NoError(t, err, "caller must never observe the intermediate 403")
	assert.Contains(t, string(body), `"roomNumber":"101"`)
	assert.Equal(t, int32(1), atomic.LoadInt32(&recoverer.refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestGet_SingleRetryThenSurfacesSecondFailure(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	recoverer := &fakeRecoverer{
		onRefresh: func(ctx context.Context) error {
			return store.Set(ctx, &db.Credential{Token: "tok-B"})
		},
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&recoverer.refreshCalls), "a retried request that fails again must not trigger a second refresh")
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestGet_RefreshFailureForcesLogout(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	refreshErr := errors.New("refresh rejected with 401")
	recoverer := &fakeRecoverer{
		onRefresh: func(ctx context.Context) error {
			_ = store.Clear(ctx)
			return refreshErr
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrSessionExpired)
	assert.ErrorIs(t, err, refreshErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&recoverer.logoutCalls), "forced logout must be attempted best-effort")

	cred, getErr := store.Get(context.Background())
	require.NoError(t, getErr)
	assert.Nil(t, cred, "credential must be gone after a failed refresh")
}

func TestGet_ServerErrorIsNotRetried(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	recoverer := &fakeRecoverer{}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database exploded"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	_, err := c.Get(context.Background(), "/contract/9", client.RequestOptions{})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database exploded", apiErr.Message)
	assert.False(t, apiErr.NoResponse)
	assert.Equal(t, int32(0), atomic.LoadInt32(&recoverer.refreshCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestGet_TransportFailureIsNotRetried(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	recoverer := &fakeRecoverer{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NoResponse)
	assert.Equal(t, int32(0), atomic.LoadInt32(&recoverer.refreshCalls))
}

func TestGet_NoRecovererPropagatesAuthError(t *testing.T) {
	store := &memStore{cred: &db.Credential{Token: "tok-A"}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)

	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestGet_AnonymousRequestStillRecoversOnce(t *testing.T) {
	store := &memStore{}
	recoverer := &fakeRecoverer{
		onRefresh: func(ctx context.Context) error {
			return store.Set(ctx, &db.Credential{Token: "tok-new"})
		},
	}

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n == 1 {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer tok-new", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	_, err := c.Get(context.Background(), "/rooms", client.RequestOptions{})
	require.NoError(t, err, "a missing credential looks like an expired one and gets one recovery cycle")
	assert.Equal(t, int32(1), atomic.LoadInt32(&recoverer.refreshCalls))
}

func TestConcurrentAuthFailures_SingleRefresh(t *testing.T) {
	const concurrent = 5

	store := &memStore{cred: &db.Credential{Token: "tok-old"}}
	allFailed := make(chan struct{})

	var failed int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-old" {
			if atomic.AddInt32(&failed, 1) == concurrent {
				close(allFailed)
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	recoverer := &fakeRecoverer{
		onRefresh: func(ctx context.Context) error {
			// Hold the refresh until every request has observed its 401 so
			// they all pile onto the same in-flight attempt.
			<-allFailed
			return store.Set(ctx, &db.Credential{Token: "tok-new"})
		},
	}

	c := newTestClient(t, server.URL, store)
	c.SetRecoverer(recoverer)

	var wg sync.WaitGroup
	errs := make([]error, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/rooms", client.RequestOptions{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d should have recovered", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&recoverer.refreshCalls), "a burst of expired requests must share one refresh")
}
