package archive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), Config{Bucket: "sheets"})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "C1/2026/10/active-20261016-090507.pdf", Key("/C1/", at, "pdf"))
}

func TestPut(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path = r.Method, r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := New(context.Background(), Config{
		Endpoint:     srv.URL,
		Bucket:       "sheets",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
		LinkExpiry:   time.Hour,
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "C1/2026/10/active.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/sheets/C1/2026/10/active.pdf", path)
	assert.Contains(t, string(body), "%PDF-1.4")
	assert.Contains(t, url, srv.URL+"/sheets/C1/2026/10/active.pdf")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}
